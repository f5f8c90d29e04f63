// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reconcile

import (
	"github.com/kaleido-io/dapptx/internal/optimistic"
)

// Effect is the locally visible consequence of a submission. It is applied once a transaction id
// exists, and then either confirmed or reverted exactly once.
type Effect interface {
	Apply()
	Confirm()
	Revert()
}

type storeEffect[T any] struct {
	store      *optimistic.Store[T]
	updateType string
	fn         optimistic.UpdateFn[T]
	id         string
}

// StoreEffect applies fn to the store as a tentative update of the given type
func StoreEffect[T any](store *optimistic.Store[T], updateType string, fn optimistic.UpdateFn[T]) Effect {
	return &storeEffect[T]{
		store:      store,
		updateType: updateType,
		fn:         fn,
	}
}

func (e *storeEffect[T]) Apply() {
	e.id = e.store.Apply(e.fn, e.updateType)
}

func (e *storeEffect[T]) Confirm() {
	e.store.Confirm(e.id)
}

func (e *storeEffect[T]) Revert() {
	e.store.Revert(e.id)
}

// Effects combines several effects, such as a list entry and a counter, into one
type Effects []Effect

func (ee Effects) Apply() {
	for _, e := range ee {
		e.Apply()
	}
}

func (ee Effects) Confirm() {
	for _, e := range ee {
		e.Confirm()
	}
}

func (ee Effects) Revert() {
	for _, e := range ee {
		e.Revert()
	}
}
