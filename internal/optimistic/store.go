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

package optimistic

import (
	"fmt"
	"sync"

	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

// UpdateFn computes a tentative value from the current one. It is retained for the life of the
// update, and may be replayed over a different baseline, so it must not have side effects or call
// back into the store.
type UpdateFn[T any] func(current T) T

// Update is one tentative change, as visible to callers
type Update[T any] struct {
	ID        string             `json:"id"`
	Type      string             `json:"type"`
	OldValue  T                  `json:"oldValue"`
	NewValue  T                  `json:"newValue"`
	Timestamp *txtypes.Timestamp `json:"timestamp"`
}

type pendingUpdate[T any] struct {
	Update[T]
	fn UpdateFn[T]
}

// Snapshot is a consistent view of a store
type Snapshot[T any] struct {
	Value    T           `json:"value"`
	Original T           `json:"original"`
	Pending  []Update[T] `json:"pending"`
}

// Store holds an authoritative baseline, and a current value that is the baseline with every
// pending update replayed over it in application order. None of the operations fail, and
// unknown update ids are ignored.
type Store[T any] struct {
	mux      sync.RWMutex
	original T
	current  T
	pending  []*pendingUpdate[T]
	counter  int
}

func New[T any](initial T) *Store[T] {
	return &Store[T]{
		original: initial,
		current:  initial,
	}
}

func (s *Store[T]) indexOf(id string) int {
	for i, u := range s.pending {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) replay() {
	v := s.original
	for _, u := range s.pending {
		v = u.fn(v)
	}
	s.current = v
}

// Apply makes a tentative change visible immediately, and returns the id to confirm or revert it by
func (s *Store[T]) Apply(fn UpdateFn[T], updateType string) string {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.counter++
	u := &pendingUpdate[T]{
		Update: Update[T]{
			ID:        fmt.Sprintf("update-%d", s.counter),
			Type:      updateType,
			OldValue:  s.current,
			Timestamp: txtypes.Now(),
		},
		fn: fn,
	}
	u.NewValue = fn(s.current)
	s.current = u.NewValue
	s.pending = append(s.pending, u)
	return u.ID
}

// Confirm folds the update into the baseline, and replays the remaining updates over it.
// When the confirmed update is the oldest one pending, the current value does not change.
func (s *Store[T]) Confirm(id string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	u := s.pending[i]
	s.pending = append(s.pending[:i], s.pending[i+1:]...)
	s.original = u.fn(s.original)
	s.replay()
}

// Revert discards the update, and replays the remaining updates over the baseline
func (s *Store[T]) Revert(id string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.pending = append(s.pending[:i], s.pending[i+1:]...)
	s.replay()
}

func (s *Store[T]) RevertAll() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.pending = nil
	s.current = s.original
}

// UpdateBaseline accepts freshly read authoritative data. Pending updates stay pending, and are
// replayed over the new baseline.
func (s *Store[T]) UpdateBaseline(v T) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.original = v
	s.replay()
}

// Reset replaces both values and drops all pending updates
func (s *Store[T]) Reset(v T) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.original = v
	s.current = v
	s.pending = nil
}

func (s *Store[T]) Value() T {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.current
}

func (s *Store[T]) Original() T {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.original
}

func (s *Store[T]) IsPending() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.pending) > 0
}

func (s *Store[T]) PendingCount() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.pending)
}

func (s *Store[T]) Has(id string) bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.indexOf(id) >= 0
}

func (s *Store[T]) Get(id string) (*Update[T], bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	u := s.pending[i].Update
	return &u, true
}

// UpdatesByType returns the pending updates with the given tag, in application order
func (s *Store[T]) UpdatesByType(updateType string) []Update[T] {
	s.mux.RLock()
	defer s.mux.RUnlock()
	updates := []Update[T]{}
	for _, u := range s.pending {
		if u.Type == updateType {
			updates = append(updates, u.Update)
		}
	}
	return updates
}

func (s *Store[T]) Snapshot() *Snapshot[T] {
	s.mux.RLock()
	defer s.mux.RUnlock()
	snap := &Snapshot[T]{
		Value:    s.current,
		Original: s.original,
		Pending:  make([]Update[T], len(s.pending)),
	}
	for i, u := range s.pending {
		snap.Pending[i] = u.Update
	}
	return snap
}
