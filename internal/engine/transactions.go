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

package engine

import (
	"context"

	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

func (e *engine) GetStatus(ctx context.Context) *Status {
	return &Status{
		Network:     e.network.Name,
		Wallet:      e.session.Info(),
		Counts:      e.registry.Counts(),
		Tracked:     e.registry.Len(),
		ActivePolls: e.reconcile.ActivePolls(),
		Recent:      e.registry.Recent(0),
	}
}

// GetTransactions lists the tracked transactions newest first, optionally filtered by state.
// A limit of zero returns all of them.
func (e *engine) GetTransactions(ctx context.Context, state string, limit int) ([]*txtypes.TransactionRecord, error) {
	var records []*txtypes.TransactionRecord
	if state != "" {
		s, ok := txtypes.ParseTxState(state)
		if !ok {
			return nil, i18n.NewError(ctx, i18n.MsgInvalidTxState, state)
		}
		records = e.registry.ByState(s)
	} else {
		records = e.registry.All()
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (e *engine) GetTransactionByID(ctx context.Context, id string) (*txtypes.TransactionRecord, error) {
	record := e.registry.Get(id)
	if record == nil {
		return nil, i18n.NewError(ctx, i18n.MsgTransactionNotFound, id)
	}
	return record, nil
}

func (e *engine) DeleteTransaction(ctx context.Context, id string) error {
	if !e.registry.Remove(id) {
		return i18n.NewError(ctx, i18n.MsgTransactionNotFound, id)
	}
	return nil
}

func (e *engine) ClearCompleted(ctx context.Context) *ClearResult {
	removed := e.registry.ClearCompleted()
	return &ClearResult{
		Removed: removed,
		Counts:  e.registry.Counts(),
	}
}

func (e *engine) GetOperations(ctx context.Context, limit int) []*txtypes.Operation {
	ops := e.reconcile.Operations()
	if limit > 0 && len(ops) > limit {
		ops = ops[:limit]
	}
	return ops
}

func (e *engine) GetOperationByID(ctx context.Context, id string) (*txtypes.Operation, error) {
	return e.reconcile.GetOperation(ctx, id)
}
