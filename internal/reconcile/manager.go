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
	"context"
	"errors"
	"sync"

	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/metrics"
	"github.com/kaleido-io/dapptx/internal/txerrors"
	"github.com/kaleido-io/dapptx/internal/txpoller"
	"github.com/kaleido-io/dapptx/internal/txregistry"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

const maxOperations = 1000

// Hook is invoked with a copy of the operation once it reaches a terminal state
type Hook func(ctx context.Context, op *txtypes.Operation)

// Submission is one contract call, together with its optimistic effect and outcome hooks
type Submission struct {
	Kind       string
	Call       *stacks.ContractCall
	Args       []interface{}
	Effect     Effect
	ErrorTable txerrors.Table
	// OnConfirmed is where the authoritative data is re-read
	OnConfirmed Hook
	// OnFailed is called for signer failures, as well as confirmation failures. Not for cancellation.
	OnFailed Hook
}

// ExplorerLinker builds a block explorer link for a transaction
type ExplorerLinker interface {
	TxExplorerURL(txID string) string
}

type OperationListener func(op *txtypes.Operation)

// Manager drives submissions from signing, through broadcast, to confirmation or failure
type Manager struct {
	ctx       context.Context
	cancelCtx context.CancelFunc
	signer    stacks.Signer
	poller    *txpoller.Poller
	registry  *txregistry.Registry
	metrics   metrics.Manager
	explorer  ExplorerLinker

	mux        sync.Mutex
	closed     bool
	operations map[string]*txtypes.Operation
	opOrder    []string
	handles    map[string]*txpoller.Handle
	listeners  []OperationListener
	wg         sync.WaitGroup
}

func NewManager(ctx context.Context, signer stacks.Signer, poller *txpoller.Poller, registry *txregistry.Registry, mm metrics.Manager, explorer ExplorerLinker) *Manager {
	ctx, cancelCtx := context.WithCancel(log.WithLogField(ctx, "role", "reconcile"))
	return &Manager{
		ctx:        ctx,
		cancelCtx:  cancelCtx,
		signer:     signer,
		poller:     poller,
		registry:   registry,
		metrics:    mm,
		explorer:   explorer,
		operations: make(map[string]*txtypes.Operation),
		handles:    make(map[string]*txpoller.Handle),
	}
}

func (m *Manager) Registry() *txregistry.Registry {
	return m.registry
}

func (m *Manager) AddListener(l OperationListener) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Manager) metricsEnabled() bool {
	return m.metrics != nil && m.metrics.IsMetricsEnabled()
}

// update mutates the operation under the lock, and publishes a copy
func (m *Manager) update(op *txtypes.Operation, fn func(op *txtypes.Operation)) *txtypes.Operation {
	m.mux.Lock()
	fn(op)
	op.Updated = txtypes.Now()
	c := op.Copy()
	listeners := make([]OperationListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mux.Unlock()
	for _, l := range listeners {
		l(c.Copy())
	}
	return c
}

func (m *Manager) trackOperation(op *txtypes.Operation) {
	id := op.ID.String()
	m.operations[id] = op
	m.opOrder = append(m.opOrder, id)
	if len(m.opOrder) <= maxOperations {
		return
	}
	for i, oldID := range m.opOrder {
		if old := m.operations[oldID]; old == nil || old.State.IsTerminal() {
			delete(m.operations, oldID)
			m.opOrder = append(m.opOrder[:i], m.opOrder[i+1:]...)
			return
		}
	}
}

func displayArgs(sub *Submission) []interface{} {
	if sub.Args != nil {
		return sub.Args
	}
	args := make([]interface{}, len(sub.Call.FunctionArgs))
	for i, a := range sub.Call.FunctionArgs {
		args[i] = a.String()
	}
	return args
}

// Submit asks the wallet to sign and broadcast the call. It returns once the wallet has answered,
// with the operation in the cancelled, failed or pending state. A pending operation is then
// reconciled in the background. An error is only returned if no operation could be started.
func (m *Manager) Submit(ctx context.Context, sub *Submission) (*txtypes.Operation, error) {
	if sub == nil || sub.Call == nil {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidSubmission, "missing contract call")
	}
	if sub.Call.FunctionName == "" {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidSubmission, "missing function name")
	}

	op := &txtypes.Operation{
		ID:           txtypes.NewUUID(),
		Kind:         sub.Kind,
		Contract:     sub.Call.ContractID(),
		FunctionName: sub.Call.FunctionName,
		Args:         displayArgs(sub),
		State:        txtypes.TxStateSigning,
		Created:      txtypes.Now(),
	}
	m.mux.Lock()
	if m.closed {
		m.mux.Unlock()
		return nil, i18n.NewError(ctx, i18n.MsgManagerClosed)
	}
	m.wg.Add(1)
	defer m.wg.Done()
	m.trackOperation(op)
	m.mux.Unlock()

	ctx = log.WithLogField(ctx, "op", op.ID.String())
	log.L(ctx).Infof("Submitting %s %s.%s", op.Kind, op.Contract, op.FunctionName)
	m.update(op, func(op *txtypes.Operation) {})
	if m.metricsEnabled() {
		m.metrics.TransactionSubmitted(op)
	}

	txID, err := m.signer.SignAndBroadcast(ctx, sub.Call)
	if err != nil {
		return m.signFailed(ctx, op, sub, err), nil
	}

	// From here there is a transaction on chain, so the record and the effect exist until it resolves
	ctx = log.WithLogField(ctx, "tx", txID)
	c := m.update(op, func(op *txtypes.Operation) {
		op.TxID = txID
		op.State = txtypes.TxStatePending
		if m.explorer != nil {
			op.ExplorerURL = m.explorer.TxExplorerURL(txID)
		}
	})
	m.registry.Add(txID, op.FunctionName, op.Args)
	if sub.Effect != nil {
		sub.Effect.Apply()
	}
	if m.metricsEnabled() {
		m.metrics.TransactionBroadcast(c)
	}
	log.L(ctx).Infof("Broadcast %s", txID)

	pollCtx := log.WithLogField(m.ctx, "op", op.ID.String())
	handle := m.poller.Start(pollCtx, txID, func(status *txtypes.TransactionStatus) {
		m.onPollUpdate(op, status)
	})
	m.mux.Lock()
	m.handles[op.ID.String()] = handle
	m.mux.Unlock()

	m.wg.Add(1)
	go m.awaitOutcome(pollCtx, op, sub, handle)
	return c, nil
}

func (m *Manager) signFailed(ctx context.Context, op *txtypes.Operation, sub *Submission, err error) *txtypes.Operation {
	var c *txtypes.Operation
	if errors.Is(err, stacks.ErrSigningCancelled) {
		log.L(ctx).Infof("Signing cancelled in wallet")
		c = m.update(op, func(op *txtypes.Operation) {
			op.State = txtypes.TxStateCancelled
			op.Message = txerrors.Translate(ctx, sub.ErrorTable, err)
		})
	} else {
		log.L(ctx).Errorf("Signing failed: %s", err)
		c = m.update(op, func(op *txtypes.Operation) {
			op.State = txtypes.TxStateFailed
			op.Error = err.Error()
			op.Message = txerrors.Translate(ctx, sub.ErrorTable, err)
		})
	}
	if m.metricsEnabled() {
		m.metrics.TransactionCompleted(c)
	}
	if c.State == txtypes.TxStateFailed && sub.OnFailed != nil {
		sub.OnFailed(ctx, c.Copy())
	}
	return c
}

func (m *Manager) onPollUpdate(op *txtypes.Operation, status *txtypes.TransactionStatus) {
	if m.metricsEnabled() {
		m.metrics.PollAttempt(status)
	}
	if status.IsTerminal() {
		// Resolved once, after the poll completes
		return
	}
	m.registry.Update(status.TxID, status.ToUpdate())
}

func (m *Manager) awaitOutcome(ctx context.Context, op *txtypes.Operation, sub *Submission, handle *txpoller.Handle) {
	defer m.wg.Done()
	status, err := handle.Wait()

	m.mux.Lock()
	delete(m.handles, op.ID.String())
	m.mux.Unlock()

	if err != nil {
		var qe *txpoller.QueryError
		if errors.As(err, &qe) {
			status = qe.Status
		} else {
			// Stopped without an outcome, which is still resolved so nothing stays pending
			status = &txtypes.TransactionStatus{
				TxID:   handle.TxID(),
				Status: txtypes.PollStatusFailed,
				Error:  i18n.Expand(ctx, i18n.MsgPollCancelled, handle.TxID()),
			}
		}
	}
	m.resolve(ctx, op, sub, status)
}

func failureMessage(ctx context.Context, table txerrors.Table, status *txtypes.TransactionStatus) string {
	if repr, ok := status.Result.(string); ok {
		if _, isCode := txerrors.ContractErrorCode(repr); isCode {
			return txerrors.TranslateMessage(ctx, table, repr)
		}
	}
	return status.Error
}

func (m *Manager) resolve(ctx context.Context, op *txtypes.Operation, sub *Submission, status *txtypes.TransactionStatus) {
	ctx = log.WithLogField(ctx, "tx", status.TxID)
	m.registry.Update(status.TxID, status.ToUpdate())

	var c *txtypes.Operation
	if status.Status == txtypes.PollStatusConfirmed {
		if sub.Effect != nil {
			sub.Effect.Confirm()
		}
		c = m.update(op, func(op *txtypes.Operation) {
			op.State = txtypes.TxStateConfirmed
			op.Result = status.Result
		})
		log.L(ctx).Infof("Confirmed %s", c.FunctionName)
	} else {
		if sub.Effect != nil {
			sub.Effect.Revert()
		}
		c = m.update(op, func(op *txtypes.Operation) {
			op.State = txtypes.TxStateFailed
			op.Error = status.Error
			op.Message = failureMessage(ctx, sub.ErrorTable, status)
		})
		log.L(ctx).Warnf("Failed %s: %s", c.FunctionName, c.Error)
	}

	if m.metricsEnabled() {
		m.metrics.TransactionCompleted(c)
	}
	switch {
	case c.State == txtypes.TxStateConfirmed && sub.OnConfirmed != nil:
		sub.OnConfirmed(ctx, c.Copy())
	case c.State == txtypes.TxStateFailed && sub.OnFailed != nil:
		sub.OnFailed(ctx, c.Copy())
	}
}

func (m *Manager) GetOperation(ctx context.Context, id string) (*txtypes.Operation, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	op, ok := m.operations[id]
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgOperationNotFound, id)
	}
	return op.Copy(), nil
}

// Operations returns the tracked operations, most recent first
func (m *Manager) Operations() []*txtypes.Operation {
	m.mux.Lock()
	defer m.mux.Unlock()
	ops := make([]*txtypes.Operation, 0, len(m.opOrder))
	for i := len(m.opOrder) - 1; i >= 0; i-- {
		if op, ok := m.operations[m.opOrder[i]]; ok {
			ops = append(ops, op.Copy())
		}
	}
	return ops
}

// ActivePolls is the number of pollers still running
func (m *Manager) ActivePolls() int {
	m.mux.Lock()
	defer m.mux.Unlock()
	return len(m.handles)
}

// Close stops accepting submissions, stops every poller, and waits for every in-flight operation
// to resolve. Operations that were still pending resolve as failed.
func (m *Manager) Close() {
	m.mux.Lock()
	if m.closed {
		m.mux.Unlock()
		return
	}
	m.closed = true
	handles := make([]*txpoller.Handle, 0, len(m.handles))
	for _, h := range m.handles {
		handles = append(handles, h)
	}
	m.mux.Unlock()

	log.L(m.ctx).Infof("Closing with %d active polls", len(handles))
	for _, h := range handles {
		h.Cancel()
	}
	m.cancelCtx()
	m.wg.Wait()
}
