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
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/optimistic"
	"github.com/kaleido-io/dapptx/internal/txerrors"
	"github.com/kaleido-io/dapptx/internal/txpoller"
	"github.com/kaleido-io/dapptx/internal/txregistry"
	"github.com/kaleido-io/dapptx/mocks/metricsmocks"
	"github.com/kaleido-io/dapptx/mocks/stacksmocks"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testContract = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"

type testExplorer struct{}

func (te *testExplorer) TxExplorerURL(txID string) string {
	return "http://explorer/txid/" + txID
}

type testManager struct {
	*Manager
	signer *stacksmocks.Signer
	source *stacksmocks.StatusSource
	mm     *metricsmocks.Manager
	mux    sync.Mutex
	states []txtypes.TxState
}

func newTestManager(t *testing.T, interval time.Duration) *testManager {
	signer := &stacksmocks.Signer{}
	source := &stacksmocks.StatusSource{}
	mm := &metricsmocks.Manager{}
	mm.On("IsMetricsEnabled").Return(true)
	mm.On("TransactionSubmitted", mock.Anything).Maybe()
	mm.On("TransactionBroadcast", mock.Anything).Maybe()
	mm.On("TransactionCompleted", mock.Anything).Maybe()
	mm.On("PollAttempt", mock.Anything).Maybe()
	poller := txpoller.New(source, &txpoller.Config{MaxAttempts: 3, Interval: interval})
	registry := txregistry.New(context.Background(), 0)
	tm := &testManager{
		Manager: NewManager(context.Background(), signer, poller, registry, mm, &testExplorer{}),
		signer:  signer,
		source:  source,
		mm:      mm,
	}
	tm.AddListener(func(op *txtypes.Operation) {
		tm.mux.Lock()
		defer tm.mux.Unlock()
		tm.states = append(tm.states, op.State)
	})
	t.Cleanup(tm.Close)
	return tm
}

func (tm *testManager) observedStates() []txtypes.TxState {
	tm.mux.Lock()
	defer tm.mux.Unlock()
	return append([]txtypes.TxState{}, tm.states...)
}

type hookCapture struct {
	confirmed chan *txtypes.Operation
	failed    chan *txtypes.Operation
}

func newHookCapture() *hookCapture {
	return &hookCapture{
		confirmed: make(chan *txtypes.Operation, 1),
		failed:    make(chan *txtypes.Operation, 1),
	}
}

func greetingSubmission(store *optimistic.Store[string], msg string, hooks *hookCapture) *Submission {
	return &Submission{
		Kind: "greeting.set",
		Call: &stacks.ContractCall{
			ContractAddress: testContract,
			ContractName:    "hello-world",
			FunctionName:    "set-message",
			FunctionArgs:    []clarity.Value{clarity.StringUTF8CV(msg)},
		},
		Effect: StoreEffect(store, "greeting", func(string) string {
			return msg
		}),
		ErrorTable: txerrors.TableGreeting,
		OnConfirmed: func(ctx context.Context, op *txtypes.Operation) {
			hooks.confirmed <- op
		},
		OnFailed: func(ctx context.Context, op *txtypes.Operation) {
			hooks.failed <- op
		},
	}
}

func TestSubmitConfirmed(t *testing.T) {
	tm := newTestManager(t, 0)
	store := optimistic.New("hi")
	hooks := newHookCapture()

	release := make(chan struct{})
	tm.signer.On("SignAndBroadcast", mock.Anything, mock.MatchedBy(func(call *stacks.ContractCall) bool {
		return call.FunctionName == "set-message"
	})).Return("tx-1", nil)
	tm.source.On("GetTransactionStatus", mock.Anything, "tx-1").
		Run(func(args mock.Arguments) { <-release }).
		Return(&stacks.TxInfo{
			TxID:     "tx-1",
			TxStatus: stacks.RemoteTxStatusSuccess,
			TxResult: &stacks.TxResult{Repr: "(ok true)"},
		}, nil)

	op, err := tm.Submit(context.Background(), greetingSubmission(store, "hello", hooks))
	assert.NoError(t, err)
	assert.Equal(t, txtypes.TxStatePending, op.State)
	assert.Equal(t, "tx-1", op.TxID)
	assert.Equal(t, "http://explorer/txid/tx-1", op.ExplorerURL)
	assert.Equal(t, []interface{}{`u"hello"`}, op.Args)

	// Tentative state is visible while the transaction is pending
	record := tm.Registry().Get("tx-1")
	assert.Equal(t, txtypes.TxStatePending, record.State)
	assert.Equal(t, txtypes.TxCounts{Active: 1, Pending: 1}, tm.Registry().Counts())
	assert.Equal(t, "hello", store.Value())
	assert.True(t, store.IsPending())
	assert.Equal(t, 1, tm.ActivePolls())

	close(release)
	confirmed := <-hooks.confirmed
	assert.Equal(t, txtypes.TxStateConfirmed, confirmed.State)
	assert.Equal(t, "(ok true)", confirmed.Result)

	record = tm.Registry().Get("tx-1")
	assert.Equal(t, txtypes.TxStateConfirmed, record.State)
	assert.Equal(t, "(ok true)", record.Result)
	assert.Equal(t, txtypes.TxCounts{}, tm.Registry().Counts())
	assert.False(t, store.IsPending())
	assert.Equal(t, "hello", store.Original())

	fetched, err := tm.GetOperation(context.Background(), op.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, txtypes.TxStateConfirmed, fetched.State)

	tm.Close()
	assert.Equal(t, []txtypes.TxState{
		txtypes.TxStateSigning,
		txtypes.TxStatePending,
		txtypes.TxStateConfirmed,
	}, tm.observedStates())
	assert.Len(t, hooks.failed, 0)
}

func TestSubmitFailedReverts(t *testing.T) {
	tm := newTestManager(t, 0)
	store := optimistic.New("hi")
	hooks := newHookCapture()

	tm.signer.On("SignAndBroadcast", mock.Anything, mock.Anything).Return("tx-1", nil)
	tm.source.On("GetTransactionStatus", mock.Anything, "tx-1").Return(&stacks.TxInfo{
		TxID:     "tx-1",
		TxStatus: stacks.RemoteTxStatusAbortByResponse,
		TxResult: &stacks.TxResult{Repr: "(err u101)"},
	}, nil)

	_, err := tm.Submit(context.Background(), greetingSubmission(store, "hello", hooks))
	assert.NoError(t, err)

	failed := <-hooks.failed
	assert.Equal(t, txtypes.TxStateFailed, failed.State)
	assert.Equal(t, "Transaction failed: abort_by_response", failed.Error)
	assert.Equal(t, "Message is too long (max 100 characters)", failed.Message)

	record := tm.Registry().Get("tx-1")
	assert.Equal(t, txtypes.TxStateFailed, record.State)
	assert.Equal(t, "Transaction failed: abort_by_response", record.Error)
	assert.Nil(t, record.Result)
	assert.Equal(t, "hi", store.Value())
	assert.Equal(t, "hi", store.Original())
	assert.False(t, store.IsPending())
	assert.Len(t, hooks.confirmed, 0)
}

func TestSubmitTimeoutReverts(t *testing.T) {
	tm := newTestManager(t, 0)
	store := optimistic.New("hi")
	hooks := newHookCapture()

	tm.signer.On("SignAndBroadcast", mock.Anything, mock.Anything).Return("tx-1", nil)
	tm.source.On("GetTransactionStatus", mock.Anything, "tx-1").Return(&stacks.TxInfo{
		TxID:     "tx-1",
		TxStatus: stacks.RemoteTxStatusPending,
	}, nil)

	_, err := tm.Submit(context.Background(), greetingSubmission(store, "hello", hooks))
	assert.NoError(t, err)

	failed := <-hooks.failed
	assert.Equal(t, "Transaction timeout - taking longer than expected", failed.Error)
	assert.Equal(t, failed.Error, failed.Message)
	assert.Equal(t, "hi", store.Value())
	tm.source.AssertNumberOfCalls(t, "GetTransactionStatus", 3)
}

func TestSubmitQueryErrorReverts(t *testing.T) {
	tm := newTestManager(t, 0)
	store := optimistic.New("hi")
	hooks := newHookCapture()

	tm.signer.On("SignAndBroadcast", mock.Anything, mock.Anything).Return("tx-1", nil)
	tm.source.On("GetTransactionStatus", mock.Anything, "tx-1").Return(nil, fmt.Errorf("pop"))

	_, err := tm.Submit(context.Background(), greetingSubmission(store, "hello", hooks))
	assert.NoError(t, err)

	failed := <-hooks.failed
	assert.Equal(t, "Failed to check transaction status: pop", failed.Error)
	assert.Equal(t, txtypes.TxStateFailed, tm.Registry().Get("tx-1").State)
	assert.Equal(t, "hi", store.Value())
	assert.False(t, store.IsPending())
}

func TestSubmitCancelledInWallet(t *testing.T) {
	tm := newTestManager(t, 0)
	store := optimistic.New("hi")
	hooks := newHookCapture()

	tm.signer.On("SignAndBroadcast", mock.Anything, mock.Anything).
		Return("", errors.Wrap(stacks.ErrSigningCancelled, "wallet"))

	op, err := tm.Submit(context.Background(), greetingSubmission(store, "hello", hooks))
	assert.NoError(t, err)
	assert.Equal(t, txtypes.TxStateCancelled, op.State)
	assert.Equal(t, "Transaction cancelled. No worries!", op.Message)
	assert.Empty(t, op.Error)
	assert.Empty(t, op.TxID)

	// Nothing was allocated
	assert.Equal(t, 0, tm.Registry().Len())
	assert.False(t, store.IsPending())
	assert.Equal(t, 0, tm.ActivePolls())
	assert.Len(t, hooks.failed, 0)
	tm.source.AssertNotCalled(t, "GetTransactionStatus", mock.Anything, mock.Anything)
	assert.Equal(t, []txtypes.TxState{txtypes.TxStateSigning, txtypes.TxStateCancelled}, tm.observedStates())
}

func TestSubmitSignerError(t *testing.T) {
	tm := newTestManager(t, 0)
	store := optimistic.New("hi")
	hooks := newHookCapture()

	tm.signer.On("SignAndBroadcast", mock.Anything, mock.Anything).Return("", fmt.Errorf("network unreachable"))

	op, err := tm.Submit(context.Background(), greetingSubmission(store, "hello", hooks))
	assert.NoError(t, err)
	assert.Equal(t, txtypes.TxStateFailed, op.State)
	assert.Equal(t, "network unreachable", op.Error)
	assert.Equal(t, "Network connection issue. Please check your internet and try again.", op.Message)
	assert.Equal(t, 0, tm.Registry().Len())
	assert.Equal(t, "hi", store.Value())

	failed := <-hooks.failed
	assert.Equal(t, op.ID, failed.ID)
}

func TestCloseResolvesPendingAsFailed(t *testing.T) {
	tm := newTestManager(t, time.Hour)
	store := optimistic.New("hi")
	hooks := newHookCapture()

	tm.signer.On("SignAndBroadcast", mock.Anything, mock.Anything).Return("tx-1", nil)
	tm.source.On("GetTransactionStatus", mock.Anything, "tx-1").Return(&stacks.TxInfo{
		TxID:     "tx-1",
		TxStatus: stacks.RemoteTxStatusPending,
	}, nil)

	op, err := tm.Submit(context.Background(), greetingSubmission(store, "hello", hooks))
	assert.NoError(t, err)
	assert.Equal(t, "hello", store.Value())

	tm.Close()
	tm.Close()
	assert.Equal(t, 0, tm.ActivePolls())

	failed := <-hooks.failed
	assert.Equal(t, "Stopped polling transaction 'tx-1'", failed.Error)
	assert.Equal(t, txtypes.TxStateFailed, tm.Registry().Get("tx-1").State)
	assert.Equal(t, txtypes.TxCounts{}, tm.Registry().Counts())
	assert.Equal(t, "hi", store.Value())

	fetched, err := tm.GetOperation(context.Background(), op.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, txtypes.TxStateFailed, fetched.State)

	_, err = tm.Submit(context.Background(), greetingSubmission(store, "again", hooks))
	assert.Regexp(t, "DTX10116", err)
}

func TestConcurrentSubmissionsReplay(t *testing.T) {
	tm := newTestManager(t, 0)
	likes := optimistic.New(10)

	tm.signer.On("SignAndBroadcast", mock.Anything, mock.MatchedBy(func(call *stacks.ContractCall) bool {
		return call.FunctionName == "like-ok"
	})).Return("tx-ok", nil)
	tm.signer.On("SignAndBroadcast", mock.Anything, mock.MatchedBy(func(call *stacks.ContractCall) bool {
		return call.FunctionName == "like-fail"
	})).Return("tx-fail", nil)

	releaseOK := make(chan struct{})
	tm.source.On("GetTransactionStatus", mock.Anything, "tx-ok").
		Run(func(args mock.Arguments) { <-releaseOK }).
		Return(&stacks.TxInfo{TxStatus: stacks.RemoteTxStatusSuccess}, nil)
	tm.source.On("GetTransactionStatus", mock.Anything, "tx-fail").
		Return(&stacks.TxInfo{TxStatus: stacks.RemoteTxStatusAbortByPostCondition}, nil)

	done := make(chan *txtypes.Operation, 2)
	hook := func(ctx context.Context, op *txtypes.Operation) { done <- op }
	like := func(fn string) *Submission {
		return &Submission{
			Kind:        "greeting.like",
			Call:        &stacks.ContractCall{ContractAddress: testContract, ContractName: "hello-world", FunctionName: fn},
			Effect:      StoreEffect(likes, "like", func(v int) int { return v + 1 }),
			OnConfirmed: hook,
			OnFailed:    hook,
		}
	}

	_, err := tm.Submit(context.Background(), like("like-ok"))
	assert.NoError(t, err)
	_, err = tm.Submit(context.Background(), like("like-fail"))
	assert.NoError(t, err)

	op := <-done
	assert.Equal(t, txtypes.TxStateFailed, op.State)
	assert.Equal(t, 11, likes.Value())
	assert.Equal(t, 10, likes.Original())

	close(releaseOK)
	op = <-done
	assert.Equal(t, txtypes.TxStateConfirmed, op.State)
	assert.Equal(t, 11, likes.Value())
	assert.Equal(t, 11, likes.Original())
	assert.Len(t, tm.Operations(), 2)
	assert.Equal(t, "like-fail", tm.Operations()[0].FunctionName)
}

func TestSubmitInvalid(t *testing.T) {
	tm := newTestManager(t, 0)
	_, err := tm.Submit(context.Background(), nil)
	assert.Regexp(t, "DTX10119", err)
	_, err = tm.Submit(context.Background(), &Submission{Call: &stacks.ContractCall{}})
	assert.Regexp(t, "DTX10119", err)

	_, err = tm.GetOperation(context.Background(), "missing")
	assert.Regexp(t, "DTX10115", err)
}

func TestEffectsCombined(t *testing.T) {
	a := optimistic.New(1)
	b := optimistic.New("x")
	e := Effects{
		StoreEffect(a, "n", func(v int) int { return v * 5 }),
		StoreEffect(b, "s", func(v string) string { return v + "y" }),
	}
	e.Apply()
	assert.Equal(t, 5, a.Value())
	assert.Equal(t, "xy", b.Value())
	e.Revert()
	assert.Equal(t, 1, a.Value())
	assert.Equal(t, "x", b.Value())
	e.Apply()
	e.Confirm()
	assert.Equal(t, 5, a.Original())
	assert.Equal(t, "xy", b.Original())
}
