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
	"fmt"
	"testing"
	"time"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/dapps/tasks"
	"github.com/kaleido-io/dapptx/internal/wallet"
	"github.com/kaleido-io/dapptx/internal/wsserver"
	"github.com/kaleido-io/dapptx/mocks/metricsmocks"
	"github.com/kaleido-io/dapptx/mocks/stacksmocks"
	"github.com/kaleido-io/dapptx/mocks/wsservermocks"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testAddress = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"

type testEngine struct {
	*engine
	status *stacksmocks.StatusSource
	signer *stacksmocks.Signer
	reader *stacksmocks.ReadOnlyCaller
	ws     *wsservermocks.WebSocketServer
}

func newTestEngine(t *testing.T) *testEngine {
	config.Reset()
	config.Set(config.PollerInterval, "1ms")
	config.Set(config.PollerMaxAttempts, 1000)
	config.Set(config.EcosystemRefreshInterval, "0")
	te := &testEngine{
		engine: NewEngine().(*engine),
		status: &stacksmocks.StatusSource{},
		signer: &stacksmocks.Signer{},
		reader: &stacksmocks.ReadOnlyCaller{},
		ws:     &wsservermocks.WebSocketServer{},
	}
	te.engine.statusSource = te.status
	te.engine.signer = te.signer
	te.engine.reader = te.reader
	te.engine.ws = te.ws
	te.ws.On("Broadcast", mock.Anything, mock.Anything).Return()
	te.ws.On("Close").Return()

	ctx, cancel := context.WithCancel(context.Background())
	err := te.Init(ctx, cancel)
	assert.NoError(t, err)
	t.Cleanup(te.WaitStop)
	return te
}

func (te *testEngine) signIn(t *testing.T) {
	assert.NoError(t, te.session.Connect(context.Background(), testAddress))
}

func TestInitDefaults(t *testing.T) {
	config.Reset()
	e := NewEngine().(*engine)
	ctx, cancel := context.WithCancel(context.Background())
	err := e.Init(ctx, cancel)
	assert.NoError(t, err)
	assert.Equal(t, "devnet", e.network.Name)
	assert.NotNil(t, e.statusSource)
	assert.NotNil(t, e.reader)
	assert.IsType(t, &wallet.RemoteSigner{}, e.signer)
	assert.NotNil(t, e.WebSockets())
	assert.False(t, e.session.IsSignedIn())

	assert.NoError(t, e.Start())
	e.WaitStop()
}

func TestInitBadNetwork(t *testing.T) {
	config.Reset()
	config.Set(config.NetworkMode, "moonnet")
	e := NewEngine()
	err := e.Init(context.Background(), func() {})
	assert.Regexp(t, "DTX10117", err)
}

func TestInitWalletFromConfig(t *testing.T) {
	config.Reset()
	e := NewEngine().(*engine)
	walletConfig.Set(wallet.WalletConfigAddress, testAddress)
	defer walletConfig.Set(wallet.WalletConfigAddress, "")
	err := e.Init(context.Background(), func() {})
	assert.NoError(t, err)
	assert.Equal(t, testAddress, e.GetWallet(context.Background()).Address)
}

func TestInitWalletFromConfigBadAddress(t *testing.T) {
	config.Reset()
	e := NewEngine().(*engine)
	walletConfig.Set(wallet.WalletConfigAddress, "not-an-address")
	defer walletConfig.Set(wallet.WalletConfigAddress, "")
	err := e.Init(context.Background(), func() {})
	assert.Regexp(t, "DTX10150", err)
}

func TestGreetingConfirmedEndToEnd(t *testing.T) {
	te := newTestEngine(t)
	te.signIn(t)
	ctx := context.Background()

	te.signer.On("SignAndBroadcast", mock.Anything, mock.MatchedBy(func(call *stacks.ContractCall) bool {
		return call.FunctionName == "set-greeting-with-payment"
	})).Return("0xabc", nil)
	te.status.On("GetTransactionStatus", mock.Anything, "0xabc").Return(&stacks.TxInfo{
		TxID:     "0xabc",
		TxStatus: stacks.RemoteTxStatusSuccess,
		TxResult: &stacks.TxResult{Repr: "(ok true)"},
	}, nil)
	te.reader.On("CallReadOnly", mock.Anything, testAddress, "advanced-hello-world", "get-greeting").
		Return(clarity.OkCV(clarity.StringASCIICV("Hello dapptx")), nil)

	op, err := te.SetGreeting(ctx, &GreetingInput{Message: "Hello dapptx"})
	assert.NoError(t, err)
	assert.Equal(t, txtypes.TxStatePending, op.State)
	assert.Equal(t, "0xabc", op.TxID)

	assert.Eventually(t, func() bool {
		op, err := te.GetOperationByID(ctx, op.ID.String())
		return err == nil && op.State == txtypes.TxStateConfirmed
	}, 5*time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		state, err := te.GetGreeting(ctx, false)
		return err == nil && state.ConfirmedGreeting == "Hello dapptx" && !state.GreetingPending
	}, 5*time.Second, 5*time.Millisecond)

	records, err := te.GetTransactions(ctx, "confirmed", 0)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	record, err := te.GetTransactionByID(ctx, "0xabc")
	assert.NoError(t, err)
	assert.Equal(t, "set-greeting-with-payment", record.FunctionName)

	status := te.GetStatus(ctx)
	assert.Equal(t, 1, status.Tracked)
	assert.Equal(t, 0, status.Counts.Active)
	assert.Equal(t, testAddress, status.Wallet.Address)
	assert.Len(t, te.GetOperations(ctx, 0), 1)

	cleared := te.ClearCompleted(ctx)
	assert.Equal(t, 1, cleared.Removed)
	_, err = te.GetTransactionByID(ctx, "0xabc")
	assert.Regexp(t, "DTX10114", err)

	te.ws.AssertCalled(t, "Broadcast", wsserver.TopicTransactions, mock.Anything)
	te.ws.AssertCalled(t, "Broadcast", wsserver.TopicOperations, mock.Anything)
}

func TestTransactionQueries(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()
	te.registry.Add("0x01", "transfer", nil)
	te.registry.Add("0x02", "transfer", nil)
	te.registry.Add("0x03", "like-greeting", nil)

	records, err := te.GetTransactions(ctx, "", 2)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "0x03", records[0].ID)

	records, err = te.GetTransactions(ctx, "pending", 0)
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = te.GetTransactions(ctx, "lost", 0)
	assert.Regexp(t, "DTX10113", err)

	assert.NoError(t, te.DeleteTransaction(ctx, "0x02"))
	assert.Regexp(t, "DTX10114", te.DeleteTransaction(ctx, "0x02"))
	assert.Equal(t, 2, te.GetStatus(ctx).Counts.Pending)

	_, err = te.GetOperationByID(ctx, "unknown")
	assert.Regexp(t, "DTX10115", err)
	assert.Empty(t, te.GetOperations(ctx, 5))
}

func TestSubmitNotSignedIn(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	_, err := te.SetPersonalGreeting(ctx, &GreetingInput{Message: "hi"})
	assert.Regexp(t, "DTX10126", err)
	_, err = te.LikeGreeting(ctx, &LikeInput{EntryID: 1})
	assert.Regexp(t, "DTX10126", err)
	_, err = te.ClaimTokens(ctx)
	assert.Regexp(t, "DTX10126", err)
	_, err = te.CompleteTask(ctx, "1")
	assert.Regexp(t, "DTX10126", err)
	_, err = te.GetTaskSummary(ctx)
	assert.Regexp(t, "DTX10126", err)
	te.signer.AssertNotCalled(t, "SignAndBroadcast", mock.Anything, mock.Anything)
}

func TestSigningCancelled(t *testing.T) {
	te := newTestEngine(t)
	te.signIn(t)
	ctx := context.Background()
	te.signer.On("SignAndBroadcast", mock.Anything, mock.Anything).Return("", stacks.ErrSigningCancelled)

	op, err := te.TransferTokens(ctx, &TokenTransfer{Recipient: testAddress, Amount: "0"})
	assert.Regexp(t, "DTX10146", err)
	assert.Nil(t, op)

	te.reader.On("CallReadOnly", mock.Anything, testAddress, "ageofdevs-token", "get-balance", mock.Anything).
		Return(clarity.OkCV(clarity.UIntCV(5000000)), nil)
	balance, err := te.GetTokenBalance(ctx, true)
	assert.NoError(t, err)
	assert.Equal(t, uint64(5000000), balance.Balance)

	op, err = te.TransferTokens(ctx, &TokenTransfer{Recipient: testAddress, Amount: "1"})
	assert.NoError(t, err)
	assert.Equal(t, txtypes.TxStateCancelled, op.State)
	balance, err = te.GetTokenBalance(ctx, false)
	assert.NoError(t, err)
	assert.Equal(t, uint64(5000000), balance.Balance)
	assert.Empty(t, te.registry.All())
}

func TestConnectWalletRefreshes(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()
	te.reader.On("CallReadOnly", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("pop"))
	te.reader.On("CallReadOnly", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("pop"))

	_, err := te.ConnectWallet(ctx, &WalletConnect{Address: "bad"})
	assert.Regexp(t, "DTX10133", err)

	info, err := te.ConnectWallet(ctx, &WalletConnect{Address: testAddress})
	assert.NoError(t, err)
	assert.True(t, info.SignedIn)
	te.reader.AssertCalled(t, "CallReadOnly", mock.Anything, testAddress, "advanced-hello-world", "get-greeting")

	info = te.DisconnectWallet(ctx)
	assert.False(t, info.SignedIn)
}

func TestWalletSwitchResetsState(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()
	second := clarity.C32CheckAddress(clarity.AddressVersionTestnetSingleSig, [20]byte{4, 5, 6})
	me, err := clarity.StandardPrincipalCV(testAddress)
	assert.NoError(t, err)

	te.reader.On("CallReadOnly", mock.Anything, testAddress, "task-manager", "get-community-stats").
		Return(clarity.OkCV(clarity.TupleCV(map[string]clarity.Value{"total-tasks": clarity.UIntCV(1)})), nil).Once()
	te.reader.On("CallReadOnly", mock.Anything, testAddress, "task-manager", "get-task", clarity.UIntCV(1)).
		Return(clarity.SomeCV(clarity.TupleCV(map[string]clarity.Value{
			"title":    clarity.StringASCIICV("mine"),
			"creator":  me,
			"category": clarity.StringASCIICV("testing"),
			"status":   clarity.StringASCIICV(string(tasks.TaskStatusOpen)),
		})), nil).Once()
	te.reader.On("CallReadOnly", mock.Anything, testAddress, "ageofdevs-token", "get-balance", me).
		Return(clarity.OkCV(clarity.UIntCV(500000000)), nil).Once()
	te.reader.On("CallReadOnly", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("pop"))
	te.reader.On("CallReadOnly", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("pop"))

	_, err = te.ConnectWallet(ctx, &WalletConnect{Address: testAddress})
	assert.NoError(t, err)
	balance, err := te.GetTokenBalance(ctx, false)
	assert.NoError(t, err)
	assert.Equal(t, uint64(500000000), balance.Balance)
	list, err := te.GetTasks(ctx, "", "", false)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	te.DisconnectWallet(ctx)
	balance, err = te.GetTokenBalance(ctx, false)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), balance.Balance)
	assert.Empty(t, balance.Address)
	list, err = te.GetTasks(ctx, "", "", false)
	assert.NoError(t, err)
	assert.Empty(t, list)

	info, err := te.ConnectWallet(ctx, &WalletConnect{Address: second})
	assert.NoError(t, err)
	assert.Equal(t, second, info.Address)
	balance, err = te.GetTokenBalance(ctx, false)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), balance.Balance)
	assert.Equal(t, second, balance.Address)
	list, err = te.GetTasks(ctx, "", "", false)
	assert.NoError(t, err)
	assert.Empty(t, list)
	assert.Nil(t, te.ecosystem.State().Stats)
}

func TestSwitchWalletWithoutDisconnect(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()
	me, err := clarity.StandardPrincipalCV(testAddress)
	assert.NoError(t, err)
	te.reader.On("CallReadOnly", mock.Anything, testAddress, "ageofdevs-token", "get-balance", me).
		Return(clarity.OkCV(clarity.UIntCV(7000000)), nil).Once()
	te.reader.On("CallReadOnly", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("pop"))
	te.reader.On("CallReadOnly", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("pop"))

	_, err = te.ConnectWallet(ctx, &WalletConnect{Address: testAddress})
	assert.NoError(t, err)
	assert.Equal(t, uint64(7000000), te.token.Balance().Balance)

	// Reconnecting the same address keeps the state, even though this refresh fails
	_, err = te.ConnectWallet(ctx, &WalletConnect{Address: testAddress})
	assert.NoError(t, err)
	assert.Equal(t, uint64(7000000), te.token.Balance().Balance)

	second := clarity.C32CheckAddress(clarity.AddressVersionTestnetSingleSig, [20]byte{4, 5, 6})
	_, err = te.ConnectWallet(ctx, &WalletConnect{Address: second})
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), te.token.Balance().Balance)
}

func TestRegistryGaugesUseLiveCounts(t *testing.T) {
	te := newTestEngine(t)
	mm := &metricsmocks.Manager{}
	te.engine.metrics = mm
	mm.On("IsMetricsEnabled").Return(true)
	mm.On("RegistryCounts", txtypes.TxCounts{Active: 1, Pending: 1}).Return()

	te.registry.Add("0xa1", "transfer", nil)
	// An event delivered late still carries the counts from before the add
	te.onRegistryChange(&txtypes.ChangeEvent{Seq: 0, Type: txtypes.ChangeEventTypeCleared})

	mm.AssertNumberOfCalls(t, "RegistryCounts", 2)
	mm.AssertNotCalled(t, "RegistryCounts", txtypes.TxCounts{})
}

func TestGetTasksFiltering(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	_, err := te.GetTasks(ctx, "lost", "", false)
	assert.Regexp(t, "DTX10149", err)

	tasksList, err := te.GetTasks(ctx, string(tasks.TaskStatusOpen), "", false)
	assert.NoError(t, err)
	assert.Empty(t, tasksList)

	_, err = te.GetTasks(ctx, "", "", true)
	assert.Regexp(t, "DTX10126", err)
}

func TestCreateTaskOptimistic(t *testing.T) {
	te := newTestEngine(t)
	te.signIn(t)
	ctx := context.Background()
	te.signer.On("SignAndBroadcast", mock.Anything, mock.Anything).Return("0xt1", nil)
	te.status.On("GetTransactionStatus", mock.Anything, "0xt1").Return(&stacks.TxInfo{
		TxID:     "0xt1",
		TxStatus: stacks.RemoteTxStatusPending,
	}, nil)

	op, err := te.CreateTask(ctx, &tasks.CreateTaskInput{
		Title:       "Write docs",
		Description: "Document the API",
		Category:    "Writing",
		Difficulty:  2,
		Reward:      1.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, txtypes.TxStatePending, op.State)

	list, err := te.GetTasks(ctx, "", "writing", false)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.True(t, list[0].Optimistic)

	summary, err := te.GetTaskSummary(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Stats.Created)

	_, err = te.ApplyForTask(ctx, list[0].ID, &TaskApplication{Message: "me"})
	assert.Regexp(t, "DTX10143", err)
}
