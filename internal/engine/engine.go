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

	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/dapps"
	"github.com/kaleido-io/dapptx/internal/dapps/greeting"
	"github.com/kaleido-io/dapptx/internal/dapps/tasks"
	"github.com/kaleido-io/dapptx/internal/dapps/token"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/metrics"
	"github.com/kaleido-io/dapptx/internal/reconcile"
	"github.com/kaleido-io/dapptx/internal/stacksapi"
	"github.com/kaleido-io/dapptx/internal/txpoller"
	"github.com/kaleido-io/dapptx/internal/txregistry"
	"github.com/kaleido-io/dapptx/internal/wallet"
	"github.com/kaleido-io/dapptx/internal/wsserver"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

var (
	stacksAPIConfig = config.NewPluginConfig("stacks").SubPrefix("api")
	walletConfig    = config.NewPluginConfig("wallet")
)

// Engine is the main interface behind the API, implementing the actions
type Engine interface {
	Init(ctx context.Context, cancelCtx context.CancelFunc) error
	Start() error
	WaitStop()

	WebSockets() wsserver.WebSocketServer

	// Transactions
	GetStatus(ctx context.Context) *Status
	GetTransactions(ctx context.Context, state string, limit int) ([]*txtypes.TransactionRecord, error)
	GetTransactionByID(ctx context.Context, id string) (*txtypes.TransactionRecord, error)
	DeleteTransaction(ctx context.Context, id string) error
	ClearCompleted(ctx context.Context) *ClearResult
	GetOperations(ctx context.Context, limit int) []*txtypes.Operation
	GetOperationByID(ctx context.Context, id string) (*txtypes.Operation, error)

	// Wallet
	GetWallet(ctx context.Context) *wallet.SessionInfo
	ConnectWallet(ctx context.Context, input *WalletConnect) (*wallet.SessionInfo, error)
	DisconnectWallet(ctx context.Context) *wallet.SessionInfo

	// Greeting
	GetGreeting(ctx context.Context, fresh bool) (*greeting.State, error)
	SetGreeting(ctx context.Context, input *GreetingInput) (*txtypes.Operation, error)
	SetPersonalGreeting(ctx context.Context, input *GreetingInput) (*txtypes.Operation, error)
	LikeGreeting(ctx context.Context, input *LikeInput) (*txtypes.Operation, error)

	// Tasks
	GetTasks(ctx context.Context, status, category string, fresh bool) ([]*tasks.Task, error)
	GetTaskSummary(ctx context.Context) (*TaskSummary, error)
	CreateTask(ctx context.Context, input *tasks.CreateTaskInput) (*txtypes.Operation, error)
	ApplyForTask(ctx context.Context, id string, input *TaskApplication) (*txtypes.Operation, error)
	CompleteTask(ctx context.Context, id string) (*txtypes.Operation, error)

	// Token
	TransferTokens(ctx context.Context, input *TokenTransfer) (*txtypes.Operation, error)
	ClaimTokens(ctx context.Context) (*txtypes.Operation, error)
	GetTokenBalance(ctx context.Context, fresh bool) (*token.Balance, error)
	GetTokenHolder(ctx context.Context) (*token.HolderStats, error)
	GetTokenDistribution(ctx context.Context) (*token.DistributionInfo, error)
}

type engine struct {
	ctx          context.Context
	cancelCtx    context.CancelFunc
	network      *stacksapi.Network
	statusSource stacks.StatusSource
	reader       stacks.ReadOnlyCaller
	signer       stacks.Signer
	session      *wallet.Session
	metrics      metrics.Manager
	registry     *txregistry.Registry
	reconcile    *reconcile.Manager
	greeting     *greeting.Board
	ecosystem    *tasks.Ecosystem
	tasks        *tasks.TaskManager
	token        *token.Token
	ws           wsserver.WebSocketServer
}

func NewEngine() Engine {
	e := &engine{}

	stacksapi.InitConfigPrefix(stacksAPIConfig)
	wallet.InitConfigPrefix(walletConfig)

	return e
}

func (e *engine) Init(ctx context.Context, cancelCtx context.CancelFunc) (err error) {
	e.ctx = log.WithLogField(ctx, "role", "engine")
	e.cancelCtx = cancelCtx
	if err = e.initPlugins(e.ctx); err == nil {
		err = e.initComponents(e.ctx)
	}
	return err
}

func (e *engine) initPlugins(ctx context.Context) (err error) {
	mode := config.GetString(config.NetworkMode)
	if e.network == nil {
		if e.network, err = stacksapi.GetNetwork(ctx, mode); err != nil {
			return err
		}
	}
	if e.statusSource == nil || e.reader == nil {
		client := stacksapi.New(ctx, stacksAPIConfig, e.network, config.GetString(config.NetworkContractAddress))
		if e.statusSource == nil {
			e.statusSource = client
		}
		if e.reader == nil {
			e.reader = client
		}
	}
	if e.session == nil {
		e.session = wallet.NewSession(e.network.Name)
		if address := walletConfig.GetString(wallet.WalletConfigAddress); address != "" {
			if err = e.session.Connect(ctx, address); err != nil {
				return i18n.WrapError(ctx, err, i18n.MsgEngineInitFailed, "wallet", err)
			}
		}
	}
	if e.signer == nil {
		e.signer = wallet.NewRemoteSigner(ctx, walletConfig, e.session, e.network.Name)
	}
	return nil
}

func (e *engine) initComponents(ctx context.Context) (err error) {
	if e.metrics == nil {
		e.metrics = metrics.NewMetricsManager(ctx)
	}
	if e.ws == nil {
		e.ws = wsserver.NewWebSocketServer(ctx)
	}
	if e.registry == nil {
		e.registry = txregistry.New(ctx, config.GetInt(config.RegistryRecentLimit))
		e.registry.AddListener(e.onRegistryChange)
	}
	if e.reconcile == nil {
		poller := txpoller.New(e.statusSource, txpoller.ConfigFromRoot())
		e.reconcile = reconcile.NewManager(ctx, e.signer, poller, e.registry, e.metrics, e.network)
		e.reconcile.AddListener(e.onOperationChange)
	}

	deployer := config.GetString(config.NetworkContractAddress)
	contract := func(key config.RootKey) dapps.Contract {
		return dapps.Contract{Address: deployer, Name: config.GetString(key)}
	}
	if e.greeting == nil {
		e.greeting = greeting.NewBoard(contract(config.ContractsGreeting), e.session, e.reconcile, e.reader)
	}
	if e.ecosystem == nil {
		e.ecosystem = tasks.NewEcosystem(contract(config.ContractsTasks), e.session, e.reader, config.GetDuration(config.EcosystemRefreshInterval))
	}
	if e.tasks == nil {
		e.tasks = tasks.NewTaskManager(e.ecosystem, e.reconcile)
	}
	if e.token == nil {
		e.token = token.New(contract(config.ContractsToken), e.session, e.reconcile, e.reader)
	}
	return nil
}

// onRegistryChange runs outside the registry lock, so events from concurrent mutations can arrive
// in any order. The gauges take the live counts rather than the counts carried by the event, and
// websocket clients order events by their sequence number.
func (e *engine) onRegistryChange(event *txtypes.ChangeEvent) {
	if e.metrics.IsMetricsEnabled() {
		e.metrics.RegistryCounts(e.registry.Counts())
	}
	e.ws.Broadcast(wsserver.TopicTransactions, event)
}

func (e *engine) onOperationChange(op *txtypes.Operation) {
	e.ws.Broadcast(wsserver.TopicOperations, op)
}

func (e *engine) Start() error {
	if err := e.metrics.Start(); err != nil {
		return err
	}
	e.ecosystem.Start(e.ctx)
	if e.session.IsSignedIn() {
		e.refreshAll(e.ctx)
	}
	return nil
}

// refreshAll loads the confirmed state of each contract for the signed in wallet. Failures are
// logged, and the next read or periodic refresh tries again.
func (e *engine) refreshAll(ctx context.Context) {
	if err := e.greeting.Refresh(ctx); err != nil {
		log.L(ctx).Warnf("Greeting refresh failed: %s", err)
	}
	if err := e.ecosystem.Load(ctx); err != nil {
		log.L(ctx).Warnf("Task refresh failed: %s", err)
	}
	if err := e.token.RefreshBalance(ctx); err != nil {
		log.L(ctx).Warnf("Balance refresh failed: %s", err)
	}
}

func (e *engine) WaitStop() {
	if e.cancelCtx != nil {
		e.cancelCtx()
	}
	// Init might have failed part way through
	if e.ecosystem != nil {
		e.ecosystem.WaitStop()
	}
	if e.reconcile != nil {
		e.reconcile.Close()
	}
	if e.ws != nil {
		e.ws.Close()
	}
	if e.ctx != nil {
		log.L(e.ctx).Infof("Engine stopped")
	}
}

func (e *engine) WebSockets() wsserver.WebSocketServer {
	return e.ws
}
