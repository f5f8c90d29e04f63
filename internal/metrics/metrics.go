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

package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

var mutex = &sync.Mutex{}

type Manager interface {
	TransactionSubmitted(op *txtypes.Operation)
	TransactionBroadcast(op *txtypes.Operation)
	TransactionCompleted(op *txtypes.Operation)
	PollAttempt(status *txtypes.TransactionStatus)
	RegistryCounts(counts txtypes.TxCounts)
	AddTime(id string)
	GetTime(id string) time.Time
	DeleteTime(id string)
	IsMetricsEnabled() bool
	Start() error
}

type metricsManager struct {
	ctx            context.Context
	metricsEnabled bool
	timeMap        map[string]time.Time
}

func NewMetricsManager(ctx context.Context) Manager {
	Registry()
	mm := &metricsManager{
		ctx:            ctx,
		metricsEnabled: config.GetBool(config.MetricsEnabled),
		timeMap:        make(map[string]time.Time),
	}

	return mm
}

func (mm *metricsManager) Start() error {
	return nil
}

func (mm *metricsManager) TransactionSubmitted(op *txtypes.Operation) {
	if op.ID != nil {
		TxSubmittedCounter.WithLabelValues(op.Kind).Inc()
		mm.AddTime(op.ID.String())
	}
}

func (mm *metricsManager) TransactionBroadcast(op *txtypes.Operation) {
	TxBroadcastCounter.WithLabelValues(op.Kind).Inc()
}

// TransactionCompleted records the outcome, and the time from submission to the terminal state
func (mm *metricsManager) TransactionCompleted(op *txtypes.Operation) {
	if op.ID == nil {
		return
	}
	started := mm.GetTime(op.ID.String())
	mm.DeleteTime(op.ID.String())

	switch op.State {
	case txtypes.TxStateConfirmed:
		TxConfirmedCounter.WithLabelValues(op.Kind).Inc()
	case txtypes.TxStateFailed:
		TxFailedCounter.WithLabelValues(op.Kind).Inc()
	case txtypes.TxStateCancelled:
		TxCancelledCounter.WithLabelValues(op.Kind).Inc()
	default:
		return
	}
	if !started.IsZero() {
		TxHistogram.WithLabelValues(op.Kind, string(op.State)).Observe(time.Since(started).Seconds())
	}
}

func (mm *metricsManager) PollAttempt(status *txtypes.TransactionStatus) {
	remote := status.RemoteStatus
	if remote == "" {
		remote = "none"
	}
	PollAttemptsCounter.WithLabelValues(remote).Inc()
}

func (mm *metricsManager) RegistryCounts(counts txtypes.TxCounts) {
	ActiveTxGauge.Set(float64(counts.Active))
	PendingTxGauge.Set(float64(counts.Pending))
}

func (mm *metricsManager) AddTime(id string) {
	mutex.Lock()
	mm.timeMap[id] = time.Now()
	mutex.Unlock()
}

func (mm *metricsManager) GetTime(id string) time.Time {
	mutex.Lock()
	time := mm.timeMap[id]
	mutex.Unlock()
	return time
}

func (mm *metricsManager) DeleteTime(id string) {
	mutex.Lock()
	delete(mm.timeMap, id)
	mutex.Unlock()
}

func (mm *metricsManager) IsMetricsEnabled() bool {
	return mm.metricsEnabled
}
