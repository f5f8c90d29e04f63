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
	"github.com/prometheus/client_golang/prometheus"
)

var TxSubmittedCounter *prometheus.CounterVec
var TxBroadcastCounter *prometheus.CounterVec
var TxConfirmedCounter *prometheus.CounterVec
var TxFailedCounter *prometheus.CounterVec
var TxCancelledCounter *prometheus.CounterVec
var TxHistogram *prometheus.HistogramVec
var PollAttemptsCounter *prometheus.CounterVec
var ActiveTxGauge prometheus.Gauge
var PendingTxGauge prometheus.Gauge

// KindLabelName is the operation kind, such as greeting.set or token.transfer
var KindLabelName = "kind"
var StateLabelName = "state"
var RemoteStatusLabelName = "remote_status"

// TxSubmittedCounterName is the prometheus metric for tracking the total number of contract calls sent for signing
var TxSubmittedCounterName = "dtx_tx_submitted_total"

// TxBroadcastCounterName is the prometheus metric for tracking the total number of transactions the wallet broadcast
var TxBroadcastCounterName = "dtx_tx_broadcast_total"

// TxConfirmedCounterName is the prometheus metric for tracking the total number of transactions confirmed
var TxConfirmedCounterName = "dtx_tx_confirmed_total"

// TxFailedCounterName is the prometheus metric for tracking the total number of transactions failed or timed out
var TxFailedCounterName = "dtx_tx_failed_total"

// TxCancelledCounterName is the prometheus metric for tracking the total number of signing requests rejected
var TxCancelledCounterName = "dtx_tx_cancelled_total"

// TxHistogramName is the prometheus metric for tracking transactions - histogram
var TxHistogramName = "dtx_tx_histogram"

// PollAttemptsCounterName is the prometheus metric for tracking status queries, by the remote status observed
var PollAttemptsCounterName = "dtx_poll_attempts_total"

var ActiveTxGaugeName = "dtx_tx_active"
var PendingTxGaugeName = "dtx_tx_pending"

func InitTransactionMetrics() {
	TxSubmittedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: TxSubmittedCounterName,
		Help: "Number of contract calls submitted for signing",
	}, []string{KindLabelName})
	TxBroadcastCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: TxBroadcastCounterName,
		Help: "Number of transactions broadcast",
	}, []string{KindLabelName})
	TxConfirmedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: TxConfirmedCounterName,
		Help: "Number of confirmed transactions",
	}, []string{KindLabelName})
	TxFailedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: TxFailedCounterName,
		Help: "Number of failed transactions",
	}, []string{KindLabelName})
	TxCancelledCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: TxCancelledCounterName,
		Help: "Number of signing requests cancelled in the wallet",
	}, []string{KindLabelName})
	TxHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    TxHistogramName,
		Help:    "Histogram of transactions, bucketed by time to finished",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
	}, []string{KindLabelName, StateLabelName})
	PollAttemptsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: PollAttemptsCounterName,
		Help: "Number of transaction status queries",
	}, []string{RemoteStatusLabelName})
	ActiveTxGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: ActiveTxGaugeName,
		Help: "Transactions signing or pending",
	})
	PendingTxGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: PendingTxGaugeName,
		Help: "Transactions pending confirmation",
	})
}

func RegisterTransactionMetrics() {
	registry.MustRegister(TxSubmittedCounter)
	registry.MustRegister(TxBroadcastCounter)
	registry.MustRegister(TxConfirmedCounter)
	registry.MustRegister(TxFailedCounter)
	registry.MustRegister(TxCancelledCounter)
	registry.MustRegister(TxHistogram)
	registry.MustRegister(PollAttemptsCounter)
	registry.MustRegister(ActiveTxGauge)
	registry.MustRegister(PendingTxGauge)
}
