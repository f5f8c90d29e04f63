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

package txpoller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/retry"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

const (
	DefaultMaxAttempts = 30
	DefaultInterval    = 10 * time.Second
)

// UpdateCallback receives every status observation, including non-terminal ones
type UpdateCallback func(status *txtypes.TransactionStatus)

// Config bounds a poll. MaxAttempts x Interval is the total time a transaction is given to confirm,
// unless Factor is above 1, in which case the interval grows up to MaxInterval.
type Config struct {
	MaxAttempts int
	Interval    time.Duration
	Factor      float64
	MaxInterval time.Duration
}

// ConfigFromRoot reads the poller settings from the root configuration
func ConfigFromRoot() *Config {
	return &Config{
		MaxAttempts: config.GetInt(config.PollerMaxAttempts),
		Interval:    config.GetDuration(config.PollerInterval),
		Factor:      config.GetFloat64(config.PollerFactor),
		MaxInterval: config.GetDuration(config.PollerMaxInterval),
	}
}

// QueryError is returned when the status query itself failed, as distinct from the
// transaction failing. The failed status that was delivered to the callback is attached.
type QueryError struct {
	TxID   string
	Status *txtypes.TransactionStatus
	Err    error
}

func (qe *QueryError) Error() string {
	return qe.Status.Error
}

func (qe *QueryError) Unwrap() error {
	return qe.Err
}

// Poller checks the status of broadcast transactions until they reach a terminal state
type Poller struct {
	source stacks.StatusSource
	conf   Config
}

func New(source stacks.StatusSource, conf *Config) *Poller {
	p := &Poller{source: source}
	if conf != nil {
		p.conf = *conf
	}
	if p.conf.MaxAttempts <= 0 {
		p.conf.MaxAttempts = DefaultMaxAttempts
	}
	if p.conf.Interval < 0 {
		p.conf.Interval = DefaultInterval
	}
	return p
}

// MapStatus translates the chain API status vocabulary into pending, confirmed or failed
func MapStatus(txID string, info *stacks.TxInfo) *txtypes.TransactionStatus {
	status := &txtypes.TransactionStatus{
		TxID:         txID,
		Status:       txtypes.PollStatusPending,
		RemoteStatus: string(info.TxStatus),
	}
	switch {
	case info.TxStatus == stacks.RemoteTxStatusSuccess:
		status.Status = txtypes.PollStatusConfirmed
		if info.TxResult != nil {
			status.Result = info.TxResult.Repr
		}
	case info.TxStatus.IsAbort(), info.TxStatus.IsDropped():
		status.Status = txtypes.PollStatusFailed
		status.Error = i18n.Expand(context.Background(), i18n.MsgTxAborted, info.TxStatus)
		if info.TxResult != nil {
			status.Result = info.TxResult.Repr
		}
	}
	return status
}

func cancelledErr(ctx context.Context, txID string) error {
	return i18n.NewError(ctx, i18n.MsgPollCancelled, txID)
}

// Poll queries the status of the transaction once per attempt, invoking onUpdate with each
// observation, until it is confirmed or failed, or the attempts are exhausted.
//   - exhausted attempts resolve with a synthetic failed status, carrying a timeout message
//   - a failed query is delivered as a failed status, and returned as a *QueryError
//   - cancelling the context stops polling, and discards any response still in flight
func (p *Poller) Poll(ctx context.Context, txID string, onUpdate UpdateCallback) (*txtypes.TransactionStatus, error) {
	ctx = log.WithLogField(ctx, "tx", txID)
	if onUpdate == nil {
		onUpdate = func(*txtypes.TransactionStatus) {}
	}
	r := &retry.Retry{
		InitialDelay: p.conf.Interval,
		MaximumDelay: p.conf.MaxInterval,
		Factor:       p.conf.Factor,
	}
	var final *txtypes.TransactionStatus
	err := r.Do(ctx, fmt.Sprintf("status check %s", txID), func(attempt int) (bool, error) {
		if ctx.Err() != nil {
			return false, cancelledErr(ctx, txID)
		}
		info, err := p.source.GetTransactionStatus(ctx, txID)
		if ctx.Err() != nil {
			log.L(ctx).Debugf("Discarding status response after cancel (attempt %d)", attempt)
			return false, cancelledErr(ctx, txID)
		}
		if err != nil {
			status := &txtypes.TransactionStatus{
				TxID:    txID,
				Status:  txtypes.PollStatusFailed,
				Error:   i18n.Expand(ctx, i18n.MsgStatusCheckFailed, err),
				Attempt: attempt,
			}
			log.L(ctx).Errorf("Status check failed (attempt %d): %s", attempt, err)
			onUpdate(status)
			return false, &QueryError{TxID: txID, Status: status, Err: err}
		}

		status := MapStatus(txID, info)
		status.Attempt = attempt
		log.L(ctx).Debugf("Status %s -> %s (attempt %d/%d)", info.TxStatus, status.Status, attempt, p.conf.MaxAttempts)
		onUpdate(status)
		if status.IsTerminal() {
			final = status
			return false, nil
		}

		if attempt >= p.conf.MaxAttempts {
			final = &txtypes.TransactionStatus{
				TxID:         txID,
				Status:       txtypes.PollStatusFailed,
				Error:        i18n.Expand(ctx, i18n.MsgTxTimeout),
				RemoteStatus: status.RemoteStatus,
				Attempt:      attempt,
			}
			log.L(ctx).Warnf("Gave up after %d attempts", attempt)
			onUpdate(final)
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		if _, ok := err.(*QueryError); !ok && ctx.Err() != nil {
			return nil, cancelledErr(ctx, txID)
		}
		return nil, err
	}
	log.L(ctx).Infof("Transaction %s: %s", txID, final.Status)
	return final, nil
}

// Handle is a poll running in the background, that can be cancelled
type Handle struct {
	txID      string
	mux       sync.Mutex
	cancelled bool
	cancelCtx context.CancelFunc
	done      chan struct{}
	result    *txtypes.TransactionStatus
	err       error
}

// Start runs Poll in a goroutine. After Cancel returns, onUpdate is never invoked again.
// onUpdate must not call Cancel on its own handle, as delivery and cancellation are serialized.
func (p *Poller) Start(ctx context.Context, txID string, onUpdate UpdateCallback) *Handle {
	ctx, cancelCtx := context.WithCancel(ctx)
	h := &Handle{
		txID:      txID,
		cancelCtx: cancelCtx,
		done:      make(chan struct{}),
	}
	gated := func(status *txtypes.TransactionStatus) {
		h.mux.Lock()
		defer h.mux.Unlock()
		if h.cancelled {
			log.L(ctx).Debugf("Discarding %s status for cancelled poll of %s", status.Status, txID)
			return
		}
		if onUpdate != nil {
			onUpdate(status)
		}
	}
	go func() {
		defer close(h.done)
		defer cancelCtx()
		result, err := p.Poll(ctx, txID, gated)
		h.mux.Lock()
		defer h.mux.Unlock()
		if h.cancelled {
			result, err = nil, cancelledErr(ctx, txID)
		}
		h.result, h.err = result, err
	}()
	return h
}

func (h *Handle) TxID() string {
	return h.txID
}

// Cancel stops the poll. Calling it more than once, or after the poll completed, has no effect.
func (h *Handle) Cancel() {
	h.mux.Lock()
	select {
	case <-h.done:
		// Completed polls keep their result
	default:
		h.cancelled = true
	}
	h.mux.Unlock()
	h.cancelCtx()
}

// Done is closed when the poll goroutine has exited
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the poll has exited, and returns its outcome
func (h *Handle) Wait() (*txtypes.TransactionStatus, error) {
	<-h.done
	return h.result, h.err
}
