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

package retry

import (
	"context"
	"time"

	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
)

const (
	// FixedFactor keeps the delay constant between attempts
	FixedFactor = 1.0
)

// Retry is a concurrency safe structure that configures a simple backoff retry mechanism.
// A Factor of 1 (or less) gives a fixed interval between attempts.
type Retry struct {
	InitialDelay time.Duration
	MaximumDelay time.Duration
	Factor       float64
}

// Do invokes the function until the function returns false, or the context is cancelled.
// The attempt number passed to the function starts at 1.
func (r *Retry) Do(ctx context.Context, logDescription string, f func(attempt int) (retry bool, err error)) error {
	attempt := 0
	delay := r.InitialDelay
	factor := r.Factor
	if factor < FixedFactor {
		factor = FixedFactor
	}
	for {
		attempt++
		retry, err := f(attempt)
		if !retry {
			return err
		}
		if err != nil {
			log.L(ctx).Debugf("%s attempt %d: %s", logDescription, attempt, err)
		}

		if r.MaximumDelay > 0 && delay > r.MaximumDelay {
			delay = r.MaximumDelay
		}
		if err := r.wait(ctx, delay); err != nil {
			return err
		}
		delay = time.Duration(float64(delay) * factor)
	}
}

// Delay returns the delay that will precede the given attempt (attempt 1 has no delay)
func (r *Retry) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	factor := r.Factor
	if factor < FixedFactor {
		factor = FixedFactor
	}
	delay := r.InitialDelay
	for i := 2; i < attempt; i++ {
		delay = time.Duration(float64(delay) * factor)
		if r.MaximumDelay > 0 && delay > r.MaximumDelay {
			return r.MaximumDelay
		}
	}
	if r.MaximumDelay > 0 && delay > r.MaximumDelay {
		delay = r.MaximumDelay
	}
	return delay
}

func (r *Retry) wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		select {
		case <-ctx.Done():
			return i18n.NewError(ctx, i18n.MsgContextCanceled)
		default:
			return nil
		}
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return i18n.NewError(ctx, i18n.MsgContextCanceled)
	case <-timer.C:
		return nil
	}
}
