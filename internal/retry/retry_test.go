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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryEventuallyOk(t *testing.T) {
	r := Retry{
		InitialDelay: 1 * time.Microsecond,
		MaximumDelay: 3 * time.Microsecond,
		Factor:       2,
	}
	err := r.Do(context.Background(), "unit test", func(i int) (retry bool, err error) {
		return i < 10, fmt.Errorf("pop")
	})
	assert.EqualError(t, err, "pop")
}

func TestRetryAttemptNumbering(t *testing.T) {
	r := Retry{}
	calls := 0
	err := r.Do(context.Background(), "unit test", func(i int) (retry bool, err error) {
		calls++
		assert.Equal(t, calls, i)
		return i < 3, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryContextCancelled(t *testing.T) {
	r := Retry{
		InitialDelay: 1 * time.Hour,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Do(ctx, "unit test", func(i int) (retry bool, err error) {
		return true, fmt.Errorf("pop")
	})
	assert.Regexp(t, "DTX10110", err)
}

func TestRetryContextCancelledNoDelay(t *testing.T) {
	r := Retry{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Do(ctx, "unit test", func(i int) (retry bool, err error) {
		return true, nil
	})
	assert.Regexp(t, "DTX10110", err)
}

func TestDelayFixed(t *testing.T) {
	r := Retry{InitialDelay: 10 * time.Second}
	assert.Equal(t, time.Duration(0), r.Delay(1))
	assert.Equal(t, 10*time.Second, r.Delay(2))
	assert.Equal(t, 10*time.Second, r.Delay(30))
}

func TestDelayBackoffCapped(t *testing.T) {
	r := Retry{InitialDelay: 1 * time.Second, MaximumDelay: 5 * time.Second, Factor: 2}
	assert.Equal(t, 1*time.Second, r.Delay(2))
	assert.Equal(t, 2*time.Second, r.Delay(3))
	assert.Equal(t, 4*time.Second, r.Delay(4))
	assert.Equal(t, 5*time.Second, r.Delay(5))
	assert.Equal(t, 5*time.Second, r.Delay(50))
}
