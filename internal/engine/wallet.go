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

	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/wallet"
)

func (e *engine) GetWallet(ctx context.Context) *wallet.SessionInfo {
	return e.session.Info()
}

// ConnectWallet signs in, and loads the confirmed state for the new address. Switching to a
// different address first drops everything held for the previous one.
func (e *engine) ConnectWallet(ctx context.Context, input *WalletConnect) (*wallet.SessionInfo, error) {
	previous := e.session.Info()
	if err := e.session.Connect(ctx, input.Address); err != nil {
		return nil, err
	}
	if !previous.SignedIn || previous.Address != input.Address {
		e.resetWalletState(ctx)
	}
	e.refreshAll(ctx)
	return e.session.Info(), nil
}

func (e *engine) DisconnectWallet(ctx context.Context) *wallet.SessionInfo {
	e.session.Disconnect(ctx)
	e.resetWalletState(ctx)
	return e.session.Info()
}

// resetWalletState clears the per-user stores. Pending effects of the previous wallet are
// discarded, so a late confirmation or failure of its transactions leaves the new view alone.
func (e *engine) resetWalletState(ctx context.Context) {
	e.greeting.Reset()
	e.token.Reset()
	e.ecosystem.Reset()
	log.L(ctx).Debugf("Cleared wallet state")
}
