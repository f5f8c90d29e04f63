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

package wallet

import (
	"context"
	"sync"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
)

// Session is the single authenticated identity of the application. One instance is created
// at startup, and passed to every feature that submits transactions.
type Session struct {
	mux      sync.RWMutex
	network  string
	address  string
	signedIn bool
}

// SessionInfo is a point in time view of the session
type SessionInfo struct {
	Network  string `json:"network"`
	Address  string `json:"address,omitempty"`
	SignedIn bool   `json:"signedIn"`
}

func NewSession(network string) *Session {
	return &Session{network: network}
}

// Connect signs in the given address
func (s *Session) Connect(ctx context.Context, address string) error {
	if !clarity.IsValidAddress(address) {
		return i18n.NewError(ctx, i18n.MsgClarityInvalidAddress, address)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.address = address
	s.signedIn = true
	log.L(ctx).Infof("Wallet connected: %s (%s)", address, s.network)
	return nil
}

// Disconnect signs out, clearing the address
func (s *Session) Disconnect(ctx context.Context) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.signedIn {
		log.L(ctx).Infof("Wallet disconnected: %s", s.address)
	}
	s.address = ""
	s.signedIn = false
}

func (s *Session) Info() *SessionInfo {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return &SessionInfo{
		Network:  s.network,
		Address:  s.address,
		SignedIn: s.signedIn,
	}
}

func (s *Session) IsSignedIn() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.signedIn
}

// Address returns the signed in address, or an error if there is none
func (s *Session) Address(ctx context.Context) (string, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	if !s.signedIn {
		return "", i18n.NewError(ctx, i18n.MsgWalletNotConnected)
	}
	return s.address, nil
}
