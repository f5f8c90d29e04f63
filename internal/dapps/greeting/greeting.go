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

package greeting

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/dapps"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/optimistic"
	"github.com/kaleido-io/dapptx/internal/reconcile"
	"github.com/kaleido-io/dapptx/internal/txerrors"
	"github.com/kaleido-io/dapptx/internal/wallet"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

const (
	MaxMessageLength = 100
	// DefaultCost is the payment for a global greeting update, in micro-STX
	DefaultCost = 1000000

	FnSetGreetingWithPayment = "set-greeting-with-payment"
	FnSetPersonalGreeting    = "set-personal-greeting-advanced"
	FnLikeGreeting           = "like-greeting"
	FnGetGreeting            = "get-greeting"

	Kind = "greeting"
)

var fees = map[string]uint64{
	FnSetGreetingWithPayment: 2000,
	FnSetPersonalGreeting:    1000,
	FnLikeGreeting:           800,
}

const defaultFee = 1000

// EstimateFee returns the fee in micro-STX used for a call to the given function
func EstimateFee(functionName string) uint64 {
	if fee, ok := fees[functionName]; ok {
		return fee
	}
	return defaultFee
}

// ValidateMessage strips markup and surrounding whitespace, and checks what remains
// fits a string-ascii 100 argument
func ValidateMessage(ctx context.Context, msg string) (string, error) {
	msg = dapps.CleanText(msg)
	if msg == "" {
		return "", i18n.NewError(ctx, i18n.MsgGreetingEmpty)
	}
	if len(msg) > MaxMessageLength {
		return "", i18n.NewError(ctx, i18n.MsgGreetingTooLong, MaxMessageLength)
	}
	for i := 0; i < len(msg); i++ {
		if msg[i] > 0x7f {
			return "", i18n.NewError(ctx, i18n.MsgClarityInvalidASCII)
		}
	}
	return msg, nil
}

// Board holds the optimistic view of the greeting contract
type Board struct {
	contract  dapps.Contract
	session   *wallet.Session
	submitter dapps.Submitter
	reader    stacks.ReadOnlyCaller

	greeting *optimistic.Store[string]
	personal *optimistic.Store[string]
	likes    *optimistic.Store[map[uint64]uint64]
}

// State is a point in time view of the board, including tentative values
type State struct {
	Greeting          string            `json:"greeting"`
	ConfirmedGreeting string            `json:"confirmedGreeting"`
	GreetingPending   bool              `json:"greetingPending"`
	PersonalGreeting  string            `json:"personalGreeting,omitempty"`
	PersonalPending   bool              `json:"personalPending"`
	Likes             map[uint64]uint64 `json:"likes"`
	LikesPending      bool              `json:"likesPending"`
}

func NewBoard(contract dapps.Contract, session *wallet.Session, submitter dapps.Submitter, reader stacks.ReadOnlyCaller) *Board {
	return &Board{
		contract:  contract,
		session:   session,
		submitter: submitter,
		reader:    reader,
		greeting:  optimistic.New(""),
		personal:  optimistic.New(""),
		likes:     optimistic.New(map[uint64]uint64{}),
	}
}

func stxPostCondition(sender string, amount uint64) json.RawMessage {
	b, _ := json.Marshal(map[string]interface{}{
		"type":          "stx",
		"principal":     sender,
		"conditionCode": "lte",
		"amount":        fmt.Sprintf("%d", amount),
	})
	return b
}

func (b *Board) call(functionName string, args ...clarity.Value) *stacks.ContractCall {
	call := b.contract.Call(functionName, args...)
	call.Fee = EstimateFee(functionName)
	return call
}

func (b *Board) refreshOnConfirm(ctx context.Context, op *txtypes.Operation) {
	if err := b.Refresh(stacks.WithFreshRead(ctx)); err != nil {
		log.L(ctx).Warnf("Greeting refresh after %s failed: %s", op.TxID, err)
	}
}

// SetGlobalGreeting pays cost micro-STX to replace the global greeting. The new greeting is
// shown as soon as the transaction is broadcast.
func (b *Board) SetGlobalGreeting(ctx context.Context, msg string, cost uint64) (*txtypes.Operation, error) {
	msg, err := ValidateMessage(ctx, msg)
	if err != nil {
		return nil, err
	}
	sender, err := b.session.Address(ctx)
	if err != nil {
		return nil, err
	}
	if cost == 0 {
		cost = DefaultCost
	}
	call := b.call(FnSetGreetingWithPayment, clarity.StringASCIICV(msg))
	call.PostConditions = []json.RawMessage{stxPostCondition(sender, cost)}
	return b.submitter.Submit(ctx, &reconcile.Submission{
		Kind:        Kind,
		Call:        call,
		Args:        []interface{}{msg, cost},
		Effect:      reconcile.StoreEffect(b.greeting, "set-greeting", func(string) string { return msg }),
		ErrorTable:  txerrors.TableGreeting,
		OnConfirmed: b.refreshOnConfirm,
	})
}

// SetPersonalGreeting stores a free greeting against the caller's address
func (b *Board) SetPersonalGreeting(ctx context.Context, msg string) (*txtypes.Operation, error) {
	msg, err := ValidateMessage(ctx, msg)
	if err != nil {
		return nil, err
	}
	if _, err := b.session.Address(ctx); err != nil {
		return nil, err
	}
	return b.submitter.Submit(ctx, &reconcile.Submission{
		Kind:       Kind,
		Call:       b.call(FnSetPersonalGreeting, clarity.StringASCIICV(msg)),
		Effect:     reconcile.StoreEffect(b.personal, "set-personal-greeting", func(string) string { return msg }),
		ErrorTable: txerrors.TableGreeting,
	})
}

// LikeGreeting counts a like against a greeting entry
func (b *Board) LikeGreeting(ctx context.Context, entryID uint64) (*txtypes.Operation, error) {
	if _, err := b.session.Address(ctx); err != nil {
		return nil, err
	}
	like := func(likes map[uint64]uint64) map[uint64]uint64 {
		updated := make(map[uint64]uint64, len(likes)+1)
		for k, v := range likes {
			updated[k] = v
		}
		updated[entryID]++
		return updated
	}
	return b.submitter.Submit(ctx, &reconcile.Submission{
		Kind:       Kind,
		Call:       b.call(FnLikeGreeting, clarity.UIntCV(entryID)),
		Effect:     reconcile.StoreEffect(b.likes, "like", like),
		ErrorTable: txerrors.TableGreeting,
	})
}

// Refresh reads the confirmed greeting from the contract, and makes it the new baseline
func (b *Board) Refresh(ctx context.Context) error {
	v, ok, err := b.contract.Read(ctx, b.reader, FnGetGreeting)
	if err != nil {
		return err
	}
	s, isString := clarity.AsString(v)
	if !ok || !isString {
		return i18n.NewError(ctx, i18n.MsgReadOnlyCallFailed, FnGetGreeting, v)
	}
	b.greeting.UpdateBaseline(s)
	log.L(ctx).Debugf("Greeting baseline: %q", s)
	return nil
}

// Reset drops the personal greeting and likes of the previous wallet. The global greeting is
// shared by every user, so it is kept along with its pending update.
func (b *Board) Reset() {
	b.personal.Reset("")
	b.likes.Reset(map[uint64]uint64{})
}

func (b *Board) State() *State {
	greeting := b.greeting.Snapshot()
	likes := b.likes.Snapshot()
	return &State{
		Greeting:          greeting.Value,
		ConfirmedGreeting: greeting.Original,
		GreetingPending:   len(greeting.Pending) > 0,
		PersonalGreeting:  b.personal.Value(),
		PersonalPending:   b.personal.IsPending(),
		Likes:             likes.Value,
		LikesPending:      len(likes.Pending) > 0,
	}
}
