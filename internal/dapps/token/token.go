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

package token

import (
	"context"

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
	FnTransfer             = "transfer"
	FnClaimDistribution    = "claim-community-distribution"
	FnGetBalance           = "get-balance"
	FnGetHolderStats       = "get-holder-stats"
	FnGetDistributionInfo  = "get-distribution-info"
	FnGetDistributionClaim = "get-distribution-claim"

	Kind = "token"
)

type DistributionInfo struct {
	TotalClaims        uint64 `json:"totalClaims"`
	MaxClaims          uint64 `json:"maxClaims"`
	DistributionActive bool   `json:"distributionActive"`
	ClaimsRemaining    uint64 `json:"claimsRemaining"`
	DistributionAmount uint64 `json:"distributionAmount"`
}

// Balance is the signed in holder's balance in micro-AOD, as confirmed and as shown
type Balance struct {
	Address   string `json:"address,omitempty"`
	Balance   uint64 `json:"balance"`
	Confirmed uint64 `json:"confirmed"`
	Pending   int    `json:"pending"`
	Display   string `json:"display"`
}

// Token is the optimistic view of the signed in holder's AOD balance
type Token struct {
	contract  dapps.Contract
	session   *wallet.Session
	submitter dapps.Submitter
	reader    stacks.ReadOnlyCaller
	balance   *optimistic.Store[uint64]
}

func New(contract dapps.Contract, session *wallet.Session, submitter dapps.Submitter, reader stacks.ReadOnlyCaller) *Token {
	return &Token{
		contract:  contract,
		session:   session,
		submitter: submitter,
		reader:    reader,
		balance:   optimistic.New[uint64](0),
	}
}

func (t *Token) refreshOnConfirm(ctx context.Context, op *txtypes.Operation) {
	if err := t.RefreshBalance(stacks.WithFreshRead(ctx)); err != nil {
		log.L(ctx).Warnf("Balance refresh after %s failed: %s", op.TxID, err)
	}
}

// TransferTokens sends amount AOD to the recipient. The balance drops as soon as the transfer
// is broadcast. A memo longer than 34 bytes is truncated.
func (t *Token) TransferTokens(ctx context.Context, recipient, amount, memo string) (*txtypes.Operation, error) {
	sender, err := t.session.Address(ctx)
	if err != nil {
		return nil, err
	}
	if !IsValidAddress(recipient) {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidRecipient, recipient)
	}
	micro, err := ValidateTransferAmount(ctx, amount, t.balance.Value())
	if err != nil {
		return nil, err
	}
	senderCV, err := clarity.StandardPrincipalCV(sender)
	if err != nil {
		return nil, err
	}
	recipientCV, err := clarity.StandardPrincipalCV(recipient)
	if err != nil {
		return nil, err
	}
	memoCV := clarity.NoneCV()
	if memo != "" {
		if len(memo) > MaxMemoBytes {
			memo = memo[0:MaxMemoBytes]
		}
		memoCV = clarity.SomeCV(clarity.BufferCV([]byte(memo)))
	}
	debit := func(balance uint64) uint64 {
		if micro > balance {
			return 0
		}
		return balance - micro
	}
	return t.submitter.Submit(ctx, &reconcile.Submission{
		Kind:        Kind,
		Call:        t.contract.Call(FnTransfer, clarity.UIntCV(micro), senderCV, recipientCV, memoCV),
		Args:        []interface{}{micro, sender, recipient, memo},
		Effect:      reconcile.StoreEffect(t.balance, "transfer", debit),
		ErrorTable:  txerrors.TableToken,
		OnConfirmed: t.refreshOnConfirm,
	})
}

// ClaimCommunityTokens claims the one-off community distribution
func (t *Token) ClaimCommunityTokens(ctx context.Context) (*txtypes.Operation, error) {
	if _, err := t.session.Address(ctx); err != nil {
		return nil, err
	}
	credit := func(balance uint64) uint64 {
		return balance + DistributionAmount*MicroPerAOD
	}
	return t.submitter.Submit(ctx, &reconcile.Submission{
		Kind:        Kind,
		Call:        t.contract.Call(FnClaimDistribution),
		Effect:      reconcile.StoreEffect(t.balance, "claim", credit),
		ErrorTable:  txerrors.TableToken,
		OnConfirmed: t.refreshOnConfirm,
	})
}

// readForSelf calls a read-only function that takes the signed in address
func (t *Token) readForSelf(ctx context.Context, functionName string) (clarity.Value, bool, error) {
	me, err := t.session.Address(ctx)
	if err != nil {
		return nil, false, err
	}
	return t.readFor(ctx, me, functionName)
}

func (t *Token) readFor(ctx context.Context, address, functionName string) (clarity.Value, bool, error) {
	principal, err := clarity.StandardPrincipalCV(address)
	if err != nil {
		return nil, false, err
	}
	return t.contract.Read(ctx, t.reader, functionName, principal)
}

// RefreshBalance reads the confirmed balance, and makes it the new baseline.
// A balance read for an address that is no longer signed in is discarded.
func (t *Token) RefreshBalance(ctx context.Context) error {
	me, err := t.session.Address(ctx)
	if err != nil {
		return err
	}
	v, ok, err := t.readFor(ctx, me, FnGetBalance)
	if err != nil {
		return err
	}
	balance, isUint := clarity.AsUint64(v)
	if !ok || !isUint {
		return i18n.NewError(ctx, i18n.MsgReadOnlyCallFailed, FnGetBalance, v)
	}
	if info := t.session.Info(); !info.SignedIn || info.Address != me {
		log.L(ctx).Debugf("Discarding balance read for %s after wallet change", me)
		return nil
	}
	t.balance.UpdateBaseline(balance)
	log.L(ctx).Debugf("Balance baseline: %s", FormatAmount(balance, FormatPrecise))
	return nil
}

// Reset drops the balance and any pending transfers or claims, when the wallet disconnects or
// switches to another holder
func (t *Token) Reset() {
	t.balance.Reset(0)
}

func (t *Token) Balance() *Balance {
	snap := t.balance.Snapshot()
	b := &Balance{
		Balance:   snap.Value,
		Confirmed: snap.Original,
		Pending:   len(snap.Pending),
		Display:   FormatAmount(snap.Value, FormatDisplay),
	}
	if info := t.session.Info(); info.SignedIn {
		b.Address = info.Address
	}
	return b
}

// HolderStats reads the holder's activity, and scores it against the current balance
func (t *Token) HolderStats(ctx context.Context) (*HolderStats, error) {
	v, ok, err := t.readForSelf(ctx, FnGetHolderStats)
	if err != nil {
		return nil, err
	}
	stats := &HolderStats{Balance: t.balance.Value()}
	if tuple, isTuple := v.(clarity.Tuple); ok && isTuple {
		stats.FirstReceivedBlock = dapps.TupleUint(tuple, "first-received-block")
		stats.LastActivityBlock = dapps.TupleUint(tuple, "last-activity-block")
		stats.TotalEarned = dapps.TupleUint(tuple, "total-earned")
		stats.TotalTransferredIn = dapps.TupleUint(tuple, "total-transferred-in")
		stats.TotalTransferredOut = dapps.TupleUint(tuple, "total-transferred-out")
	}
	stats.ReputationLevel = ReputationLevel(stats)
	stats.ReputationLabel = ReputationLabel(stats.ReputationLevel)
	stats.GovernancePower = GovernancePower(stats.Balance, stats.ReputationLevel)
	return stats, nil
}

func (t *Token) DistributionInfo(ctx context.Context) (*DistributionInfo, error) {
	v, ok, err := t.contract.Read(ctx, t.reader, FnGetDistributionInfo)
	if err != nil {
		return nil, err
	}
	tuple, isTuple := v.(clarity.Tuple)
	if !ok || !isTuple {
		return nil, i18n.NewError(ctx, i18n.MsgReadOnlyCallFailed, FnGetDistributionInfo, v)
	}
	return &DistributionInfo{
		TotalClaims:        dapps.TupleUint(tuple, "total-claims"),
		MaxClaims:          dapps.TupleUint(tuple, "max-claims"),
		DistributionActive: dapps.TupleBool(tuple, "distribution-active"),
		ClaimsRemaining:    dapps.TupleUint(tuple, "claims-remaining"),
		DistributionAmount: dapps.TupleUint(tuple, "distribution-amount"),
	}, nil
}

// HasClaimed reports whether the holder already claimed from the community distribution
func (t *Token) HasClaimed(ctx context.Context) (bool, error) {
	v, ok, err := t.readForSelf(ctx, FnGetDistributionClaim)
	if err != nil || !ok {
		return false, err
	}
	if tuple, isTuple := v.(clarity.Tuple); isTuple {
		return dapps.TupleBool(tuple, "claimed"), nil
	}
	return true, nil
}
