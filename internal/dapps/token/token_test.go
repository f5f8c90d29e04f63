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
	"fmt"
	"math"
	"testing"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/dapps"
	"github.com/kaleido-io/dapptx/internal/reconcile"
	"github.com/kaleido-io/dapptx/internal/txerrors"
	"github.com/kaleido-io/dapptx/internal/wallet"
	"github.com/kaleido-io/dapptx/mocks/dappsmocks"
	"github.com/kaleido-io/dapptx/mocks/stacksmocks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	me           = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	contractName = "ageofdevs-token"
)

var recipient = clarity.C32CheckAddress(clarity.AddressVersionTestnetSingleSig, [20]byte{9, 9, 9})

func newTestToken(t *testing.T, signedIn bool) (*Token, *dappsmocks.Submitter, *stacksmocks.ReadOnlyCaller) {
	session := wallet.NewSession("devnet")
	if signedIn {
		assert.NoError(t, session.Connect(context.Background(), me))
	}
	ms := &dappsmocks.Submitter{}
	mr := &stacksmocks.ReadOnlyCaller{}
	return New(dapps.Contract{Address: me, Name: contractName}, session, ms, mr), ms, mr
}

func withBalance(t *testing.T, tk *Token, mr *stacksmocks.ReadOnlyCaller, micro uint64) {
	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetBalance, mock.Anything).
		Return(clarity.OkCV(clarity.UIntCV(micro)), nil).Once()
	assert.NoError(t, tk.RefreshBalance(context.Background()))
}

func captureSubmissions(ms *dappsmocks.Submitter) *[]*reconcile.Submission {
	subs := []*reconcile.Submission{}
	ms.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			subs = append(subs, args[1].(*reconcile.Submission))
		}).
		Return(&txtypes.Operation{State: txtypes.TxStatePending, TxID: "0x01"}, nil)
	return &subs
}

func TestConversions(t *testing.T) {
	assert.Equal(t, uint64(1500000), ToMicro(1.5))
	assert.Equal(t, uint64(1), ToMicro(0.0000019))
	assert.Equal(t, uint64(0), ToMicro(-3))
	assert.Equal(t, uint64(math.MaxUint64), ToMicro(1e300))
	assert.Equal(t, uint64(math.MaxUint64), ToMicro(math.Inf(1)))
	assert.Equal(t, 2.5, FromMicro(2500000))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.50 AOD", FormatAmount(1500000, FormatDisplay))
	assert.Equal(t, "1.50 AOD", FormatAmount(1500000, ""))
	assert.Equal(t, "1.500000 AOD", FormatAmount(1500000, FormatPrecise))
	assert.Equal(t, "2.5M AOD", FormatAmount(2500000*MicroPerAOD, FormatCompact))
	assert.Equal(t, "1.2K AOD", FormatAmount(1234*MicroPerAOD, FormatCompact))
	assert.Equal(t, "999 AOD", FormatAmount(999*MicroPerAOD, FormatCompact))
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress(me))
	assert.True(t, IsValidAddress(recipient))
	assert.False(t, IsValidAddress(me+".ageofdevs-token"))
	assert.False(t, IsValidAddress("ST123"))
}

func TestValidateTransferAmount(t *testing.T) {
	ctx := context.Background()
	micro, err := ValidateTransferAmount(ctx, " 2.5 ", 3*MicroPerAOD)
	assert.NoError(t, err)
	assert.Equal(t, uint64(2500000), micro)

	_, err = ValidateTransferAmount(ctx, "abc", 3*MicroPerAOD)
	assert.Regexp(t, "DTX10145", err)
	_, err = ValidateTransferAmount(ctx, "NaN", 3*MicroPerAOD)
	assert.Regexp(t, "DTX10145", err)
	_, err = ValidateTransferAmount(ctx, "0", 3*MicroPerAOD)
	assert.Regexp(t, "DTX10146", err)
	_, err = ValidateTransferAmount(ctx, "-1", 3*MicroPerAOD)
	assert.Regexp(t, "DTX10146", err)
	_, err = ValidateTransferAmount(ctx, "3.000001", 3*MicroPerAOD)
	assert.Regexp(t, "DTX10147", err)
	_, err = ValidateTransferAmount(ctx, "1000001", 2000000*MicroPerAOD)
	assert.Regexp(t, "DTX10148.*1000000", err)
	_, err = ValidateTransferAmount(ctx, "1e300", math.MaxUint64)
	assert.Regexp(t, "DTX10148", err)
	_, err = ValidateTransferAmount(ctx, "1e15", 10*MicroPerAOD)
	assert.Regexp(t, "DTX10148", err)
}

func TestReputation(t *testing.T) {
	stats := &HolderStats{TotalEarned: 3 * MicroPerAOD, TotalTransferredIn: 1, Balance: 7 * MicroPerAOD}
	assert.Equal(t, 42, ReputationLevel(stats))
	assert.Equal(t, "Advanced", ReputationLabel(42))
	assert.Equal(t, 100, ReputationLevel(&HolderStats{TotalEarned: 50 * MicroPerAOD}))
	assert.Equal(t, 0, ReputationLevel(&HolderStats{}))

	for level, label := range map[int]string{80: "Legend", 60: "Expert", 40: "Advanced", 20: "Intermediate", 5: "Beginner", 4: "Newcomer"} {
		assert.Equal(t, label, ReputationLabel(level))
	}
	assert.Equal(t, uint64(15), GovernancePower(10*MicroPerAOD, 50))
}

func TestTransferTokensOptimistic(t *testing.T) {
	tk, ms, mr := newTestToken(t, true)
	withBalance(t, tk, mr, 10*MicroPerAOD)
	subs := captureSubmissions(ms)

	op, err := tk.TransferTokens(context.Background(), recipient, "4", "thanks for the review, much appreciated")
	assert.NoError(t, err)
	assert.Equal(t, "0x01", op.TxID)

	sub := (*subs)[0]
	assert.Equal(t, FnTransfer, sub.Call.FunctionName)
	assert.Equal(t, txerrors.TableToken, sub.ErrorTable)
	senderCV, _ := clarity.StandardPrincipalCV(me)
	recipientCV, _ := clarity.StandardPrincipalCV(recipient)
	assert.Equal(t, []clarity.Value{
		clarity.UIntCV(4000000),
		senderCV,
		recipientCV,
		clarity.SomeCV(clarity.BufferCV([]byte("thanks for the review, much apprec"))),
	}, sub.Call.FunctionArgs)

	sub.Effect.Apply()
	b := tk.Balance()
	assert.Equal(t, uint64(6*MicroPerAOD), b.Balance)
	assert.Equal(t, uint64(10*MicroPerAOD), b.Confirmed)
	assert.Equal(t, 1, b.Pending)
	assert.Equal(t, "6.00 AOD", b.Display)
	assert.Equal(t, me, b.Address)

	// A second transfer is checked against the optimistic balance
	_, err = tk.TransferTokens(context.Background(), recipient, "7", "")
	assert.Regexp(t, "DTX10147", err)

	sub.Effect.Revert()
	assert.Equal(t, uint64(10*MicroPerAOD), tk.Balance().Balance)
}

func TestTransferTokensConfirmedRefreshes(t *testing.T) {
	tk, ms, mr := newTestToken(t, true)
	withBalance(t, tk, mr, 10*MicroPerAOD)
	subs := captureSubmissions(ms)

	_, err := tk.TransferTokens(context.Background(), recipient, "1", "")
	assert.NoError(t, err)
	sub := (*subs)[0]
	assert.Equal(t, clarity.NoneCV(), sub.Call.FunctionArgs[3])

	sub.Effect.Apply()
	sub.Effect.Confirm()
	assert.Equal(t, uint64(9*MicroPerAOD), tk.Balance().Confirmed)

	// Someone else also sent us tokens in the meantime
	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetBalance, mock.Anything).
		Return(clarity.OkCV(clarity.UIntCV(12*MicroPerAOD)), nil).Once()
	sub.OnConfirmed(context.Background(), &txtypes.Operation{TxID: "0x01"})
	assert.Equal(t, uint64(12*MicroPerAOD), tk.Balance().Balance)
	assert.Equal(t, 0, tk.Balance().Pending)
}

func TestTransferTokensErrors(t *testing.T) {
	tk, ms, mr := newTestToken(t, true)
	withBalance(t, tk, mr, MicroPerAOD)

	_, err := tk.TransferTokens(context.Background(), "nobody", "1", "")
	assert.Regexp(t, "DTX10144", err)
	_, err = tk.TransferTokens(context.Background(), recipient, "x", "")
	assert.Regexp(t, "DTX10145", err)

	tk.session.Disconnect(context.Background())
	_, err = tk.TransferTokens(context.Background(), recipient, "1", "")
	assert.Regexp(t, "DTX10126", err)
	ms.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestClaimCommunityTokens(t *testing.T) {
	tk, ms, _ := newTestToken(t, true)
	subs := captureSubmissions(ms)

	_, err := tk.ClaimCommunityTokens(context.Background())
	assert.NoError(t, err)
	sub := (*subs)[0]
	assert.Equal(t, FnClaimDistribution, sub.Call.FunctionName)
	assert.Empty(t, sub.Call.FunctionArgs)

	sub.Effect.Apply()
	assert.Equal(t, uint64(DistributionAmount*MicroPerAOD), tk.Balance().Balance)
	sub.Effect.Revert()
	assert.Equal(t, uint64(0), tk.Balance().Balance)

	tk.session.Disconnect(context.Background())
	_, err = tk.ClaimCommunityTokens(context.Background())
	assert.Regexp(t, "DTX10126", err)
	assert.Empty(t, tk.Balance().Address)
}

func TestResetDropsBalanceAndPending(t *testing.T) {
	tk, ms, mr := newTestToken(t, true)
	withBalance(t, tk, mr, 10*MicroPerAOD)
	subs := captureSubmissions(ms)

	_, err := tk.TransferTokens(context.Background(), recipient, "4", "")
	assert.NoError(t, err)
	assert.Equal(t, 1, tk.Balance().Pending)

	tk.Reset()
	b := tk.Balance()
	assert.Equal(t, uint64(0), b.Balance)
	assert.Equal(t, uint64(0), b.Confirmed)
	assert.Equal(t, 0, b.Pending)

	// A late revert of the dropped transfer must not resurrect the old balance
	(*subs)[0].Effect.Revert()
	assert.Equal(t, uint64(0), tk.Balance().Balance)
}

func TestRefreshBalanceDiscardedAfterWalletChange(t *testing.T) {
	tk, _, mr := newTestToken(t, true)
	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetBalance, mock.Anything).
		Run(func(args mock.Arguments) {
			assert.NoError(t, tk.session.Connect(context.Background(), recipient))
		}).
		Return(clarity.OkCV(clarity.UIntCV(5*MicroPerAOD)), nil).Once()

	assert.NoError(t, tk.RefreshBalance(context.Background()))
	assert.Equal(t, uint64(0), tk.Balance().Balance)
	assert.Equal(t, recipient, tk.Balance().Address)
}

func TestRefreshBalanceErrors(t *testing.T) {
	tk, _, mr := newTestToken(t, true)
	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetBalance, mock.Anything).Return(nil, fmt.Errorf("pop")).Once()
	assert.EqualError(t, tk.RefreshBalance(context.Background()), "pop")

	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetBalance, mock.Anything).Return(clarity.StringASCIICV("x"), nil).Once()
	assert.Regexp(t, "DTX10122", tk.RefreshBalance(context.Background()))

	tk2, _, _ := newTestToken(t, false)
	assert.Regexp(t, "DTX10126", tk2.RefreshBalance(context.Background()))
}

func TestHolderStats(t *testing.T) {
	tk, _, mr := newTestToken(t, true)
	withBalance(t, tk, mr, 7*MicroPerAOD)
	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetHolderStats, mock.Anything).
		Return(clarity.SomeCV(clarity.TupleCV(map[string]clarity.Value{
			"first-received-block":  clarity.UIntCV(100),
			"last-activity-block":   clarity.UIntCV(200),
			"total-earned":          clarity.UIntCV(3 * MicroPerAOD),
			"total-transferred-in":  clarity.UIntCV(MicroPerAOD),
			"total-transferred-out": clarity.UIntCV(0),
		})), nil).Once()

	stats, err := tk.HolderStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), stats.FirstReceivedBlock)
	assert.Equal(t, 42, stats.ReputationLevel)
	assert.Equal(t, "Advanced", stats.ReputationLabel)
	assert.Equal(t, uint64(9), stats.GovernancePower)

	// No stats yet for a new holder
	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetHolderStats, mock.Anything).Return(clarity.NoneCV(), nil).Once()
	stats, err = tk.HolderStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 7, stats.ReputationLevel)
	assert.Equal(t, "Beginner", stats.ReputationLabel)

	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetHolderStats, mock.Anything).Return(nil, fmt.Errorf("pop")).Once()
	_, err = tk.HolderStats(context.Background())
	assert.EqualError(t, err, "pop")
}

func TestDistributionInfo(t *testing.T) {
	tk, _, mr := newTestToken(t, true)
	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetDistributionInfo).
		Return(clarity.OkCV(clarity.TupleCV(map[string]clarity.Value{
			"total-claims":        clarity.UIntCV(12),
			"max-claims":          clarity.UIntCV(MaxDistributionClaims),
			"distribution-active": clarity.BoolCV(true),
			"claims-remaining":    clarity.UIntCV(18),
			"distribution-amount": clarity.UIntCV(DistributionAmount * MicroPerAOD),
		})), nil).Once()
	info, err := tk.DistributionInfo(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, &DistributionInfo{
		TotalClaims:        12,
		MaxClaims:          30,
		DistributionActive: true,
		ClaimsRemaining:    18,
		DistributionAmount: 1000000000,
	}, info)

	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetDistributionInfo).Return(clarity.UIntCV(1), nil).Once()
	_, err = tk.DistributionInfo(context.Background())
	assert.Regexp(t, "DTX10122", err)

	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetDistributionInfo).Return(nil, fmt.Errorf("pop")).Once()
	_, err = tk.DistributionInfo(context.Background())
	assert.EqualError(t, err, "pop")
}

func TestHasClaimed(t *testing.T) {
	tk, _, mr := newTestToken(t, true)
	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetDistributionClaim, mock.Anything).Return(clarity.NoneCV(), nil).Once()
	claimed, err := tk.HasClaimed(context.Background())
	assert.NoError(t, err)
	assert.False(t, claimed)

	mr.On("CallReadOnly", mock.Anything, me, contractName, FnGetDistributionClaim, mock.Anything).
		Return(clarity.SomeCV(clarity.TupleCV(map[string]clarity.Value{"claimed": clarity.BoolCV(true)})), nil).Once()
	claimed, err = tk.HasClaimed(context.Background())
	assert.NoError(t, err)
	assert.True(t, claimed)
}
