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
	"strconv"
	"strings"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/i18n"
)

const (
	Symbol   = "AOD"
	Name     = "AgeOfDevs Token"
	Decimals = 6

	MicroPerAOD = 1000000
	// DistributionAmount is the number of AOD granted by each community claim
	DistributionAmount    = 1000
	MaxDistributionClaims = 30
	// MaxTransferAOD bounds a single transfer
	MaxTransferAOD = 1000000
	// MaxMemoBytes is the SIP-010 memo limit
	MaxMemoBytes = 34
)

type FormatStyle string

const (
	FormatDisplay FormatStyle = "display"
	FormatPrecise FormatStyle = "precise"
	FormatCompact FormatStyle = "compact"
)

// ToMicro converts AOD to micro-AOD, rounding down. Amounts beyond the range of a uint64
// saturate at math.MaxUint64.
func ToMicro(aod float64) uint64 {
	if aod <= 0 || math.IsNaN(aod) {
		return 0
	}
	micro := math.Floor(math.Round(aod*MicroPerAOD*10) / 10)
	if micro >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(micro)
}

func FromMicro(micro uint64) float64 {
	return float64(micro) / MicroPerAOD
}

// FormatAmount renders a micro-AOD amount for display
func FormatAmount(micro uint64, style FormatStyle) string {
	aod := FromMicro(micro)
	switch style {
	case FormatPrecise:
		return fmt.Sprintf("%.6f %s", aod, Symbol)
	case FormatCompact:
		switch {
		case aod >= 1000000:
			return fmt.Sprintf("%.1fM %s", aod/1000000, Symbol)
		case aod >= 1000:
			return fmt.Sprintf("%.1fK %s", aod/1000, Symbol)
		default:
			return fmt.Sprintf("%.0f %s", aod, Symbol)
		}
	default:
		return fmt.Sprintf("%.2f %s", aod, Symbol)
	}
}

// IsValidAddress accepts standard principals only, as tokens are not sent to contracts here
func IsValidAddress(address string) bool {
	return !strings.Contains(address, ".") && clarity.IsValidAddress(address)
}

// ValidateTransferAmount parses an AOD amount, and checks it against the balance in micro-AOD.
// The amount is returned in micro-AOD.
func ValidateTransferAmount(ctx context.Context, amount string, balance uint64) (uint64, error) {
	aod, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(aod) || math.IsInf(aod, 0) {
		return 0, i18n.NewError(ctx, i18n.MsgInvalidAmountFormat)
	}
	if aod > MaxTransferAOD {
		return 0, i18n.NewError(ctx, i18n.MsgAmountTooLarge, MaxTransferAOD)
	}
	micro := ToMicro(aod)
	if aod <= 0 || micro == 0 {
		return 0, i18n.NewError(ctx, i18n.MsgAmountNotPositive)
	}
	if micro > balance {
		return 0, i18n.NewError(ctx, i18n.MsgAmountExceedsBalance)
	}
	return micro, nil
}

// HolderStats is the token activity of one holder, in micro-AOD
type HolderStats struct {
	Balance             uint64 `json:"balance"`
	FirstReceivedBlock  uint64 `json:"firstReceivedBlock"`
	LastActivityBlock   uint64 `json:"lastActivityBlock"`
	TotalEarned         uint64 `json:"totalEarned"`
	TotalTransferredIn  uint64 `json:"totalTransferredIn"`
	TotalTransferredOut uint64 `json:"totalTransferredOut"`
	ReputationLevel     int    `json:"reputationLevel"`
	ReputationLabel     string `json:"reputationLabel"`
	GovernancePower     uint64 `json:"governancePower"`
}

// ReputationLevel scores a holder from 0 to 100: ten points per AOD earned from tasks, five for
// having transferred at all, and one per AOD held
func ReputationLevel(stats *HolderStats) int {
	score := (stats.TotalEarned / MicroPerAOD) * 10
	if stats.TotalTransferredIn+stats.TotalTransferredOut > 0 {
		score += 5
	}
	score += stats.Balance / MicroPerAOD
	if score > 100 {
		return 100
	}
	return int(score)
}

func ReputationLabel(level int) string {
	switch {
	case level >= 80:
		return "Legend"
	case level >= 60:
		return "Expert"
	case level >= 40:
		return "Advanced"
	case level >= 20:
		return "Intermediate"
	case level >= 5:
		return "Beginner"
	default:
		return "Newcomer"
	}
}

// GovernancePower is the balance in AOD, weighted up by reputation
func GovernancePower(balance uint64, level int) uint64 {
	return uint64(math.Floor(FromMicro(balance) * (1 + float64(level)/100)))
}
