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

package txerrors

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/pkg/stacks"
)

// Table selects the error code vocabulary of one contract
type Table string

const (
	TableGreeting Table = "greeting"
	TableTasks    Table = "tasks"
	TableToken    Table = "token"
)

var contractErrorRegex = regexp.MustCompile(`\(?err u([0-9]+)\)?`)

var tables = map[Table]map[uint64]i18n.MessageKey{
	TableGreeting: {
		100: i18n.MsgGreetingNotAuthorized,
		101: i18n.MsgGreetingMessageTooLong,
		102: i18n.MsgGreetingMessageEmpty,
		103: i18n.MsgGreetingPaymentTooLow,
		104: i18n.MsgGreetingEntryNotFound,
		105: i18n.MsgGreetingAlreadyLiked,
		106: i18n.MsgGreetingOwnLike,
	},
	TableTasks: {
		100: i18n.MsgTaskNotAuthorized,
		101: i18n.MsgTaskMissing,
		102: i18n.MsgTaskInvalidStatus,
		103: i18n.MsgTaskRewardTooLow,
		110: i18n.MsgProfileExists,
		111: i18n.MsgProfileMissing,
	},
	TableToken: {
		100: i18n.MsgTokenNotOwner,
		101: i18n.MsgTokenInsufficientBalance,
		102: i18n.MsgTokenAlreadyClaimed,
		103: i18n.MsgTokenDistributionOver,
	},
}

// ContractErrorCode extracts the numeric code from a Clarity "(err uNNN)" in a message
func ContractErrorCode(message string) (uint64, bool) {
	match := contractErrorRegex.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}
	code, err := strconv.ParseUint(match[1], 10, 64)
	return code, err == nil
}

// Translate turns a submission or confirmation failure into a message a user can act on.
// Known contract error codes are matched first, then wallet and network failures,
// with a generic message for everything else.
func Translate(ctx context.Context, table Table, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, stacks.ErrSigningCancelled) {
		return i18n.Expand(ctx, i18n.MsgUserRejected)
	}
	return TranslateMessage(ctx, table, err.Error())
}

// TranslateMessage is Translate for a message that is not held in an error, such as a transaction result
func TranslateMessage(ctx context.Context, table Table, message string) string {
	if code, ok := ContractErrorCode(message); ok {
		if key, ok := tables[table][code]; ok {
			return i18n.Expand(ctx, key)
		}
	}
	switch {
	case strings.Contains(message, "InsufficientFunds"):
		return i18n.Expand(ctx, i18n.MsgInsufficientFunds)
	case strings.Contains(message, "UserRejected"):
		return i18n.Expand(ctx, i18n.MsgUserRejected)
	case strings.Contains(strings.ToLower(message), "network"):
		return i18n.Expand(ctx, i18n.MsgNetworkIssue)
	}
	return i18n.Expand(ctx, i18n.MsgUnknownFailure)
}

// IsTransient reports whether an error might resolve if the operation is retried
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	for _, s := range []string{"network", "timeout", "connection", "rate limit"} {
		if strings.Contains(message, s) {
			return true
		}
	}
	return false
}
