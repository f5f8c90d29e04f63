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
	"github.com/kaleido-io/dapptx/internal/dapps/tasks"
	"github.com/kaleido-io/dapptx/internal/wallet"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

// Status is the summary returned by the status API
type Status struct {
	Network     string                       `json:"network"`
	Wallet      *wallet.SessionInfo          `json:"wallet"`
	Counts      txtypes.TxCounts             `json:"counts"`
	Tracked     int                          `json:"tracked"`
	ActivePolls int                          `json:"activePolls"`
	Recent      []*txtypes.TransactionRecord `json:"recent"`
}

type ClearResult struct {
	Removed int              `json:"removed"`
	Counts  txtypes.TxCounts `json:"counts"`
}

type WalletConnect struct {
	Address string `json:"address"`
}

type GreetingInput struct {
	Message string `json:"message"`
	Cost    uint64 `json:"cost,omitempty"`
}

type LikeInput struct {
	EntryID uint64 `json:"entryId"`
}

type TaskApplication struct {
	Message string `json:"message"`
}

// TaskSummary is the signed in user's view of the task ecosystem
type TaskSummary struct {
	State      *tasks.AppState  `json:"state"`
	Stats      *tasks.TaskStats `json:"stats"`
	Categories []string         `json:"categories"`
}

type TokenTransfer struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Memo      string `json:"memo,omitempty"`
}
