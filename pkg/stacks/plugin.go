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

package stacks

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaleido-io/dapptx/internal/clarity"
)

// ErrSigningCancelled is returned by a Signer when the user declines to sign.
// It is not a failure: nothing was broadcast.
var ErrSigningCancelled = errors.New("signing cancelled by user")

// RemoteTxStatus is the status vocabulary of the chain API
type RemoteTxStatus string

const (
	RemoteTxStatusPending                    RemoteTxStatus = "pending"
	RemoteTxStatusSuccess                    RemoteTxStatus = "success"
	RemoteTxStatusAbortByResponse            RemoteTxStatus = "abort_by_response"
	RemoteTxStatusAbortByPostCondition       RemoteTxStatus = "abort_by_post_condition"
	RemoteTxStatusDroppedReplaceByFee        RemoteTxStatus = "dropped_replace_by_fee"
	RemoteTxStatusDroppedReplaceAcrossFork   RemoteTxStatus = "dropped_replace_across_fork"
	RemoteTxStatusDroppedTooExpensive        RemoteTxStatus = "dropped_too_expensive"
	RemoteTxStatusDroppedStaleGarbageCollect RemoteTxStatus = "dropped_stale_garbage_collect"
	RemoteTxStatusDroppedProblematic         RemoteTxStatus = "dropped_problematic"
)

// IsAbort is true for the statuses where the transaction was mined, but rolled back
func (s RemoteTxStatus) IsAbort() bool {
	return s == RemoteTxStatusAbortByResponse || s == RemoteTxStatusAbortByPostCondition
}

// IsDropped is true when the transaction was evicted from the mempool and will never be mined
func (s RemoteTxStatus) IsDropped() bool {
	return strings.HasPrefix(string(s), "dropped_")
}

// TxResult is the result of a mined transaction, as hex and as a Clarity literal
type TxResult struct {
	Hex  string `json:"hex"`
	Repr string `json:"repr"`
}

// TxInfo is the subset of the transaction resource returned by the chain API that is used for status tracking
type TxInfo struct {
	TxID        string         `json:"tx_id"`
	TxStatus    RemoteTxStatus `json:"tx_status"`
	TxResult    *TxResult      `json:"tx_result,omitempty"`
	BlockHeight int64          `json:"block_height,omitempty"`
}

// ContractCall describes a public function call, to be signed and broadcast by the wallet
type ContractCall struct {
	ContractAddress string            `json:"contractAddress"`
	ContractName    string            `json:"contractName"`
	FunctionName    string            `json:"functionName"`
	FunctionArgs    []clarity.Value   `json:"-"`
	PostConditions  []json.RawMessage `json:"postConditions,omitempty"`
	Fee             uint64            `json:"fee,omitempty"`
}

// ContractID returns the fully qualified contract identifier
func (cc *ContractCall) ContractID() string {
	return cc.ContractAddress + "." + cc.ContractName
}

// Signer is the wallet signing service. It resolves with a transaction id once the call has
// been signed and broadcast, or ErrSigningCancelled if the user declined.
type Signer interface {
	SignAndBroadcast(ctx context.Context, call *ContractCall) (txID string, err error)
}

// StatusSource looks up the current status of a broadcast transaction
type StatusSource interface {
	GetTransactionStatus(ctx context.Context, txID string) (*TxInfo, error)
}

// ReadOnlyCaller invokes read-only contract functions
type ReadOnlyCaller interface {
	CallReadOnly(ctx context.Context, contractAddress, contractName, functionName string, args ...clarity.Value) (clarity.Value, error)
}

type freshReadKey struct{}

// WithFreshRead marks the context so read-only calls bypass any cache, while still repopulating it.
// Used after a confirmation, when cached state is known to be stale.
func WithFreshRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshReadKey{}, true)
}

func IsFreshRead(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshReadKey{}).(bool)
	return fresh
}
