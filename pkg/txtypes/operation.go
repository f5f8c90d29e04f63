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

package txtypes

import "github.com/google/uuid"

// Operation tracks one submission through signing, broadcast and confirmation.
// Unlike a TransactionRecord it exists before there is a transaction id, so it
// can report the signing and cancelled states.
type Operation struct {
	ID           *uuid.UUID    `json:"id"`
	Kind         string        `json:"kind"`
	Contract     string        `json:"contract"`
	FunctionName string        `json:"functionName"`
	Args         []interface{} `json:"args,omitempty"`
	State        TxState       `json:"state"`
	TxID         string        `json:"txId,omitempty"`
	ExplorerURL  string        `json:"explorerUrl,omitempty"`
	Error        string        `json:"error,omitempty"`
	Message      string        `json:"message,omitempty"`
	Result       interface{}   `json:"result,omitempty"`
	Created      *Timestamp    `json:"created"`
	Updated      *Timestamp    `json:"updated,omitempty"`
}

// Copy returns a shallow copy, safe to hand outside of a lock
func (op *Operation) Copy() *Operation {
	if op == nil {
		return nil
	}
	c := *op
	return &c
}
