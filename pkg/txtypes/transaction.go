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

// TxState is the lifecycle state of a submitted contract call
type TxState string

const (
	TxStateIdle      TxState = "idle"
	TxStateSigning   TxState = "signing"
	TxStatePending   TxState = "pending"
	TxStateConfirmed TxState = "confirmed"
	TxStateFailed    TxState = "failed"
	TxStateCancelled TxState = "cancelled"
)

// TxStates lists every state, in lifecycle order
var TxStates = []TxState{
	TxStateIdle,
	TxStateSigning,
	TxStatePending,
	TxStateConfirmed,
	TxStateFailed,
	TxStateCancelled,
}

// IsTerminal is true for states from which no further transition occurs
func (s TxState) IsTerminal() bool {
	return s == TxStateConfirmed || s == TxStateFailed || s == TxStateCancelled
}

// IsActive is true for states that count towards the active total
func (s TxState) IsActive() bool {
	return s == TxStatePending || s == TxStateSigning
}

// ParseTxState returns the state matching the string, and whether it was known
func ParseTxState(s string) (TxState, bool) {
	for _, state := range TxStates {
		if string(state) == s {
			return state, true
		}
	}
	return "", false
}

// TransactionRecord is the tracked view of a single broadcast transaction.
// Result and Error are mutually exclusive, and only set on a terminal state.
type TransactionRecord struct {
	ID           string        `json:"id"`
	State        TxState       `json:"state"`
	FunctionName string        `json:"functionName"`
	Args         []interface{} `json:"args"`
	Error        string        `json:"error,omitempty"`
	Result       interface{}   `json:"result,omitempty"`
	Timestamp    *Timestamp    `json:"timestamp"`
	Updated      *Timestamp    `json:"updated,omitempty"`
}

// TransactionUpdate carries the fields to merge into a record. Nil fields are left unchanged.
type TransactionUpdate struct {
	State  *TxState
	Error  *string
	Result interface{}
}

// Copy returns a shallow copy of the record, safe to hand outside of a lock
func (r *TransactionRecord) Copy() *TransactionRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.Args != nil {
		c.Args = make([]interface{}, len(r.Args))
		copy(c.Args, r.Args)
	}
	return &c
}

// PollStatus is the local three state vocabulary the poller maps remote statuses into
type PollStatus string

const (
	PollStatusPending   PollStatus = "pending"
	PollStatusConfirmed PollStatus = "confirmed"
	PollStatusFailed    PollStatus = "failed"
)

// TxState maps a poll status onto the transaction lifecycle
func (ps PollStatus) TxState() TxState {
	switch ps {
	case PollStatusConfirmed:
		return TxStateConfirmed
	case PollStatusFailed:
		return TxStateFailed
	default:
		return TxStatePending
	}
}

// TransactionStatus is a single observation of a transaction by the poller
type TransactionStatus struct {
	TxID         string      `json:"txId"`
	Status       PollStatus  `json:"status"`
	Error        string      `json:"error,omitempty"`
	Result       interface{} `json:"result,omitempty"`
	RemoteStatus string      `json:"remoteStatus,omitempty"`
	Attempt      int         `json:"attempt"`
}

// IsTerminal is true when polling can stop
func (s *TransactionStatus) IsTerminal() bool {
	return s.Status == PollStatusConfirmed || s.Status == PollStatusFailed
}

// ToUpdate converts a terminal observation into the registry update that records it
func (s *TransactionStatus) ToUpdate() *TransactionUpdate {
	state := s.Status.TxState()
	u := &TransactionUpdate{State: &state}
	switch state {
	case TxStateConfirmed:
		u.Result = s.Result
	case TxStateFailed:
		errMsg := s.Error
		u.Error = &errMsg
	}
	return u
}

// TxCounts are the aggregate counts derived by the registry
type TxCounts struct {
	Active  int `json:"activeCount"`
	Pending int `json:"pendingCount"`
}

// ChangeEventType describes a registry mutation
type ChangeEventType string

const (
	ChangeEventTypeAdded   ChangeEventType = "added"
	ChangeEventTypeUpdated ChangeEventType = "updated"
	ChangeEventTypeRemoved ChangeEventType = "removed"
	ChangeEventTypeCleared ChangeEventType = "cleared"
)

// ChangeEvent is emitted by the registry after each mutation
type ChangeEvent struct {
	Seq      uint64             `json:"seq"`
	Type     ChangeEventType    `json:"type"`
	ID       string             `json:"id,omitempty"`
	Previous TxState            `json:"previous,omitempty"`
	Record   *TransactionRecord `json:"record,omitempty"`
	Counts   TxCounts           `json:"counts"`
}
