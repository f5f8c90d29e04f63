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

package txregistry

import (
	"context"
	"sort"
	"sync"

	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

const DefaultRecentLimit = 10

// Listener is notified after each mutation. Listeners are invoked outside of the registry lock,
// so may call back into the registry.
type Listener func(event *txtypes.ChangeEvent)

// Registry is the in-memory owner of all transaction records.
// Each call is atomic, and the counts always agree with the records held.
type Registry struct {
	ctx         context.Context
	mux         sync.Mutex
	records     map[string]*txtypes.TransactionRecord
	counts      txtypes.TxCounts
	seq         uint64
	recentLimit int

	listenerMux sync.RWMutex
	listeners   []Listener
}

func New(ctx context.Context, recentLimit int) *Registry {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &Registry{
		ctx:         log.WithLogField(ctx, "role", "txregistry"),
		records:     make(map[string]*txtypes.TransactionRecord),
		recentLimit: recentLimit,
	}
}

func (r *Registry) AddListener(l Listener) {
	r.listenerMux.Lock()
	defer r.listenerMux.Unlock()
	r.listeners = append(r.listeners, l)
}

func (r *Registry) notify(events ...*txtypes.ChangeEvent) {
	r.listenerMux.RLock()
	defer r.listenerMux.RUnlock()
	for _, event := range events {
		for _, l := range r.listeners {
			l(event)
		}
	}
}

func countDelta(counts *txtypes.TxCounts, state txtypes.TxState, delta int) {
	if state.IsActive() {
		counts.Active += delta
	}
	if state == txtypes.TxStatePending {
		counts.Pending += delta
	}
}

// newEvent stamps the next sequence number and the current counts. The caller holds the lock.
func (r *Registry) newEvent(eventType txtypes.ChangeEventType, id string) *txtypes.ChangeEvent {
	r.seq++
	return &txtypes.ChangeEvent{
		Seq:    r.seq,
		Type:   eventType,
		ID:     id,
		Counts: r.counts,
	}
}

// Add creates a pending record. A record is only ever created once, so adding an existing id
// returns the existing record unchanged.
func (r *Registry) Add(id, functionName string, args []interface{}) *txtypes.TransactionRecord {
	r.mux.Lock()
	if existing, ok := r.records[id]; ok {
		c := existing.Copy()
		r.mux.Unlock()
		log.L(r.ctx).Warnf("Transaction %s already registered in state %s", id, c.State)
		return c
	}
	record := &txtypes.TransactionRecord{
		ID:           id,
		State:        txtypes.TxStatePending,
		FunctionName: functionName,
		Args:         args,
		Timestamp:    txtypes.Now(),
	}
	r.records[id] = record
	countDelta(&r.counts, record.State, 1)
	event := r.newEvent(txtypes.ChangeEventTypeAdded, id)
	event.Record = record.Copy()
	r.mux.Unlock()

	log.L(r.ctx).Debugf("Added %s (%s) active=%d pending=%d", id, functionName, event.Counts.Active, event.Counts.Pending)
	r.notify(event)
	return event.Record
}

// Update merges the update into the record. Absent ids, and records already in a terminal
// state, are left untouched. The result is kept only on confirmation, and the error only on failure.
func (r *Registry) Update(id string, update *txtypes.TransactionUpdate) *txtypes.TransactionRecord {
	r.mux.Lock()
	record, ok := r.records[id]
	if !ok || update == nil {
		r.mux.Unlock()
		log.L(r.ctx).Debugf("Ignoring update for unknown transaction %s", id)
		return nil
	}
	if record.State.IsTerminal() {
		c := record.Copy()
		r.mux.Unlock()
		log.L(r.ctx).Debugf("Ignoring update for transaction %s in terminal state %s", id, c.State)
		return c
	}

	previous := record.State
	if update.State != nil {
		record.State = *update.State
	}
	switch record.State {
	case txtypes.TxStateConfirmed:
		record.Error = ""
		if update.Result != nil {
			record.Result = update.Result
		}
	case txtypes.TxStateFailed:
		record.Result = nil
		if update.Error != nil {
			record.Error = *update.Error
		}
	default:
		record.Error = ""
		record.Result = nil
	}
	record.Updated = txtypes.Now()
	if previous != record.State {
		countDelta(&r.counts, previous, -1)
		countDelta(&r.counts, record.State, 1)
	}
	event := r.newEvent(txtypes.ChangeEventTypeUpdated, id)
	event.Previous = previous
	event.Record = record.Copy()
	r.mux.Unlock()

	log.L(r.ctx).Debugf("Updated %s %s -> %s active=%d pending=%d", id, previous, event.Record.State, event.Counts.Active, event.Counts.Pending)
	r.notify(event)
	return event.Record
}

// Remove deletes the record, whatever its state
func (r *Registry) Remove(id string) bool {
	r.mux.Lock()
	record, ok := r.records[id]
	if !ok {
		r.mux.Unlock()
		return false
	}
	delete(r.records, id)
	countDelta(&r.counts, record.State, -1)
	event := r.newEvent(txtypes.ChangeEventTypeRemoved, id)
	event.Previous = record.State
	r.mux.Unlock()

	log.L(r.ctx).Debugf("Removed %s", id)
	r.notify(event)
	return true
}

// ClearCompleted drops every record in a terminal state, and returns how many were dropped
func (r *Registry) ClearCompleted() int {
	r.mux.Lock()
	removed := 0
	counts := txtypes.TxCounts{}
	for id, record := range r.records {
		if record.State.IsTerminal() {
			delete(r.records, id)
			removed++
		} else {
			countDelta(&counts, record.State, 1)
		}
	}
	r.counts = counts
	event := r.newEvent(txtypes.ChangeEventTypeCleared, "")
	r.mux.Unlock()

	log.L(r.ctx).Debugf("Cleared %d completed transactions", removed)
	r.notify(event)
	return removed
}

func (r *Registry) Get(id string) *txtypes.TransactionRecord {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.records[id].Copy()
}

func (r *Registry) Counts() txtypes.TxCounts {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.counts
}

func (r *Registry) Len() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return len(r.records)
}

func (r *Registry) sorted(filter func(*txtypes.TransactionRecord) bool) []*txtypes.TransactionRecord {
	r.mux.Lock()
	records := make([]*txtypes.TransactionRecord, 0, len(r.records))
	for _, record := range r.records {
		if filter == nil || filter(record) {
			records = append(records, record.Copy())
		}
	}
	r.mux.Unlock()
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := records[i].Timestamp.UnixNano(), records[j].Timestamp.UnixNano()
		if ti == tj {
			return records[i].ID > records[j].ID
		}
		return ti > tj
	})
	return records
}

// All returns every record, newest first
func (r *Registry) All() []*txtypes.TransactionRecord {
	return r.sorted(nil)
}

// ByState returns the records in the given state, newest first
func (r *Registry) ByState(state txtypes.TxState) []*txtypes.TransactionRecord {
	return r.sorted(func(record *txtypes.TransactionRecord) bool {
		return record.State == state
	})
}

// Recent returns the n newest records. A limit of zero or less uses the configured default.
func (r *Registry) Recent(n int) []*txtypes.TransactionRecord {
	if n <= 0 {
		n = r.recentLimit
	}
	records := r.sorted(nil)
	if len(records) > n {
		records = records[0:n]
	}
	return records
}
