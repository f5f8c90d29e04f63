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

package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/dapps"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/optimistic"
	"github.com/kaleido-io/dapptx/internal/wallet"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

const (
	FnGetCommunityStats = "get-community-stats"
	FnGetUserProfile    = "get-user-profile"
	FnGetTask           = "get-task"

	// DefaultMaxTasks bounds how many of the most recent tasks a load reads
	DefaultMaxTasks = 100
)

// Ecosystem is the multi-user view of the task contract: the confirmed state from the
// last load, overlaid with tasks and status changes that are still pending
type Ecosystem struct {
	contract        dapps.Contract
	session         *wallet.Session
	reader          stacks.ReadOnlyCaller
	refreshInterval time.Duration
	maxTasks        uint64

	mux   sync.RWMutex
	state *AppState

	created  *optimistic.Store[[]*Task]
	statuses *optimistic.Store[map[string]TaskStatus]

	cancelCtx func()
	done      chan struct{}
}

func NewEcosystem(contract dapps.Contract, session *wallet.Session, reader stacks.ReadOnlyCaller, refreshInterval time.Duration) *Ecosystem {
	return &Ecosystem{
		contract:        contract,
		session:         session,
		reader:          reader,
		refreshInterval: refreshInterval,
		maxTasks:        DefaultMaxTasks,
		state:           &AppState{},
		created:         optimistic.New([]*Task{}),
		statuses:        optimistic.New(map[string]TaskStatus{}),
	}
}

func (e *Ecosystem) readStats(ctx context.Context) (*CommunityStats, error) {
	v, ok, err := e.contract.Read(ctx, e.reader, FnGetCommunityStats)
	if err != nil {
		return nil, err
	}
	t, isTuple := v.(clarity.Tuple)
	if !ok || !isTuple {
		return nil, i18n.NewError(ctx, i18n.MsgReadOnlyCallFailed, FnGetCommunityStats, v)
	}
	return statsFromTuple(t), nil
}

func (e *Ecosystem) readProfile(ctx context.Context, address string) (*UserProfile, error) {
	principal, err := clarity.StandardPrincipalCV(address)
	if err != nil {
		return nil, err
	}
	v, ok, err := e.contract.Read(ctx, e.reader, FnGetUserProfile, principal)
	if err != nil || !ok {
		return nil, err
	}
	t, isTuple := v.(clarity.Tuple)
	if !isTuple {
		return nil, i18n.NewError(ctx, i18n.MsgReadOnlyCallFailed, FnGetUserProfile, v)
	}
	return profileFromTuple(address, t), nil
}

func (e *Ecosystem) readTask(ctx context.Context, id uint64) (*Task, error) {
	v, ok, err := e.contract.Read(ctx, e.reader, FnGetTask, clarity.UIntCV(id))
	if err != nil || !ok {
		return nil, err
	}
	t, isTuple := v.(clarity.Tuple)
	if !isTuple {
		return nil, i18n.NewError(ctx, i18n.MsgReadOnlyCallFailed, FnGetTask, v)
	}
	return taskFromTuple(fmt.Sprintf("%d", id), t), nil
}

// Load reads the community stats and the user's profile in parallel, then the most recent tasks,
// and replaces the confirmed state. On error the previous state is kept.
func (e *Ecosystem) Load(ctx context.Context) error {
	me, err := e.session.Address(ctx)
	if err != nil {
		return err
	}
	ctx = log.WithLogField(ctx, "role", "tasks")

	var wg sync.WaitGroup
	var stats *CommunityStats
	var statsErr error
	var profile *UserProfile
	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = e.readStats(ctx)
	}()
	go func() {
		defer wg.Done()
		var err error
		if profile, err = e.readProfile(ctx, me); err != nil {
			// A missing profile does not stop the tasks loading
			log.L(ctx).Warnf("Failed to load profile of %s: %s", me, err)
		}
	}()
	wg.Wait()
	if statsErr != nil {
		return statsErr
	}

	state := &AppState{
		MyTasks:        []*Task{},
		CommunityTasks: []*Task{},
		UserProfiles:   []*UserProfile{},
		Stats:          stats,
	}
	if profile != nil {
		state.UserProfiles = append(state.UserProfiles, profile)
	}
	var first uint64 = 1
	if stats.TotalTasks > e.maxTasks {
		first = stats.TotalTasks - e.maxTasks + 1
	}
	for id := stats.TotalTasks; id >= first && id > 0; id-- {
		task, err := e.readTask(ctx, id)
		if err != nil {
			return err
		}
		switch {
		case task == nil:
		case (task.Creator == me || task.Assignee == me) && task.Status != TaskStatusCompleted:
			state.MyTasks = append(state.MyTasks, task)
		case task.Creator != me && task.Assignee == "" && task.Status == TaskStatusOpen:
			state.CommunityTasks = append(state.CommunityTasks, task)
		}
	}
	state.LastSync = txtypes.Now()

	e.mux.Lock()
	if info := e.session.Info(); !info.SignedIn || info.Address != me {
		e.mux.Unlock()
		log.L(ctx).Debugf("Discarding tasks loaded for %s after wallet change", me)
		return nil
	}
	e.state = state
	e.mux.Unlock()
	// The chain now reflects everything confirmed so far, so only pending overlays remain
	e.created.UpdateBaseline([]*Task{})
	e.statuses.UpdateBaseline(map[string]TaskStatus{})
	log.L(ctx).Infof("Loaded %d tasks: mine=%d community=%d", stats.TotalTasks, len(state.MyTasks), len(state.CommunityTasks))
	return nil
}

// Start refreshes the state periodically, whenever a wallet is connected
func (e *Ecosystem) Start(ctx context.Context) {
	ctx, e.cancelCtx = context.WithCancel(log.WithLogField(ctx, "role", "tasks-refresh"))
	e.done = make(chan struct{})
	go e.refreshLoop(ctx)
}

func (e *Ecosystem) refreshLoop(ctx context.Context) {
	defer close(e.done)
	if e.refreshInterval <= 0 {
		return
	}
	ticker := time.NewTicker(e.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.L(ctx).Debugf("Refresh loop exiting")
			return
		case <-ticker.C:
			if !e.session.IsSignedIn() {
				continue
			}
			if err := e.Load(ctx); err != nil {
				log.L(ctx).Errorf("Refresh failed: %s", err)
			}
		}
	}
}

func (e *Ecosystem) WaitStop() {
	if e.cancelCtx != nil {
		e.cancelCtx()
		<-e.done
	}
}

// Reset clears the state loaded for the previous wallet, and drops its pending tasks and status changes
func (e *Ecosystem) Reset() {
	e.mux.Lock()
	e.state = &AppState{}
	e.mux.Unlock()
	e.created.Reset([]*Task{})
	e.statuses.Reset(map[string]TaskStatus{})
}

// State returns the confirmed state from the last load
func (e *Ecosystem) State() *AppState {
	e.mux.RLock()
	defer e.mux.RUnlock()
	return e.state
}

// AllTasks merges the loaded tasks with pending status changes, followed by the locally created tasks
func (e *Ecosystem) AllTasks() []*Task {
	state := e.State()
	statuses := e.statuses.Value()
	created := e.created.Value()
	tasks := make([]*Task, 0, len(state.MyTasks)+len(state.CommunityTasks)+len(created))
	for _, list := range [][]*Task{state.MyTasks, state.CommunityTasks} {
		for _, t := range list {
			if status, ok := statuses[t.ID]; ok {
				c := *t
				c.Status = status
				c.Optimistic = true
				t = &c
			}
			tasks = append(tasks, t)
		}
	}
	return append(tasks, created...)
}

// GetTask finds a task in the merged view
func (e *Ecosystem) GetTask(ctx context.Context, id string) (*Task, error) {
	for _, t := range e.AllTasks() {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, i18n.NewError(ctx, i18n.MsgTaskNotFound, id)
}

func (e *Ecosystem) filter(match func(t *Task) bool) []*Task {
	tasks := []*Task{}
	for _, t := range e.AllTasks() {
		if match(t) {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

func (e *Ecosystem) TasksByStatus(status TaskStatus) []*Task {
	return e.filter(func(t *Task) bool { return t.Status == status })
}

func (e *Ecosystem) TasksByCategory(category string) []*Task {
	return e.filter(func(t *Task) bool { return t.Category == category })
}

// UserTaskStats counts the signed in user's relationship to the tasks in view
func (e *Ecosystem) UserTaskStats(ctx context.Context) (*TaskStats, error) {
	me, err := e.session.Address(ctx)
	if err != nil {
		return nil, err
	}
	stats := &TaskStats{}
	for _, t := range e.AllTasks() {
		if t.Creator == me {
			stats.Created++
		}
		if t.Assignee == me {
			stats.Assigned++
		}
		if (t.Creator == me || t.Assignee == me) && t.Status == TaskStatusCompleted {
			stats.Completed++
		}
	}
	return stats, nil
}

// ActiveCategories lists the distinct categories in view, sorted
func (e *Ecosystem) ActiveCategories() []string {
	seen := map[string]bool{}
	categories := []string{}
	for _, t := range e.AllTasks() {
		if !seen[t.Category] {
			seen[t.Category] = true
			categories = append(categories, t.Category)
		}
	}
	sort.Strings(categories)
	return categories
}
