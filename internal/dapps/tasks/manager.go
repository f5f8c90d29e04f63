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
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/dapps"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/reconcile"
	"github.com/kaleido-io/dapptx/internal/txerrors"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

const (
	FnCreateTask   = "create-task"
	FnApplyForTask = "apply-for-task"
	FnCompleteTask = "complete-task"

	Kind = "tasks"

	MicroSTXPerSTX      = 1000000
	MaxApplicationChars = 500
	// MaxRewardSTX bounds the reward of a single task, and must match the task schema
	MaxRewardSTX = 1000000
)

// TaskManager submits task transactions, showing their effect on the ecosystem while they are pending
type TaskManager struct {
	ecosystem *Ecosystem
	submitter dapps.Submitter
}

func NewTaskManager(ecosystem *Ecosystem, submitter dapps.Submitter) *TaskManager {
	return &TaskManager{
		ecosystem: ecosystem,
		submitter: submitter,
	}
}

func (tm *TaskManager) Ecosystem() *Ecosystem {
	return tm.ecosystem
}

func (tm *TaskManager) reload(ctx context.Context, op *txtypes.Operation) {
	if err := tm.ecosystem.Load(stacks.WithFreshRead(ctx)); err != nil {
		log.L(ctx).Warnf("Task reload after %s failed: %s", op.TxID, err)
	}
}

// ToMicroSTX converts an STX amount to micro-STX, rounding down. The amount is first rounded
// to a tenth of a micro-STX, so binary representation error does not lose a whole unit.
// Amounts beyond the range of a uint64 saturate.
func ToMicroSTX(stx float64) uint64 {
	if stx <= 0 || math.IsNaN(stx) {
		return 0
	}
	micro := math.Floor(math.Round(stx*MicroSTXPerSTX*10) / 10)
	if micro >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(micro)
}

func parseTaskID(ctx context.Context, id string) (uint64, error) {
	if strings.HasPrefix(id, TempIDPrefix) {
		// Not on chain yet
		return 0, i18n.NewError(ctx, i18n.MsgTaskNotFound, id)
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, i18n.NewError(ctx, i18n.MsgTaskNotFound, id)
	}
	return n, nil
}

// CreateTask validates the input, and submits it. A temporary task is visible in AllTasks
// until the creation resolves.
func (tm *TaskManager) CreateTask(ctx context.Context, input *CreateTaskInput) (*txtypes.Operation, error) {
	input, err := ValidateCreateTask(ctx, input)
	if err != nil {
		return nil, err
	}
	me, err := tm.ecosystem.session.Address(ctx)
	if err != nil {
		return nil, err
	}
	reward := ToMicroSTX(input.Reward)
	task := &Task{
		ID:               TempIDPrefix + txtypes.ShortID(),
		Title:            input.Title,
		Description:      input.Description,
		Creator:          me,
		Category:         input.Category,
		Difficulty:       uint64(input.Difficulty),
		STXReward:        reward,
		Status:           TaskStatusOpen,
		CreatedAt:        uint64(time.Now().Unix()),
		RequiresApproval: true,
		Optimistic:       true,
	}
	addTask := func(tasks []*Task) []*Task {
		updated := make([]*Task, 0, len(tasks)+1)
		return append(append(updated, tasks...), task)
	}
	return tm.submitter.Submit(ctx, &reconcile.Submission{
		Kind: Kind,
		Call: tm.ecosystem.contract.Call(FnCreateTask,
			clarity.StringASCIICV(input.Title),
			clarity.StringASCIICV(input.Description),
			clarity.StringASCIICV(input.Category),
			clarity.UIntCV(uint64(input.Difficulty)),
			clarity.UIntCV(reward),
		),
		Args:        []interface{}{input.Title, input.Description, input.Category, input.Difficulty, reward},
		Effect:      reconcile.StoreEffect(tm.ecosystem.created, "create-task", addTask),
		ErrorTable:  txerrors.TableTasks,
		OnConfirmed: tm.reload,
	})
}

// ApplyForTask asks to be assigned an open task, with a message to its creator
func (tm *TaskManager) ApplyForTask(ctx context.Context, taskID, message string) (*txtypes.Operation, error) {
	id, err := parseTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := tm.ecosystem.session.Address(ctx); err != nil {
		return nil, err
	}
	message = dapps.CleanText(message)
	if len(message) > MaxApplicationChars {
		return nil, i18n.NewError(ctx, i18n.MsgTaskInputInvalid, "message is too long")
	}
	return tm.submitter.Submit(ctx, &reconcile.Submission{
		Kind:        Kind,
		Call:        tm.ecosystem.contract.Call(FnApplyForTask, clarity.UIntCV(id), clarity.StringASCIICV(message)),
		Args:        []interface{}{id, message},
		ErrorTable:  txerrors.TableTasks,
		OnConfirmed: tm.reload,
	})
}

// CompleteTask marks a task completed. The new status shows until the transaction resolves.
func (tm *TaskManager) CompleteTask(ctx context.Context, taskID string) (*txtypes.Operation, error) {
	id, err := parseTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := tm.ecosystem.GetTask(ctx, taskID); err != nil {
		return nil, err
	}
	if _, err := tm.ecosystem.session.Address(ctx); err != nil {
		return nil, err
	}
	complete := func(statuses map[string]TaskStatus) map[string]TaskStatus {
		updated := make(map[string]TaskStatus, len(statuses)+1)
		for k, v := range statuses {
			updated[k] = v
		}
		updated[taskID] = TaskStatusCompleted
		return updated
	}
	return tm.submitter.Submit(ctx, &reconcile.Submission{
		Kind:        Kind,
		Call:        tm.ecosystem.contract.Call(FnCompleteTask, clarity.UIntCV(id)),
		Args:        []interface{}{id},
		Effect:      reconcile.StoreEffect(tm.ecosystem.statuses, "complete-task", complete),
		ErrorTable:  txerrors.TableTasks,
		OnConfirmed: tm.reload,
	})
}
