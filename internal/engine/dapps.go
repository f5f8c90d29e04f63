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
	"context"

	"github.com/kaleido-io/dapptx/internal/dapps/greeting"
	"github.com/kaleido-io/dapptx/internal/dapps/tasks"
	"github.com/kaleido-io/dapptx/internal/dapps/token"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

func (e *engine) GetGreeting(ctx context.Context, fresh bool) (*greeting.State, error) {
	if fresh {
		if err := e.greeting.Refresh(stacks.WithFreshRead(ctx)); err != nil {
			return nil, err
		}
	}
	return e.greeting.State(), nil
}

func (e *engine) SetGreeting(ctx context.Context, input *GreetingInput) (*txtypes.Operation, error) {
	cost := input.Cost
	if cost == 0 {
		cost = greeting.DefaultCost
	}
	return e.greeting.SetGlobalGreeting(ctx, input.Message, cost)
}

func (e *engine) SetPersonalGreeting(ctx context.Context, input *GreetingInput) (*txtypes.Operation, error) {
	return e.greeting.SetPersonalGreeting(ctx, input.Message)
}

func (e *engine) LikeGreeting(ctx context.Context, input *LikeInput) (*txtypes.Operation, error) {
	return e.greeting.LikeGreeting(ctx, input.EntryID)
}

func parseTaskStatus(ctx context.Context, s string) (tasks.TaskStatus, error) {
	switch status := tasks.TaskStatus(s); status {
	case tasks.TaskStatusOpen, tasks.TaskStatusAssigned, tasks.TaskStatusCompleted, tasks.TaskStatusDisputed:
		return status, nil
	default:
		return "", i18n.NewError(ctx, i18n.MsgInvalidTaskStatus, s)
	}
}

// GetTasks returns the merged task view, optionally filtered by status and category
func (e *engine) GetTasks(ctx context.Context, status, category string, fresh bool) ([]*tasks.Task, error) {
	var matchStatus tasks.TaskStatus
	if status != "" {
		var err error
		if matchStatus, err = parseTaskStatus(ctx, status); err != nil {
			return nil, err
		}
	}
	if fresh {
		if err := e.ecosystem.Load(stacks.WithFreshRead(ctx)); err != nil {
			return nil, err
		}
	}
	all := e.ecosystem.AllTasks()
	filtered := make([]*tasks.Task, 0, len(all))
	for _, t := range all {
		if matchStatus != "" && t.Status != matchStatus {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered, nil
}

func (e *engine) GetTaskSummary(ctx context.Context) (*TaskSummary, error) {
	stats, err := e.ecosystem.UserTaskStats(ctx)
	if err != nil {
		return nil, err
	}
	return &TaskSummary{
		State:      e.ecosystem.State(),
		Stats:      stats,
		Categories: e.ecosystem.ActiveCategories(),
	}, nil
}

func (e *engine) CreateTask(ctx context.Context, input *tasks.CreateTaskInput) (*txtypes.Operation, error) {
	return e.tasks.CreateTask(ctx, input)
}

func (e *engine) ApplyForTask(ctx context.Context, id string, input *TaskApplication) (*txtypes.Operation, error) {
	return e.tasks.ApplyForTask(ctx, id, input.Message)
}

func (e *engine) CompleteTask(ctx context.Context, id string) (*txtypes.Operation, error) {
	return e.tasks.CompleteTask(ctx, id)
}

func (e *engine) TransferTokens(ctx context.Context, input *TokenTransfer) (*txtypes.Operation, error) {
	return e.token.TransferTokens(ctx, input.Recipient, input.Amount, input.Memo)
}

func (e *engine) ClaimTokens(ctx context.Context) (*txtypes.Operation, error) {
	return e.token.ClaimCommunityTokens(ctx)
}

func (e *engine) GetTokenBalance(ctx context.Context, fresh bool) (*token.Balance, error) {
	if fresh {
		if err := e.token.RefreshBalance(stacks.WithFreshRead(ctx)); err != nil {
			return nil, err
		}
	}
	return e.token.Balance(), nil
}

func (e *engine) GetTokenHolder(ctx context.Context) (*token.HolderStats, error) {
	return e.token.HolderStats(ctx)
}

func (e *engine) GetTokenDistribution(ctx context.Context) (*token.DistributionInfo, error) {
	return e.token.DistributionInfo(ctx)
}
