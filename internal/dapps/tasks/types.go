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
	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/dapps"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "open"
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusDisputed  TaskStatus = "disputed"
)

// TempIDPrefix marks tasks that only exist locally, until their creation is confirmed
const TempIDPrefix = "temp-"

type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Creator          string     `json:"creator"`
	Assignee         string     `json:"assignee,omitempty"`
	Category         string     `json:"category"`
	Difficulty       uint64     `json:"difficulty"`
	STXReward        uint64     `json:"stxReward"`
	TokenReward      uint64     `json:"tokenReward"`
	Status           TaskStatus `json:"status"`
	CreatedAt        uint64     `json:"createdAt"`
	AssignedAt       uint64     `json:"assignedAt,omitempty"`
	CompletedAt      uint64     `json:"completedAt,omitempty"`
	RequiresApproval bool       `json:"requiresApproval"`
	Optimistic       bool       `json:"isOptimistic,omitempty"`
}

// CreateTaskInput is the user input for a new task. Reward is in STX.
type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Difficulty  int     `json:"difficulty"`
	Reward      float64 `json:"reward"`
}

type UserProfile struct {
	Address         string   `json:"address"`
	Username        string   `json:"username"`
	Bio             string   `json:"bio,omitempty"`
	ReputationScore uint64   `json:"reputationScore"`
	TasksCreated    uint64   `json:"tasksCreated"`
	TasksCompleted  uint64   `json:"tasksCompleted"`
	TotalEarned     uint64   `json:"totalEarned"`
	Skills          []string `json:"skills,omitempty"`
	JoinedAt        uint64   `json:"joinedAt"`
	LastActive      uint64   `json:"lastActive"`
}

type CommunityStats struct {
	TotalTasks     uint64 `json:"totalTasks"`
	CompletedTasks uint64 `json:"completedTasks"`
	TotalUsers     uint64 `json:"totalUsers"`
	TotalRewards   uint64 `json:"totalRewards"`
}

// AppState is everything loaded from the chain in one pass. It is only ever replaced as a whole.
type AppState struct {
	MyTasks        []*Task            `json:"myTasks"`
	CommunityTasks []*Task            `json:"communityTasks"`
	UserProfiles   []*UserProfile     `json:"userProfiles"`
	Stats          *CommunityStats    `json:"stats,omitempty"`
	LastSync       *txtypes.Timestamp `json:"lastSync,omitempty"`
}

type TaskStats struct {
	Created   int `json:"created"`
	Assigned  int `json:"assigned"`
	Completed int `json:"completed"`
}

func taskFromTuple(id string, t clarity.Tuple) *Task {
	return &Task{
		ID:               id,
		Title:            dapps.TupleString(t, "title"),
		Description:      dapps.TupleString(t, "description"),
		Creator:          dapps.TupleString(t, "creator"),
		Assignee:         dapps.TupleString(t, "assignee"),
		Category:         dapps.TupleString(t, "category"),
		Difficulty:       dapps.TupleUint(t, "difficulty"),
		STXReward:        dapps.TupleUint(t, "stx-reward"),
		TokenReward:      dapps.TupleUint(t, "token-reward"),
		Status:           TaskStatus(dapps.TupleString(t, "status")),
		CreatedAt:        dapps.TupleUint(t, "created-at"),
		AssignedAt:       dapps.TupleUint(t, "assigned-at"),
		CompletedAt:      dapps.TupleUint(t, "completed-at"),
		RequiresApproval: dapps.TupleBool(t, "requires-approval"),
	}
}

func profileFromTuple(address string, t clarity.Tuple) *UserProfile {
	p := &UserProfile{
		Address:         address,
		Username:        dapps.TupleString(t, "username"),
		Bio:             dapps.TupleString(t, "bio"),
		ReputationScore: dapps.TupleUint(t, "reputation-score"),
		TasksCreated:    dapps.TupleUint(t, "tasks-created"),
		TasksCompleted:  dapps.TupleUint(t, "tasks-completed"),
		TotalEarned:     dapps.TupleUint(t, "total-earned"),
		JoinedAt:        dapps.TupleUint(t, "joined-at"),
		LastActive:      dapps.TupleUint(t, "last-active"),
	}
	if skills, ok := t["skills"].(clarity.List); ok {
		for _, s := range skills {
			if str, ok := clarity.AsString(s); ok {
				p.Skills = append(p.Skills, str)
			}
		}
	}
	return p
}

func statsFromTuple(t clarity.Tuple) *CommunityStats {
	return &CommunityStats{
		TotalTasks:     dapps.TupleUint(t, "total-tasks"),
		CompletedTasks: dapps.TupleUint(t, "completed-tasks"),
		TotalUsers:     dapps.TupleUint(t, "total-users"),
		TotalRewards:   dapps.TupleUint(t, "total-rewards"),
	}
}
