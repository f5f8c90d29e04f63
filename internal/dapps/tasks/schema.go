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
	"encoding/json"
	"strings"

	"github.com/kaleido-io/dapptx/internal/dapps"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/xeipuuv/gojsonschema"
)

// Categories offered for new tasks
var Categories = []string{"development", "design", "writing", "marketing", "research", "testing", "other"}

const createTaskSchema = `{
	"type": "object",
	"required": ["title", "description", "category", "difficulty", "reward"],
	"properties": {
		"title": {
			"type": "string",
			"minLength": 1,
			"maxLength": 100,
			"pattern": "^[ -~]*$"
		},
		"description": {
			"type": "string",
			"minLength": 1,
			"maxLength": 500,
			"pattern": "^[\\t\\n\\r -~]*$"
		},
		"category": {
			"enum": ["development", "design", "writing", "marketing", "research", "testing", "other"]
		},
		"difficulty": {
			"type": "integer",
			"minimum": 1,
			"maximum": 5
		},
		"reward": {
			"type": "number",
			"minimum": 0.1,
			"maximum": 1000000
		}
	}
}`

var createTaskValidator = mustLoadSchema(createTaskSchema)

func mustLoadSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return schema
}

// ValidateCreateTask strips markup from the text fields, then checks the input against the task schema
func ValidateCreateTask(ctx context.Context, input *CreateTaskInput) (*CreateTaskInput, error) {
	if input == nil {
		return nil, i18n.NewError(ctx, i18n.MsgTaskInputInvalid, "missing input")
	}
	clean := *input
	clean.Title = dapps.CleanText(input.Title)
	clean.Description = dapps.CleanText(input.Description)
	clean.Category = strings.ToLower(strings.TrimSpace(input.Category))

	b, _ := json.Marshal(&clean)
	res, err := createTaskValidator.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgTaskInputInvalid, err)
	}
	if !res.Valid() {
		errStrings := make([]string, len(res.Errors()))
		for i, e := range res.Errors() {
			errStrings[i] = e.String()
		}
		return nil, i18n.NewError(ctx, i18n.MsgTaskInputInvalid, strings.Join(errStrings, ","))
	}
	return &clean, nil
}
