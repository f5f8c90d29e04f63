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

package apiserver

import (
	"net/http"

	"github.com/kaleido-io/dapptx/internal/apispec"
	"github.com/kaleido-io/dapptx/internal/dapps/tasks"
	"github.com/kaleido-io/dapptx/internal/i18n"
)

var getTasks = &apispec.Route{
	Name:       "getTasks",
	Path:       "tasks",
	Method:     http.MethodGet,
	PathParams: nil,
	QueryParams: []*apispec.QueryParam{
		{Name: "status", Description: i18n.MsgQueryParamStat},
		{Name: "category", Description: i18n.MsgQueryParamCat},
		{Name: "fresh", IsBool: true, Description: i18n.MsgQueryParamFresh},
	},
	Description:     i18n.APIGetTasks,
	JSONInputValue:  nil,
	JSONOutputValue: func() interface{} { return []*tasks.Task{} },
	JSONOutputCode:  http.StatusOK,
	JSONHandler: func(r *apispec.APIRequest) (output interface{}, err error) {
		return r.E.GetTasks(r.Ctx, r.QP["status"], r.QP["category"], r.QP["fresh"] == "true")
	},
}
