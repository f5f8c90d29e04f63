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

package apispec

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kaleido-io/dapptx/internal/engine"
	"github.com/kaleido-io/dapptx/internal/i18n"
)

// APIRequest is the context passed to each route handler
type APIRequest struct {
	Ctx           context.Context
	E             engine.Engine
	Req           *http.Request
	QP            map[string]string
	PP            map[string]string
	Input         interface{}
	SuccessStatus int
}

// QueryLimit parses the limit query parameter, returning the default when not set
func (r *APIRequest) QueryLimit(def int) (int, error) {
	s := r.QP["limit"]
	if s == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit < 0 {
		return 0, i18n.NewError(r.Ctx, i18n.MsgInvalidLimit, s)
	}
	return limit, nil
}
