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

package dapps

import (
	"context"
	"html"
	"strings"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/reconcile"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

// Submitter is the part of the reconcile manager the features submit through
type Submitter interface {
	Submit(ctx context.Context, sub *reconcile.Submission) (*txtypes.Operation, error)
}

// Contract identifies a deployed contract
type Contract struct {
	Address string
	Name    string
}

func (c Contract) Call(functionName string, args ...clarity.Value) *stacks.ContractCall {
	if args == nil {
		args = []clarity.Value{}
	}
	return &stacks.ContractCall{
		ContractAddress: c.Address,
		ContractName:    c.Name,
		FunctionName:    functionName,
		FunctionArgs:    args,
	}
}

// Read calls a read-only function, and strips any (ok ...) or (some ...) wrapper from the result.
// The boolean is false when the function returned an (err ...) or none.
func (c Contract) Read(ctx context.Context, reader stacks.ReadOnlyCaller, functionName string, args ...clarity.Value) (clarity.Value, bool, error) {
	v, err := reader.CallReadOnly(ctx, c.Address, c.Name, functionName, args...)
	if err != nil {
		return nil, false, err
	}
	inner, ok := clarity.Unwrap(v)
	if !ok {
		log.L(ctx).Debugf("%s.%s::%s returned %s", c.Address, c.Name, functionName, v)
	}
	return inner, ok, nil
}

// TupleUint reads a uint field from a tuple, unwrapping optionals, with zero for missing fields
func TupleUint(t clarity.Tuple, key string) uint64 {
	v, _ := clarity.Unwrap(t[key])
	n, _ := clarity.AsUint64(v)
	return n
}

// TupleString reads a string or principal field from a tuple, unwrapping optionals
func TupleString(t clarity.Tuple, key string) string {
	v, ok := t[key]
	if !ok {
		return ""
	}
	v, _ = clarity.Unwrap(v)
	s, _ := clarity.AsString(v)
	return s
}

func TupleBool(t clarity.Tuple, key string) bool {
	b, _ := clarity.AsBool(t[key])
	return b
}

// CleanText strips markup and surrounding whitespace from user input, leaving plain text
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(i18n.Sanitize(s)))
}
