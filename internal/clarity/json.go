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

package clarity

import (
	"fmt"
	"strings"
)

// JSONValue is the self describing JSON form of a Clarity value, with the type signature alongside the value
type JSONValue struct {
	Type    string      `json:"type"`
	Value   interface{} `json:"value"`
	Success *bool       `json:"success,omitempty"`
}

// TypeSignature returns the Clarity type signature of a value. Types that cannot be
// determined from the value alone (the other side of a response, an empty list) are
// reported as UnknownType.
func TypeSignature(v Value) string {
	switch tv := v.(type) {
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Bool:
		return "bool"
	case Buffer:
		return fmt.Sprintf("(buff %d)", len(tv))
	case StringASCII:
		return fmt.Sprintf("(string-ascii %d)", len(tv))
	case StringUTF8:
		return fmt.Sprintf("(string-utf8 %d)", len(tv))
	case StandardPrincipal, ContractPrincipal:
		return "principal"
	case None:
		return "(optional none)"
	case Some:
		return fmt.Sprintf("(optional %s)", TypeSignature(tv.Value))
	case ResponseOk:
		return fmt.Sprintf("(response %s UnknownType)", TypeSignature(tv.Value))
	case ResponseErr:
		return fmt.Sprintf("(response UnknownType %s)", TypeSignature(tv.Value))
	case List:
		elemType := "UnknownType"
		if len(tv) > 0 {
			elemType = TypeSignature(tv[0])
		}
		return fmt.Sprintf("(list %d %s)", len(tv), elemType)
	case Tuple:
		keys := tv.SortedKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("(%s %s)", k, TypeSignature(tv[k]))
		}
		return fmt.Sprintf("(tuple %s)", strings.Join(parts, " "))
	}
	return "UnknownType"
}

// ToJSON converts a value into its self describing JSON form
func ToJSON(v Value) *JSONValue {
	jv := &JSONValue{Type: TypeSignature(v)}
	switch tv := v.(type) {
	case Int:
		jv.Value = tv.Value.String()
	case UInt:
		jv.Value = tv.Value.String()
	case Bool:
		jv.Value = bool(tv)
	case Buffer:
		jv.Value = tv.String()
	case StringASCII:
		jv.Value = string(tv)
	case StringUTF8:
		jv.Value = string(tv)
	case StandardPrincipal, ContractPrincipal:
		jv.Value, _ = AsString(v)
	case None:
		jv.Value = nil
	case Some:
		jv.Value = ToJSON(tv.Value)
	case ResponseOk:
		success := true
		jv.Value = ToJSON(tv.Value)
		jv.Success = &success
	case ResponseErr:
		success := false
		jv.Value = ToJSON(tv.Value)
		jv.Success = &success
	case List:
		values := make([]*JSONValue, len(tv))
		for i, e := range tv {
			values[i] = ToJSON(e)
		}
		jv.Value = values
	case Tuple:
		fields := make(map[string]*JSONValue, len(tv))
		for k, fv := range tv {
			fields[k] = ToJSON(fv)
		}
		jv.Value = fields
	}
	return jv
}
