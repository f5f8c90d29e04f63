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
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Type is the consensus serialization prefix of a Clarity value
type Type byte

const (
	TypeInt               Type = 0x00
	TypeUInt              Type = 0x01
	TypeBuffer            Type = 0x02
	TypeBoolTrue          Type = 0x03
	TypeBoolFalse         Type = 0x04
	TypeStandardPrincipal Type = 0x05
	TypeContractPrincipal Type = 0x06
	TypeResponseOk        Type = 0x07
	TypeResponseErr       Type = 0x08
	TypeOptionalNone      Type = 0x09
	TypeOptionalSome      Type = 0x0a
	TypeList              Type = 0x0b
	TypeTuple             Type = 0x0c
	TypeStringASCII       Type = 0x0d
	TypeStringUTF8        Type = 0x0e
)

// Value is any Clarity value that can be passed to, or returned from, a contract function
type Value interface {
	Type() Type
	// String returns the Clarity literal representation, as shown by the chain API as "repr"
	String() string
}

type Int struct{ Value *big.Int }
type UInt struct{ Value *big.Int }
type Bool bool
type Buffer []byte
type StringASCII string
type StringUTF8 string

type StandardPrincipal struct {
	Version byte
	Hash160 [20]byte
}

type ContractPrincipal struct {
	StandardPrincipal
	Name string
}

type ResponseOk struct{ Value Value }
type ResponseErr struct{ Value Value }
type None struct{}
type Some struct{ Value Value }
type List []Value
type Tuple map[string]Value

func (Int) Type() Type               { return TypeInt }
func (UInt) Type() Type              { return TypeUInt }
func (Buffer) Type() Type            { return TypeBuffer }
func (StandardPrincipal) Type() Type { return TypeStandardPrincipal }
func (ContractPrincipal) Type() Type { return TypeContractPrincipal }
func (ResponseOk) Type() Type        { return TypeResponseOk }
func (ResponseErr) Type() Type       { return TypeResponseErr }
func (None) Type() Type              { return TypeOptionalNone }
func (Some) Type() Type              { return TypeOptionalSome }
func (List) Type() Type              { return TypeList }
func (Tuple) Type() Type             { return TypeTuple }
func (StringASCII) Type() Type       { return TypeStringASCII }
func (StringUTF8) Type() Type        { return TypeStringUTF8 }

func (b Bool) Type() Type {
	if b {
		return TypeBoolTrue
	}
	return TypeBoolFalse
}

func (v Int) String() string  { return v.Value.String() }
func (v UInt) String() string { return "u" + v.Value.String() }
func (v Bool) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (v Buffer) String() string      { return "0x" + hex.EncodeToString(v) }
func (v StringASCII) String() string { return fmt.Sprintf("%q", string(v)) }
func (v StringUTF8) String() string  { return "u" + fmt.Sprintf("%q", string(v)) }
func (v StandardPrincipal) String() string {
	return "'" + v.Address()
}
func (v ContractPrincipal) String() string {
	return "'" + v.Address() + "." + v.Name
}
func (v ResponseOk) String() string  { return "(ok " + v.Value.String() + ")" }
func (v ResponseErr) String() string { return "(err " + v.Value.String() + ")" }
func (None) String() string          { return "none" }
func (v Some) String() string        { return "(some " + v.Value.String() + ")" }
func (v List) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.String()
	}
	return "(list " + strings.Join(parts, " ") + ")"
}
func (v Tuple) String() string {
	keys := v.SortedKeys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = "(" + k + " " + v[k].String() + ")"
	}
	return "(tuple " + strings.Join(parts, " ") + ")"
}

// Address returns the c32check encoded address of the principal
func (v StandardPrincipal) Address() string {
	return C32CheckAddress(v.Version, v.Hash160)
}

// SortedKeys returns the tuple field names in serialization order
func (v Tuple) SortedKeys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func UIntCV(v uint64) Value {
	return UInt{Value: new(big.Int).SetUint64(v)}
}

func IntCV(v int64) Value {
	return Int{Value: big.NewInt(v)}
}

func BoolCV(v bool) Value {
	return Bool(v)
}

func BufferCV(b []byte) Value {
	return Buffer(b)
}

func StringASCIICV(s string) Value {
	return StringASCII(s)
}

func StringUTF8CV(s string) Value {
	return StringUTF8(s)
}

func NoneCV() Value {
	return None{}
}

func SomeCV(v Value) Value {
	return Some{Value: v}
}

func OkCV(v Value) Value {
	return ResponseOk{Value: v}
}

func ErrCV(v Value) Value {
	return ResponseErr{Value: v}
}

func ListCV(values ...Value) Value {
	return List(values)
}

func TupleCV(fields map[string]Value) Value {
	return Tuple(fields)
}

// StandardPrincipalCV parses a c32check address such as ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM
func StandardPrincipalCV(address string) (Value, error) {
	version, hash, err := C32CheckDecodeAddress(address)
	if err != nil {
		return nil, err
	}
	return StandardPrincipal{Version: version, Hash160: hash}, nil
}

// ContractPrincipalCV builds a contract principal from a deployer address and contract name
func ContractPrincipalCV(address, name string) (Value, error) {
	if !validContractName(name) {
		return nil, errInvalidName(name)
	}
	version, hash, err := C32CheckDecodeAddress(address)
	if err != nil {
		return nil, err
	}
	return ContractPrincipal{
		StandardPrincipal: StandardPrincipal{Version: version, Hash160: hash},
		Name:              name,
	}, nil
}

// PrincipalCV accepts either a standard address, or a "address.contract-name" contract identifier
func PrincipalCV(principal string) (Value, error) {
	if idx := strings.Index(principal, "."); idx >= 0 {
		return ContractPrincipalCV(principal[0:idx], principal[idx+1:])
	}
	return StandardPrincipalCV(principal)
}

// Unwrap removes any number of (ok ...) and (some ...) wrappers from a value.
// The boolean is false if an (err ...) or none was found.
func Unwrap(v Value) (Value, bool) {
	for {
		switch tv := v.(type) {
		case ResponseOk:
			v = tv.Value
		case Some:
			v = tv.Value
		case ResponseErr, None:
			return v, false
		default:
			return v, true
		}
	}
}

// AsUint64 returns the numeric value of an int or uint that fits in 64 bits
func AsUint64(v Value) (uint64, bool) {
	switch tv := v.(type) {
	case UInt:
		if tv.Value.IsUint64() {
			return tv.Value.Uint64(), true
		}
	case Int:
		if tv.Value.IsUint64() {
			return tv.Value.Uint64(), true
		}
	}
	return 0, false
}

// AsString returns the contents of a string-ascii, string-utf8, or the address of a principal
func AsString(v Value) (string, bool) {
	switch tv := v.(type) {
	case StringASCII:
		return string(tv), true
	case StringUTF8:
		return string(tv), true
	case StandardPrincipal:
		return tv.Address(), true
	case ContractPrincipal:
		return tv.Address() + "." + tv.Name, true
	}
	return "", false
}

// AsBool returns the value of a bool
func AsBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}
