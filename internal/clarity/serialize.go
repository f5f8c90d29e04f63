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
	"bytes"
	"context"
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kaleido-io/dapptx/internal/i18n"
)

const maxDepth = 32

var (
	twoTo127 = new(big.Int).Lsh(big.NewInt(1), 127)
	twoTo128 = new(big.Int).Lsh(big.NewInt(1), 128)

	clarityNameRegex  = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9]|[-_!?+<>=/*])*$|^[-+=/*]$|^[<>]=?$`)
	contractNameRegex = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9]|[-_])*$`)
)

func validClarityName(name string) bool {
	return len(name) > 0 && len(name) <= 128 && clarityNameRegex.MatchString(name)
}

func validContractName(name string) bool {
	return len(name) > 0 && len(name) <= 40 && contractNameRegex.MatchString(name)
}

func errInvalidName(name string) error {
	return i18n.NewError(context.Background(), i18n.MsgClarityInvalidName, name)
}

// Serialize encodes a value in the consensus wire format used by contract calls
func Serialize(v Value) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := encode(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeHex encodes a value as 0x prefixed hex, as accepted by the read-only call API
func SerializeHex(v Value) (string, error) {
	b, err := Serialize(v)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(b), nil
}

func writeUint128(buf *bytes.Buffer, n *big.Int) {
	var b [16]byte
	n.FillBytes(b[:])
	buf.Write(b[:])
}

func writeLen(buf *bytes.Buffer, n int) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n))
	buf.Write(b[:])
}

func encode(buf *bytes.Buffer, v Value) error {
	buf.WriteByte(byte(v.Type()))
	switch tv := v.(type) {
	case Int:
		n := new(big.Int).Set(tv.Value)
		if n.Cmp(twoTo127) >= 0 || n.Cmp(new(big.Int).Neg(twoTo127)) < 0 {
			return i18n.NewError(context.Background(), i18n.MsgClarityDecodeFailed, "int out of range")
		}
		if n.Sign() < 0 {
			n.Add(n, twoTo128)
		}
		writeUint128(buf, n)
	case UInt:
		if tv.Value.Sign() < 0 || tv.Value.Cmp(twoTo128) >= 0 {
			return i18n.NewError(context.Background(), i18n.MsgClarityDecodeFailed, "uint out of range")
		}
		writeUint128(buf, tv.Value)
	case Bool, None:
	case Buffer:
		writeLen(buf, len(tv))
		buf.Write(tv)
	case StringASCII:
		for i := 0; i < len(tv); i++ {
			if tv[i] > 0x7f {
				return i18n.NewError(context.Background(), i18n.MsgClarityInvalidASCII)
			}
		}
		writeLen(buf, len(tv))
		buf.WriteString(string(tv))
	case StringUTF8:
		writeLen(buf, len(tv))
		buf.WriteString(string(tv))
	case StandardPrincipal:
		buf.WriteByte(tv.Version)
		buf.Write(tv.Hash160[:])
	case ContractPrincipal:
		if !validContractName(tv.Name) {
			return errInvalidName(tv.Name)
		}
		buf.WriteByte(tv.Version)
		buf.Write(tv.Hash160[:])
		buf.WriteByte(byte(len(tv.Name)))
		buf.WriteString(tv.Name)
	case ResponseOk:
		return encode(buf, tv.Value)
	case ResponseErr:
		return encode(buf, tv.Value)
	case Some:
		return encode(buf, tv.Value)
	case List:
		writeLen(buf, len(tv))
		for _, e := range tv {
			if err := encode(buf, e); err != nil {
				return err
			}
		}
	case Tuple:
		keys := tv.SortedKeys()
		writeLen(buf, len(keys))
		for _, k := range keys {
			if !validClarityName(k) {
				return errInvalidName(k)
			}
			buf.WriteByte(byte(len(k)))
			buf.WriteString(k)
			if err := encode(buf, tv[k]); err != nil {
				return err
			}
		}
	default:
		return i18n.NewError(context.Background(), i18n.MsgClarityUnknownType, byte(v.Type()))
	}
	return nil
}

// DeserializeHex decodes a value from hex, with or without a 0x prefix
func DeserializeHex(s string) (Value, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, i18n.WrapError(context.Background(), err, i18n.MsgClarityDecodeFailed, err)
	}
	return Deserialize(b)
}

// Deserialize decodes exactly one value from the consensus wire format
func Deserialize(b []byte) (Value, error) {
	d := &decoder{data: b}
	v, err := d.value(0)
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, d.fail("trailing bytes")
	}
	return v, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) fail(reason string) error {
	return i18n.NewError(context.Background(), i18n.MsgClarityDecodeFailed, reason)
}

func (d *decoder) read(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.data) {
		return nil, d.fail("unexpected end of data")
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) readLen() (int, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	l := binary.BigEndian.Uint32(b)
	if int(l) > len(d.data)-d.pos {
		// Every element occupies at least one byte, so this bounds both byte and element counts
		return 0, d.fail("length exceeds data")
	}
	return int(l), nil
}

func (d *decoder) principal() (StandardPrincipal, error) {
	b, err := d.read(21)
	if err != nil {
		return StandardPrincipal{}, err
	}
	p := StandardPrincipal{Version: b[0]}
	copy(p.Hash160[:], b[1:])
	return p, nil
}

func (d *decoder) value(depth int) (Value, error) {
	if depth > maxDepth {
		return nil, d.fail("maximum nesting depth exceeded")
	}
	tb, err := d.read(1)
	if err != nil {
		return nil, err
	}
	switch Type(tb[0]) {
	case TypeInt, TypeUInt:
		b, err := d.read(16)
		if err != nil {
			return nil, err
		}
		n := new(big.Int).SetBytes(b)
		if Type(tb[0]) == TypeUInt {
			return UInt{Value: n}, nil
		}
		if n.Cmp(twoTo127) >= 0 {
			n.Sub(n, twoTo128)
		}
		return Int{Value: n}, nil
	case TypeBoolTrue:
		return Bool(true), nil
	case TypeBoolFalse:
		return Bool(false), nil
	case TypeBuffer, TypeStringASCII, TypeStringUTF8:
		l, err := d.readLen()
		if err != nil {
			return nil, err
		}
		b, err := d.read(l)
		if err != nil {
			return nil, err
		}
		switch Type(tb[0]) {
		case TypeBuffer:
			return Buffer(append([]byte{}, b...)), nil
		case TypeStringUTF8:
			if !utf8.Valid(b) {
				return nil, d.fail("invalid utf8")
			}
			return StringUTF8(b), nil
		default:
			return StringASCII(b), nil
		}
	case TypeStandardPrincipal:
		return d.principal()
	case TypeContractPrincipal:
		p, err := d.principal()
		if err != nil {
			return nil, err
		}
		lb, err := d.read(1)
		if err != nil {
			return nil, err
		}
		name, err := d.read(int(lb[0]))
		if err != nil {
			return nil, err
		}
		return ContractPrincipal{StandardPrincipal: p, Name: string(name)}, nil
	case TypeResponseOk, TypeResponseErr, TypeOptionalSome:
		inner, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		switch Type(tb[0]) {
		case TypeResponseOk:
			return ResponseOk{Value: inner}, nil
		case TypeResponseErr:
			return ResponseErr{Value: inner}, nil
		default:
			return Some{Value: inner}, nil
		}
	case TypeOptionalNone:
		return None{}, nil
	case TypeList:
		l, err := d.readLen()
		if err != nil {
			return nil, err
		}
		list := make(List, 0, l)
		for i := 0; i < l; i++ {
			e, err := d.value(depth + 1)
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
		return list, nil
	case TypeTuple:
		l, err := d.readLen()
		if err != nil {
			return nil, err
		}
		tuple := make(Tuple, l)
		for i := 0; i < l; i++ {
			lb, err := d.read(1)
			if err != nil {
				return nil, err
			}
			name, err := d.read(int(lb[0]))
			if err != nil {
				return nil, err
			}
			fv, err := d.value(depth + 1)
			if err != nil {
				return nil, err
			}
			tuple[string(name)] = fv
		}
		return tuple, nil
	default:
		return nil, i18n.NewError(context.Background(), i18n.MsgClarityUnknownType, tb[0])
	}
}
