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
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const devnetDeployer = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"

func mustHex(t *testing.T, v Value) string {
	s, err := SerializeHex(v)
	assert.NoError(t, err)
	return s
}

func TestSerializeVectors(t *testing.T) {
	zeros15 := strings.Repeat("00", 15)
	assert.Equal(t, "0x01"+zeros15+"01", mustHex(t, UIntCV(1)))
	assert.Equal(t, "0x00"+strings.Repeat("ff", 16), mustHex(t, IntCV(-1)))
	assert.Equal(t, "0x03", mustHex(t, BoolCV(true)))
	assert.Equal(t, "0x04", mustHex(t, BoolCV(false)))
	assert.Equal(t, "0x0d000000026869", mustHex(t, StringASCIICV("hi")))
	assert.Equal(t, "0x0e00000002c3a9", mustHex(t, StringUTF8CV("é")))
	assert.Equal(t, "0x0200000002beef", mustHex(t, BufferCV([]byte{0xbe, 0xef})))
	assert.Equal(t, "0x09", mustHex(t, NoneCV()))
	assert.Equal(t, "0x0a01"+zeros15+"05", mustHex(t, SomeCV(UIntCV(5))))
	assert.Equal(t, "0x0703", mustHex(t, OkCV(BoolCV(true))))
	assert.Equal(t, "0x0801"+zeros15+"64", mustHex(t, ErrCV(UIntCV(100))))
	assert.Equal(t, "0x0b00000000", mustHex(t, ListCV()))
	assert.Equal(t, "0x0c00000002"+"0161"+"01"+zeros15+"01"+"016203",
		mustHex(t, TupleCV(map[string]Value{"b": BoolCV(true), "a": UIntCV(1)})))
}

func TestSerializeErrors(t *testing.T) {
	_, err := Serialize(StringASCIICV("é"))
	assert.Regexp(t, "DTX10136", err)

	_, err = Serialize(UInt{Value: big.NewInt(-1)})
	assert.Regexp(t, "DTX10131", err)

	_, err = Serialize(Int{Value: new(big.Int).Lsh(big.NewInt(1), 127)})
	assert.Regexp(t, "DTX10131", err)

	_, err = Serialize(TupleCV(map[string]Value{"bad name": BoolCV(true)}))
	assert.Regexp(t, "DTX10134", err)

	_, err = Serialize(ListCV(StringASCIICV("é")))
	assert.Regexp(t, "DTX10136", err)

	_, err = SerializeHex(ContractPrincipal{Name: "1bad"})
	assert.Regexp(t, "DTX10134", err)
}

func TestRoundTrip(t *testing.T) {
	p, err := StandardPrincipalCV(devnetDeployer)
	assert.NoError(t, err)
	cp, err := ContractPrincipalCV(devnetDeployer, "task-manager")
	assert.NoError(t, err)

	values := []Value{
		IntCV(-12345),
		IntCV(42),
		UIntCV(18446744073709551615),
		BoolCV(true),
		BufferCV([]byte("memo")),
		StringASCIICV("hello"),
		StringUTF8CV("héllo"),
		p,
		cp,
		OkCV(ListCV(UIntCV(1), UIntCV(2))),
		ErrCV(UIntCV(104)),
		NoneCV(),
		SomeCV(StringASCIICV("x")),
		TupleCV(map[string]Value{
			"title":    StringASCIICV("Build a thing"),
			"reward":   UIntCV(1000000),
			"assignee": SomeCV(p),
		}),
	}
	for _, v := range values {
		s, err := SerializeHex(v)
		assert.NoError(t, err)
		decoded, err := DeserializeHex(s)
		assert.NoError(t, err)
		assert.Equal(t, v.String(), decoded.String())
		assert.Equal(t, v.Type(), decoded.Type())
	}
}

func TestDeserializeErrors(t *testing.T) {
	_, err := DeserializeHex("0xzz")
	assert.Regexp(t, "DTX10131", err)

	_, err = DeserializeHex("0x")
	assert.Regexp(t, "DTX10131.*end of data", err)

	_, err = DeserializeHex("0x0303")
	assert.Regexp(t, "DTX10131.*trailing", err)

	_, err = DeserializeHex("0xff")
	assert.Regexp(t, "DTX10132", err)

	_, err = DeserializeHex("0x0dffffffff")
	assert.Regexp(t, "DTX10131.*length", err)

	_, err = DeserializeHex("0x0e00000001ff")
	assert.Regexp(t, "DTX10131.*utf8", err)

	_, err = DeserializeHex("0x0100")
	assert.Regexp(t, "DTX10131", err)

	_, err = DeserializeHex("0x05" + strings.Repeat("00", 10))
	assert.Regexp(t, "DTX10131", err)

	_, err = DeserializeHex("0x06" + strings.Repeat("00", 21))
	assert.Regexp(t, "DTX10131", err)

	_, err = DeserializeHex("0x06" + strings.Repeat("00", 21) + "05")
	assert.Regexp(t, "DTX10131", err)

	_, err = DeserializeHex("0x07")
	assert.Regexp(t, "DTX10131", err)

	_, err = DeserializeHex("0x0b0000000103")
	assert.NoError(t, err)
	_, err = DeserializeHex("0x0b00000002")
	assert.Regexp(t, "DTX10131", err)

	_, err = DeserializeHex("0x0c0000000101")
	assert.Regexp(t, "DTX10131", err)
	_, err = DeserializeHex("0x0c000000010161")
	assert.Regexp(t, "DTX10131", err)

	deep := strings.Repeat("0a", maxDepth+2) + "09"
	_, err = DeserializeHex(deep)
	assert.Regexp(t, "DTX10131.*depth", err)
}

func TestC32Addresses(t *testing.T) {
	version, hash, err := C32CheckDecodeAddress(devnetDeployer)
	assert.NoError(t, err)
	assert.Equal(t, AddressVersionTestnetSingleSig, version)
	assert.Equal(t, devnetDeployer, C32CheckAddress(version, hash))
	assert.True(t, IsValidAddress(devnetDeployer))
	assert.True(t, IsValidAddress(strings.ToLower(devnetDeployer)))

	assert.False(t, IsValidAddress("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGN"))
	assert.False(t, IsValidAddress("XT1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"))
	assert.False(t, IsValidAddress("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZG!"))
	assert.False(t, IsValidAddress("S"))
	assert.False(t, IsValidAddress("S!AAAAA"))
	assert.False(t, IsValidAddress("ST00"))

	var h [20]byte
	for i := range h {
		h[i] = byte(i * 7)
	}
	for _, v := range []byte{AddressVersionMainnetSingleSig, AddressVersionMainnetMultiSig, AddressVersionTestnetSingleSig, AddressVersionTestnetMultiSig} {
		addr := C32CheckAddress(v, h)
		rv, rh, err := C32CheckDecodeAddress(addr)
		assert.NoError(t, err)
		assert.Equal(t, v, rv)
		assert.Equal(t, h, rh)
	}
	assert.Equal(t, "SP", C32CheckAddress(AddressVersionMainnetSingleSig, h)[0:2])
	assert.Equal(t, "ST", C32CheckAddress(AddressVersionTestnetSingleSig, h)[0:2])

	var zeroLead [20]byte
	zeroLead[19] = 1
	addr := C32CheckAddress(AddressVersionTestnetSingleSig, zeroLead)
	_, rh, err := C32CheckDecodeAddress(addr)
	assert.NoError(t, err)
	assert.Equal(t, zeroLead, rh)
}

func TestPrincipalConstructors(t *testing.T) {
	v, err := PrincipalCV(devnetDeployer + ".ageofdevs-token")
	assert.NoError(t, err)
	assert.Equal(t, "'"+devnetDeployer+".ageofdevs-token", v.String())

	v, err = PrincipalCV(devnetDeployer)
	assert.NoError(t, err)
	assert.Equal(t, "'"+devnetDeployer, v.String())

	_, err = PrincipalCV("notanaddress")
	assert.Regexp(t, "DTX10133", err)

	_, err = ContractPrincipalCV(devnetDeployer, "-bad")
	assert.Regexp(t, "DTX10134", err)

	_, err = ContractPrincipalCV("bad", "good-name")
	assert.Regexp(t, "DTX10133", err)
}

func TestReprStrings(t *testing.T) {
	assert.Equal(t, "u7", UIntCV(7).String())
	assert.Equal(t, "-7", IntCV(-7).String())
	assert.Equal(t, "false", BoolCV(false).String())
	assert.Equal(t, "0x6869", BufferCV([]byte("hi")).String())
	assert.Equal(t, `"hi"`, StringASCIICV("hi").String())
	assert.Equal(t, `u"hi"`, StringUTF8CV("hi").String())
	assert.Equal(t, "(ok (some u1))", OkCV(SomeCV(UIntCV(1))).String())
	assert.Equal(t, "(err none)", ErrCV(NoneCV()).String())
	assert.Equal(t, "(list u1 true)", ListCV(UIntCV(1), BoolCV(true)).String())
	assert.Equal(t, "(tuple (a u1) (b true))", TupleCV(map[string]Value{"b": BoolCV(true), "a": UIntCV(1)}).String())
}

func TestAccessors(t *testing.T) {
	v, ok := Unwrap(OkCV(SomeCV(UIntCV(3))))
	assert.True(t, ok)
	n, ok := AsUint64(v)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), n)

	_, ok = Unwrap(OkCV(NoneCV()))
	assert.False(t, ok)
	_, ok = Unwrap(ErrCV(UIntCV(104)))
	assert.False(t, ok)

	n, ok = AsUint64(IntCV(9))
	assert.True(t, ok)
	assert.Equal(t, uint64(9), n)
	_, ok = AsUint64(IntCV(-9))
	assert.False(t, ok)
	_, ok = AsUint64(BoolCV(true))
	assert.False(t, ok)

	s, ok := AsString(StringUTF8CV("x"))
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = AsString(UIntCV(1))
	assert.False(t, ok)

	b, ok := AsBool(BoolCV(true))
	assert.True(t, ok)
	assert.True(t, b)
	_, ok = AsBool(UIntCV(1))
	assert.False(t, ok)
}

func TestToJSON(t *testing.T) {
	p, _ := StandardPrincipalCV(devnetDeployer)
	v := OkCV(TupleCV(map[string]Value{
		"id":       UIntCV(1),
		"title":    StringASCIICV("t"),
		"done":     BoolCV(false),
		"owner":    p,
		"assignee": NoneCV(),
		"tags":     ListCV(StringASCIICV("a")),
		"memo":     BufferCV([]byte{0x01}),
		"delta":    IntCV(-2),
		"note":     StringUTF8CV("n"),
		"maybe":    SomeCV(UIntCV(2)),
	}))
	b, err := json.Marshal(ToJSON(v))
	assert.NoError(t, err)

	var parsed map[string]interface{}
	err = json.Unmarshal(b, &parsed)
	assert.NoError(t, err)
	assert.Equal(t, true, parsed["success"])
	assert.Regexp(t, `^\(response \(tuple \(assignee \(optional none\)\) .* UnknownType\)$`, parsed["type"])
	fields := parsed["value"].(map[string]interface{})["value"].(map[string]interface{})
	assert.Equal(t, "1", fields["id"].(map[string]interface{})["value"])
	assert.Equal(t, "uint", fields["id"].(map[string]interface{})["type"])
	assert.Equal(t, "(string-ascii 1)", fields["title"].(map[string]interface{})["type"])
	assert.Equal(t, devnetDeployer, fields["owner"].(map[string]interface{})["value"])
	assert.Nil(t, fields["assignee"].(map[string]interface{})["value"])
	assert.Equal(t, "(list 1 (string-ascii 1))", fields["tags"].(map[string]interface{})["type"])
	assert.Equal(t, "0x01", fields["memo"].(map[string]interface{})["value"])
	assert.Equal(t, "-2", fields["delta"].(map[string]interface{})["value"])
	assert.Equal(t, "(optional uint)", fields["maybe"].(map[string]interface{})["type"])

	errJSON := ToJSON(ErrCV(UIntCV(1)))
	assert.False(t, *errJSON.Success)
	assert.Equal(t, "(response UnknownType uint)", errJSON.Type)
	assert.Equal(t, "(list 0 UnknownType)", ToJSON(ListCV()).Type)
}
