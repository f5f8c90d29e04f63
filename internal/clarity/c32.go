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
	"context"
	"crypto/sha256"
	"math/big"
	"strings"

	"github.com/kaleido-io/dapptx/internal/i18n"
)

const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Address versions
const (
	AddressVersionMainnetSingleSig byte = 22
	AddressVersionMainnetMultiSig  byte = 20
	AddressVersionTestnetSingleSig byte = 26
	AddressVersionTestnetMultiSig  byte = 21
)

var c32Normalizer = strings.NewReplacer("O", "0", "L", "1", "I", "1")

func c32Encode(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		if b != 0 {
			break
		}
		sb.WriteByte(c32Alphabet[0])
	}
	n := new(big.Int).SetBytes(data)
	var digits []byte
	mod := new(big.Int)
	base := big.NewInt(32)
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, c32Alphabet[mod.Int64()])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

func c32Decode(s string) ([]byte, bool) {
	s = c32Normalizer.Replace(strings.ToUpper(s))
	leadingZeros := 0
	for leadingZeros < len(s) && s[leadingZeros] == c32Alphabet[0] {
		leadingZeros++
	}
	n := new(big.Int)
	base := big.NewInt(32)
	for _, c := range s[leadingZeros:] {
		idx := strings.IndexRune(c32Alphabet, c)
		if idx < 0 {
			return nil, false
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}
	return append(make([]byte, leadingZeros), n.Bytes()...), true
}

func c32Checksum(version byte, data []byte) []byte {
	first := sha256.Sum256(append([]byte{version}, data...))
	second := sha256.Sum256(first[:])
	return second[0:4]
}

// C32CheckAddress encodes a version and hash160 as a Stacks address
func C32CheckAddress(version byte, hash160 [20]byte) string {
	payload := append(hash160[:], c32Checksum(version, hash160[:])...)
	return "S" + string(c32Alphabet[version&0x1f]) + c32Encode(payload)
}

// C32CheckDecodeAddress validates a Stacks address, and returns its version and hash160
func C32CheckDecodeAddress(address string) (version byte, hash160 [20]byte, err error) {
	invalid := func() (byte, [20]byte, error) {
		return 0, [20]byte{}, i18n.NewError(context.Background(), i18n.MsgClarityInvalidAddress, address)
	}
	normalized := c32Normalizer.Replace(strings.ToUpper(address))
	if len(normalized) < 5 || normalized[0] != 'S' {
		return invalid()
	}
	normalized = normalized[1:]
	vIdx := strings.IndexByte(c32Alphabet, normalized[0])
	if vIdx < 0 {
		return invalid()
	}
	data, ok := c32Decode(normalized[1:])
	if !ok || len(data) < 4 {
		return invalid()
	}
	payload, checksum := data[0:len(data)-4], data[len(data)-4:]
	if len(payload) > 20 {
		return invalid()
	}
	expected := c32Checksum(byte(vIdx), payload)
	for i := range checksum {
		if checksum[i] != expected[i] {
			return invalid()
		}
	}
	copy(hash160[20-len(payload):], payload)
	return byte(vIdx), hash160, nil
}

// IsValidAddress checks the c32check encoding and checksum of a Stacks address
func IsValidAddress(address string) bool {
	_, _, err := C32CheckDecodeAddress(address)
	return err == nil
}
