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

package stacksapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/i18n"
)

// Network is a preset for one of the chains the service can target
type Network struct {
	Name           string
	APIURL         string
	ExplorerURL    string
	AddressVersion byte
	chainSuffix    string
}

var networks = map[string]*Network{
	"devnet": {
		Name:           "devnet",
		APIURL:         "http://localhost:3999",
		ExplorerURL:    "http://localhost:8000",
		AddressVersion: clarity.AddressVersionTestnetSingleSig,
	},
	"testnet": {
		Name:           "testnet",
		APIURL:         "https://api.testnet.hiro.so",
		ExplorerURL:    "https://explorer.stacks.co",
		AddressVersion: clarity.AddressVersionTestnetSingleSig,
		chainSuffix:    "?chain=testnet",
	},
	"mainnet": {
		Name:           "mainnet",
		APIURL:         "https://api.mainnet.hiro.so",
		ExplorerURL:    "https://explorer.stacks.co",
		AddressVersion: clarity.AddressVersionMainnetSingleSig,
	},
}

// GetNetwork returns the preset for a network mode (devnet, testnet or mainnet)
func GetNetwork(ctx context.Context, mode string) (*Network, error) {
	n, ok := networks[strings.ToLower(mode)]
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidNetwork, mode)
	}
	return n, nil
}

// TxExplorerURL returns the block explorer link for a transaction
func (n *Network) TxExplorerURL(txID string) string {
	return fmt.Sprintf("%s/txid/%s%s", n.ExplorerURL, txID, n.chainSuffix)
}

// AddressExplorerURL returns the block explorer link for an address or contract
func (n *Network) AddressExplorerURL(address string) string {
	return fmt.Sprintf("%s/address/%s%s", n.ExplorerURL, address, n.chainSuffix)
}
