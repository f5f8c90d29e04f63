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
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/restclient"
)

const (
	// StacksAPIConfigSender is the sender address used for read-only calls, defaulting to the contract deployer
	StacksAPIConfigSender = "sender"
)

// InitConfigPrefix registers the chain API keys, on top of the REST client keys
func InitConfigPrefix(prefix config.Prefix) {
	restclient.InitConfigPrefix(prefix)
	prefix.AddKnownKey(StacksAPIConfigSender)
}
