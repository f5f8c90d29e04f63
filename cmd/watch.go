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

package cmd

import (
	"fmt"

	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/stacksapi"
	"github.com/kaleido-io/dapptx/internal/txpoller"
	"github.com/kaleido-io/dapptx/pkg/stacks"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
	"github.com/spf13/cobra"
)

var watchStacksConfig = config.NewPluginConfig("stacks").SubPrefix("api")

// Allow unit tests to replace the chain API client
var _utStatusSource stacks.StatusSource

var watchCmd = &cobra.Command{
	Use:   "watch <txid>",
	Short: "Polls a transaction until it is confirmed or failed",
	Long: `Polls the chain API for the status of a broadcast transaction, logging each
observation. Exits non-zero if the transaction fails, times out, or the status
cannot be queried.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := initCommand(false)
		if err != nil {
			return err
		}
		stacksapi.InitConfigPrefix(watchStacksConfig)
		network, err := stacksapi.GetNetwork(ctx, config.GetString(config.NetworkMode))
		if err != nil {
			return err
		}
		source := _utStatusSource
		if source == nil {
			source = stacksapi.New(ctx, watchStacksConfig, network, config.GetString(config.NetworkContractAddress))
		}

		txID := args[0]
		log.L(ctx).Infof("Watching %s", network.TxExplorerURL(txID))
		poller := txpoller.New(source, txpoller.ConfigFromRoot())
		status, err := poller.Poll(ctx, txID, func(update *txtypes.TransactionStatus) {
			log.L(ctx).Infof("%s: %s (remote=%s attempt=%d)", txID, update.Status, update.RemoteStatus, update.Attempt)
		})
		if err != nil {
			return err
		}
		if status.Status != txtypes.PollStatusConfirmed {
			return i18n.NewError(ctx, i18n.MsgWatchedTxFailed, txID, status.Error)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %v\n", txID, status.Status, status.Result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
