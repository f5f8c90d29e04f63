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
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/restclient"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
	"github.com/spf13/cobra"
)

var clientConfig = config.NewPluginConfig("cli").SubPrefix("api")

var (
	txState string
	txLimit int
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Query the transactions tracked by a running server",
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked transactions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, client, err := newAPIClient()
		if err != nil {
			return err
		}
		var records []*txtypes.TransactionRecord
		req := client.R().SetContext(ctx).SetResult(&records)
		if txState != "" {
			req.SetQueryParam("state", txState)
		}
		if txLimit > 0 {
			req.SetQueryParam("limit", strconv.Itoa(txLimit))
		}
		res, err := req.Get("/transactions")
		if err != nil || !res.IsSuccess() {
			return restclient.WrapRestErr(ctx, res, err, i18n.MsgAPIRESTErr)
		}
		printTransactions(cmd, records)
		return nil
	},
}

var txGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single tracked transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, client, err := newAPIClient()
		if err != nil {
			return err
		}
		var record txtypes.TransactionRecord
		res, err := client.R().
			SetContext(ctx).
			SetPathParam("id", args[0]).
			SetResult(&record).
			Get("/transactions/{id}")
		if err != nil || !res.IsSuccess() {
			return restclient.WrapRestErr(ctx, res, err, i18n.MsgAPIRESTErr)
		}
		printTransactions(cmd, []*txtypes.TransactionRecord{&record})
		return nil
	},
}

func newAPIClient() (context.Context, *resty.Client, error) {
	ctx, err := initCommand(false)
	if err != nil {
		return nil, nil, err
	}
	restclient.InitConfigPrefix(clientConfig)
	if clientConfig.GetString(restclient.HTTPConfigURL) == "" {
		clientConfig.Set(restclient.HTTPConfigURL, fmt.Sprintf("http://%s:%d/api/v1", config.GetString(config.HTTPAddress), config.GetUint(config.HTTPPort)))
	}
	return ctx, restclient.New(ctx, clientConfig), nil
}

func printTransactions(cmd *cobra.Command, records []*txtypes.TransactionRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ID", "State", "Function", "Submitted", "Outcome"})
	for _, r := range records {
		outcome := r.Error
		if outcome == "" && r.Result != nil {
			outcome = fmt.Sprintf("%v", r.Result)
		}
		submitted := ""
		if r.Timestamp != nil {
			submitted = r.Timestamp.String()
		}
		t.AppendRow(table.Row{r.ID, r.State, r.FunctionName, submitted, outcome})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: 60},
	})
	t.Render()
}

func init() {
	txListCmd.Flags().StringVar(&txState, "state", "", "only list transactions in this state")
	txListCmd.Flags().IntVar(&txLimit, "limit", 0, "maximum number of transactions to list")
	txCmd.AddCommand(txListCmd)
	txCmd.AddCommand(txGetCmd)
	rootCmd.AddCommand(txCmd)
}
