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
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/kaleido-io/dapptx/internal/apiserver"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/engine"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sigs = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:   "dapptx",
	Short: "dapptx is a transaction tracking server for Stacks dApps",
	Long: `Submits contract calls through a wallet signer, tracks the resulting
transactions until they confirm or fail, and serves optimistic views of
the greeting, task and token contracts over REST and WebSockets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file")
	rootCmd.AddCommand(showConfigCommand)
}

var showConfigCommand = &cobra.Command{
	Use:     "showconfig",
	Aliases: []string{"showconf"},
	Short:   "List out the configuration options",
	Run: func(cmd *cobra.Command, args []string) {
		config.Reset()
		engine.NewEngine()
		keys := config.GetKnownKeys()
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%-50s %v\n", k, viper.Get(k))
		}
	},
}

// Allow unit tests to inject the engine and API server
var _utEngine engine.Engine
var _utAPIServer apiserver.Server

func getEngine() engine.Engine {
	if _utEngine != nil {
		return _utEngine
	}
	return engine.NewEngine()
}

func getAPIServer() apiserver.Server {
	if _utAPIServer != nil {
		return _utAPIServer
	}
	return apiserver.NewAPIServer()
}

// Execute is called by the main method of the package
func Execute() error {
	return rootCmd.Execute()
}

// initCommand reads the configuration and sets up logging. Commands other than the
// server itself can run without a config file.
func initCommand(requireConfig bool) (context.Context, error) {
	// Read the configuration first of all
	err := config.ReadConfig(cfgFile)
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && !requireConfig {
		err = nil
	}

	// Setup logging after reading config (even if failed), to output header correctly
	ctx := log.WithLogger(context.Background(), logrus.WithField("pid", os.Getpid()))
	log.SetLevel(config.GetString(config.LogLevel))
	log.SetFormatting(log.Formatting{
		DisableColor: !config.GetBool(config.LogColor),
		UTC:          config.GetBool(config.LogUTC),
	})

	// Deferred error return from reading config
	if err != nil {
		return ctx, i18n.WrapError(ctx, err, i18n.MsgConfigFailed, err)
	}
	return ctx, nil
}

func run() error {
	rootCtx, err := initCommand(true)
	if err != nil {
		return err
	}
	log.L(rootCtx).Infof("dapptx")
	log.L(rootCtx).Infof("© Copyright 2021 Kaleido, Inc.")

	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	ctx, cancelCtx := context.WithCancel(rootCtx)
	e := getEngine()
	errChan := make(chan error, 1)
	go startServer(ctx, cancelCtx, e, getAPIServer(), errChan)

	select {
	case sig := <-sigs:
		log.L(rootCtx).Infof("Shutting down due to %s", sig.String())
		cancelCtx()
		e.WaitStop()
		return nil
	case err := <-errChan:
		cancelCtx()
		e.WaitStop()
		return err
	}
}

func startServer(ctx context.Context, cancelCtx context.CancelFunc, e engine.Engine, as apiserver.Server, errChan chan error) {
	if err := e.Init(ctx, cancelCtx); err != nil {
		errChan <- err
		return
	}
	if err := e.Start(); err != nil {
		errChan <- err
		return
	}
	// Serve only returns nil once the context is cancelled
	errChan <- as.Serve(ctx, e)
}
