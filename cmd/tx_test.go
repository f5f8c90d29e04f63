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
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) (*httptest.Server, string) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	u, _ := url.Parse(server.URL)
	cfg := writeTestConfig(t, "http:\n  address: "+u.Hostname()+"\n  port: "+u.Port()+"\n")
	return server, cfg
}

func executeTx(t *testing.T, args ...string) (string, error) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	defer func() {
		cfgFile = ""
		txState = ""
		txLimit = 0
		rootCmd.SetOut(nil)
		rootCmd.SetArgs([]string{})
	}()
	rootCmd.SetArgs(append([]string{"tx"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTxList(t *testing.T) {
	_, cfg := newTestAPI(t, func(res http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/api/v1/transactions", req.URL.Path)
		assert.Equal(t, "failed", req.URL.Query().Get("state"))
		assert.Equal(t, "2", req.URL.Query().Get("limit"))
		res.Header().Set("Content-Type", "application/json")
		_, _ = res.Write([]byte(`[
			{"id":"0xaaa","state":"failed","functionName":"set-greeting","args":[],"error":"Transaction failed: abort_by_response"},
			{"id":"0xbbb","state":"failed","functionName":"like-message","args":[],"error":"Transaction timeout - taking longer than expected"}
		]`))
	})
	out, err := executeTx(t, "list", "-f", cfg, "--state", "failed", "--limit", "2")
	assert.NoError(t, err)
	assert.Contains(t, out, "0xaaa")
	assert.Contains(t, out, "like-message")
	assert.Contains(t, out, "abort_by_response")
	assert.Regexp(t, "ID.*STATE.*FUNCTION", out)
}

func TestTxListAPIError(t *testing.T) {
	_, cfg := newTestAPI(t, func(res http.ResponseWriter, req *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		res.WriteHeader(http.StatusBadRequest)
		_, _ = res.Write([]byte(`{"error":"DTX10113: Invalid transaction state 'lost'"}`))
	})
	_, err := executeTx(t, "list", "-f", cfg, "--state", "lost")
	assert.Regexp(t, "DTX10153.*DTX10113", err)
}

func TestTxGet(t *testing.T) {
	_, cfg := newTestAPI(t, func(res http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/api/v1/transactions/0xaaa", req.URL.Path)
		res.Header().Set("Content-Type", "application/json")
		_, _ = res.Write([]byte(`{"id":"0xaaa","state":"confirmed","functionName":"set-greeting","args":["hi"],"result":"(ok true)"}`))
	})
	out, err := executeTx(t, "get", "0xaaa", "-f", cfg)
	assert.NoError(t, err)
	assert.Contains(t, out, "0xaaa")
	assert.Contains(t, out, "(ok true)")
}

func TestTxGetNotFound(t *testing.T) {
	_, cfg := newTestAPI(t, func(res http.ResponseWriter, req *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		res.WriteHeader(http.StatusNotFound)
		_, _ = res.Write([]byte(`{"error":"DTX10114: Transaction '0xccc' not found"}`))
	})
	_, err := executeTx(t, "get", "0xccc", "-f", cfg)
	assert.Regexp(t, "DTX10153.*DTX10114", err)
}

func TestTxGetExplicitURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/custom/transactions/0xaaa", req.URL.Path)
		res.Header().Set("Content-Type", "application/json")
		_, _ = res.Write([]byte(`{"id":"0xaaa","state":"pending","functionName":"claim-tokens"}`))
	}))
	defer server.Close()
	cfg := writeTestConfig(t, "cli:\n  api:\n    url: "+server.URL+"/custom\n")
	out, err := executeTx(t, "get", "0xaaa", "-f", cfg)
	assert.NoError(t, err)
	assert.Contains(t, out, "claim-tokens")
}
