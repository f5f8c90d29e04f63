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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/karlseguin/ccache"
	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/restclient"
	"github.com/kaleido-io/dapptx/pkg/stacks"
)

// Client talks to the Hiro chain API, for transaction status lookups and read-only contract calls.
// Successful read-only results are cached for a short TTL, as the same reads are issued by
// every view that refreshes.
type Client struct {
	client   *resty.Client
	network  *Network
	sender   string
	cache    *ccache.Cache
	cacheTTL time.Duration
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type readOnlyRequest struct {
	Sender    string   `json:"sender"`
	Arguments []string `json:"arguments"`
}

type readOnlyResponse struct {
	Okay   bool   `json:"okay"`
	Result string `json:"result,omitempty"`
	Cause  string `json:"cause,omitempty"`
}

type cachedValue struct {
	value clarity.Value
	size  int64
}

func (cv *cachedValue) Size() int64 {
	return cv.size
}

// New creates a chain API client. The REST client URL defaults to the network preset.
func New(ctx context.Context, prefix config.Prefix, network *Network, defaultSender string) *Client {
	if prefix.GetString(restclient.HTTPConfigURL) == "" {
		prefix.Set(restclient.HTTPConfigURL, network.APIURL)
	}
	sender := prefix.GetString(StacksAPIConfigSender)
	if sender == "" {
		sender = defaultSender
	}
	return &Client{
		client:   restclient.New(ctx, prefix),
		network:  network,
		sender:   sender,
		cache:    ccache.New(ccache.Configure().MaxSize(config.GetByteSize(config.CacheReadsSize))),
		cacheTTL: config.GetDuration(config.CacheReadsTTL),
	}
}

// Network returns the network preset the client is bound to
func (c *Client) Network() *Network {
	return c.network
}

func wrapError(ctx context.Context, errRes *apiError, res *resty.Response, err error) error {
	if errRes != nil && errRes.Error != "" {
		return i18n.WrapError(ctx, err, i18n.MsgStacksAPIRESTErr, errRes.Error)
	}
	return restclient.WrapRestErr(ctx, res, err, i18n.MsgStacksAPIRESTErr)
}

// GetTransactionStatus returns the status of a transaction. A transaction the API has not yet
// indexed (404) is reported as pending, as there is a lag between broadcast and the API seeing it.
func (c *Client) GetTransactionStatus(ctx context.Context, txID string) (*stacks.TxInfo, error) {
	var info stacks.TxInfo
	var resErr apiError
	res, err := c.client.R().
		SetContext(ctx).
		SetResult(&info).
		SetError(&resErr).
		Get("/extended/v1/tx/" + txID)
	if err == nil && res.StatusCode() == http.StatusNotFound {
		log.L(ctx).Debugf("Transaction %s not yet known to the API", txID)
		return &stacks.TxInfo{TxID: txID, TxStatus: stacks.RemoteTxStatusPending}, nil
	}
	if err != nil || !res.IsSuccess() {
		return nil, wrapError(ctx, &resErr, res, err)
	}
	if info.TxStatus == "" {
		return nil, i18n.NewError(ctx, i18n.MsgStacksAPIBadResponse, txID)
	}
	if info.TxID == "" {
		info.TxID = txID
	}
	return &info, nil
}

// CallReadOnly invokes a read-only function and decodes the Clarity result
func (c *Client) CallReadOnly(ctx context.Context, contractAddress, contractName, functionName string, args ...clarity.Value) (clarity.Value, error) {
	hexArgs := make([]string, len(args))
	for i, a := range args {
		h, err := clarity.SerializeHex(a)
		if err != nil {
			return nil, err
		}
		hexArgs[i] = h
	}
	path := fmt.Sprintf("/v2/contracts/call-read/%s/%s/%s", contractAddress, contractName, functionName)
	cacheKey := path + "?" + strings.Join(hexArgs, ",")

	if !stacks.IsFreshRead(ctx) {
		if cached := c.cache.Get(cacheKey); cached != nil && !cached.Expired() {
			log.L(ctx).Debugf("Cache hit for %s", cacheKey)
			return cached.Value().(*cachedValue).value, nil
		}
	}

	var resBody readOnlyResponse
	var resErr apiError
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(&readOnlyRequest{
			Sender:    c.sender,
			Arguments: hexArgs,
		}).
		SetResult(&resBody).
		SetError(&resErr).
		Post(path)
	if err != nil || !res.IsSuccess() {
		return nil, wrapError(ctx, &resErr, res, err)
	}
	if !resBody.Okay {
		return nil, i18n.NewError(ctx, i18n.MsgReadOnlyCallFailed, functionName, resBody.Cause)
	}
	v, err := clarity.DeserializeHex(resBody.Result)
	if err != nil {
		return nil, err
	}
	c.cache.Set(cacheKey, &cachedValue{value: v, size: int64(len(cacheKey) + len(resBody.Result))}, c.cacheTTL)
	return v, nil
}

// CallReadOnlyJSON invokes a read-only function and returns the self describing JSON form of the result
func (c *Client) CallReadOnlyJSON(ctx context.Context, contractAddress, contractName, functionName string, args ...clarity.Value) (json.RawMessage, error) {
	v, err := c.CallReadOnly(ctx, contractAddress, contractName, functionName, args...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(clarity.ToJSON(v))
}
