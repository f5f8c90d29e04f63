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

package restclient

import (
	"context"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

type reqTrackerKey struct{}

// reqTracker follows one logical request across its retries
type reqTracker struct {
	id       string
	start    time.Time
	attempts int
}

// RetryCondition decides whether a failed request is sent again
type RetryCondition func(res *resty.Response, err error) bool

// RetryTransient retries transport errors, rate limiting and server errors. Any other 4xx is final.
// A Stacks API node answers 404 for a transaction it has not indexed yet, and waiting that out is the
// poller's job rather than the HTTP client's.
func RetryTransient(res *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if res == nil {
		return false
	}
	return res.StatusCode() == http.StatusTooManyRequests || res.StatusCode() >= http.StatusInternalServerError
}

// RetryGatewayErrors only retries when a proxy could not reach the service, so the request was never acted on.
// Used where a repeat might prompt the user twice, or broadcast twice.
func RetryGatewayErrors(res *resty.Response, err error) bool {
	if err != nil || res == nil {
		return false
	}
	switch res.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// Option customizes a client beyond its static configuration
type Option func(*options)

type options struct {
	retryCondition RetryCondition
}

// WithRetryCondition replaces RetryTransient as the test for whether to retry
func WithRetryCondition(cond RetryCondition) Option {
	return func(o *options) {
		o.retryCondition = cond
	}
}

// OnAfterResponse logs the completion of a request. Callers using SetDoNotParseResponse(true)
// must invoke it themselves, as resty skips the middleware on that path.
func OnAfterResponse(c *resty.Client, resp *resty.Response) {
	if c == nil || resp == nil {
		return
	}
	rctx := resp.Request.Context()
	rt, ok := rctx.Value(reqTrackerKey{}).(*reqTracker)
	if !ok {
		return
	}
	elapsed := float64(time.Since(rt.start)) / float64(time.Millisecond)
	log.L(rctx).Debugf("<== %s %s [%d] (%.2fms)", resp.Request.Method, resp.Request.URL, resp.StatusCode(), elapsed)
}

// retryAfter honours the Retry-After seconds sent with a 429 by a rate limited API node.
// Zero leaves the wait to the configured backoff, which also caps the result.
func retryAfter(c *resty.Client, res *resty.Response) (time.Duration, error) {
	if res == nil || res.RawResponse == nil || res.StatusCode() != http.StatusTooManyRequests {
		return 0, nil
	}
	if secs, err := strconv.Atoi(res.Header().Get("Retry-After")); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, nil
}

// New creates a resty client from the configuration under the given prefix. The result can be
// customized further with the usual resty builder calls.
func New(ctx context.Context, staticConfig config.Prefix, opts ...Option) *resty.Client {
	o := &options{retryCondition: RetryTransient}
	for _, opt := range opts {
		opt(o)
	}

	client := resty.New()
	if httpClient, ok := staticConfig.Get(HTTPCustomClient).(*http.Client); ok {
		client = resty.NewWithClient(httpClient)
	}

	url := strings.TrimSuffix(staticConfig.GetString(HTTPConfigURL), "/")
	if url != "" {
		client.SetHostURL(url)
		log.L(ctx).Debugf("Created REST client to %s", url)
	}
	if timeout := staticConfig.GetDuration(HTTPConfigRequestTimeout); timeout > 0 {
		client.SetTimeout(timeout)
	}

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		rctx := req.Context()
		if rctx.Value(reqTrackerKey{}) == nil {
			rt := &reqTracker{id: txtypes.ShortID(), start: time.Now()}
			rctx = log.WithLogField(context.WithValue(rctx, reqTrackerKey{}, rt), "breq", rt.id)
			req.SetContext(rctx)
		}
		log.L(rctx).Debugf("==> %s %s%s", req.Method, url, req.URL)
		return nil
	})
	client.OnAfterResponse(func(c *resty.Client, r *resty.Response) error { OnAfterResponse(c, r); return nil })

	for k, v := range staticConfig.GetStringMap(HTTPConfigHeaders) {
		if vs, ok := v.(string); ok {
			client.SetHeader(k, vs)
		}
	}
	if username, password := staticConfig.GetString(HTTPConfigAuthUsername), staticConfig.GetString(HTTPConfigAuthPassword); username != "" && password != "" {
		client.SetBasicAuth(username, password)
	}

	if staticConfig.GetBool(HTTPConfigRetryEnabled) {
		enableRetries(client, staticConfig, o.retryCondition)
	}
	return client
}

func enableRetries(client *resty.Client, staticConfig config.Prefix, cond RetryCondition) {
	retryCount := staticConfig.GetInt(HTTPConfigRetryCount)
	minWait := staticConfig.GetDuration(HTTPConfigRetryWaitTime)
	maxWait := staticConfig.GetDuration(HTTPConfigRetryMaxWaitTime)
	client.
		SetRetryCount(retryCount).
		SetRetryWaitTime(minWait).
		SetRetryMaxWaitTime(maxWait).
		SetRetryAfter(retryAfter).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			if (err == nil && res != nil && res.IsSuccess()) || !cond(res, err) {
				return false
			}
			if res != nil && res.Request != nil {
				rctx := res.Request.Context()
				if rt, ok := rctx.Value(reqTrackerKey{}).(*reqTracker); ok {
					rt.attempts++
					log.L(rctx).Infof("retry %d/%d (min=%s/max=%s) status=%d", rt.attempts, retryCount, minWait, maxWait, res.StatusCode())
				}
			}
			return true
		})
}

// WrapRestErr builds an error from a failed REST call, including a truncated copy of the response body
func WrapRestErr(ctx context.Context, res *resty.Response, err error, key i18n.MessageKey) error {
	var respData string
	if res != nil {
		if res.RawBody() != nil {
			defer func() { _ = res.RawBody().Close() }()
			if r, err := ioutil.ReadAll(res.RawBody()); err == nil {
				respData = string(r)
			}
		}
		if respData == "" {
			respData = res.String()
		}
		if len(respData) > 256 {
			respData = respData[0:256] + "..."
		}
	}
	if err != nil {
		return i18n.WrapError(ctx, err, key, respData)
	}
	return i18n.NewError(ctx, key, respData)
}
