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

package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kaleido-io/dapptx/internal/apispec"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/engine"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/metrics"
	"github.com/kaleido-io/dapptx/pkg/txtypes"
)

var dtxcodeExtractor = regexp.MustCompile(`^(DTX\d+):`)

// Server is the external interface for the API Server
type Server interface {
	Serve(ctx context.Context, e engine.Engine) error
}

type apiServer struct {
	apiTimeout     time.Duration
	defaultLimit   int
	metricsEnabled bool
	metricsPath    string
}

type restError struct {
	Error string `json:"error"`
}

func NewAPIServer() Server {
	return &apiServer{
		apiTimeout:     config.GetDuration(config.APIRequestTimeout),
		defaultLimit:   config.GetInt(config.APIDefaultLimit),
		metricsEnabled: config.GetBool(config.MetricsEnabled),
		metricsPath:    config.GetString(config.MetricsPath),
	}
}

// Serve is the main entry point for the API Server
func (as *apiServer) Serve(ctx context.Context, e engine.Engine) error {
	httpErrChan := make(chan error)
	hs, err := newHTTPServer(ctx, "api", as.createMuxRouter(e), httpErrChan)
	if err != nil {
		return err
	}
	go hs.serveHTTP(ctx)
	return <-httpErrChan
}

func (as *apiServer) getParams(req *http.Request, route *apispec.Route) (queryParams, pathParams map[string]string) {
	queryParams = make(map[string]string)
	pathParams = make(map[string]string)
	if len(route.PathParams) > 0 {
		v := mux.Vars(req)
		for _, pp := range route.PathParams {
			pathParams[pp.Name] = v[pp.Name]
		}
	}
	for _, qp := range route.QueryParams {
		val, exists := req.URL.Query()[qp.Name]
		if qp.IsBool {
			if exists && (len(val) == 0 || val[0] == "" || strings.EqualFold(val[0], "true")) {
				val = []string{"true"}
			} else {
				val = []string{"false"}
			}
			exists = true
		}
		if exists && len(val) > 0 {
			queryParams[qp.Name] = val[0]
		}
	}
	return queryParams, pathParams
}

func (as *apiServer) routeHandler(e engine.Engine, route *apispec.Route) http.HandlerFunc {
	return as.apiWrapper(func(res http.ResponseWriter, req *http.Request) (int, error) {

		var jsonInput interface{}
		if route.JSONInputValue != nil {
			jsonInput = route.JSONInputValue()
		}
		contentType := req.Header.Get("Content-Type")
		var err error
		if req.Method != http.MethodGet && req.Method != http.MethodDelete && jsonInput != nil {
			switch {
			case strings.HasPrefix(strings.ToLower(contentType), "application/json"):
				err = json.NewDecoder(req.Body).Decode(&jsonInput)
				if err != nil {
					err = i18n.WrapError(req.Context(), err, i18n.MsgJSONDecodeFailed)
				}
			default:
				return http.StatusUnsupportedMediaType, i18n.NewError(req.Context(), i18n.MsgInvalidContentType)
			}
		}

		var status = http.StatusBadRequest // if fail parsing input
		var output interface{}
		if err == nil {
			queryParams, pathParams := as.getParams(req, route)
			r := &apispec.APIRequest{
				Ctx:           req.Context(),
				E:             e,
				Req:           req,
				PP:            pathParams,
				QP:            queryParams,
				Input:         jsonInput,
				SuccessStatus: route.JSONOutputCode,
			}
			if r.SuccessStatus == 0 {
				r.SuccessStatus = http.StatusOK
			}
			output, err = route.JSONHandler(r)
			status = r.SuccessStatus // Can be updated by the route
		}
		if err == nil {
			status, err = as.handleOutput(req.Context(), res, status, output)
		}
		return status, err
	})
}

func (as *apiServer) handleOutput(ctx context.Context, res http.ResponseWriter, status int, output interface{}) (int, error) {
	vOutput := reflect.ValueOf(output)
	outputKind := vOutput.Kind()
	isPointer := outputKind == reflect.Ptr
	invalid := outputKind == reflect.Invalid
	isNil := output == nil || invalid || (isPointer && vOutput.IsNil())
	if isNil {
		if status != http.StatusNoContent {
			return http.StatusNotFound, i18n.NewError(ctx, i18n.Msg404NoResult)
		}
		res.WriteHeader(http.StatusNoContent)
		return status, nil
	}
	b, err := json.Marshal(output)
	if err != nil {
		err = i18n.WrapError(ctx, err, i18n.MsgResponseMarshalError)
		log.L(ctx).Errorf(err.Error())
		return http.StatusInternalServerError, err
	}
	res.Header().Add("Content-Type", "application/json")
	res.WriteHeader(status)
	_, _ = res.Write(b)
	return status, nil
}

func (as *apiServer) apiWrapper(handler func(res http.ResponseWriter, req *http.Request) (status int, err error)) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {

		ctx, cancel := context.WithTimeout(req.Context(), as.apiTimeout)
		httpReqID := txtypes.ShortID()
		ctx = log.WithLogField(ctx, "httpreq", httpReqID)
		req = req.WithContext(ctx)
		defer cancel()

		// Wrap the request itself in a log wrapper, that gives minimal request/response and timing info
		l := log.L(ctx)
		l.Infof("--> %s %s", req.Method, req.URL.Path)
		startTime := time.Now()
		status, err := handler(res, req)
		durationMS := float64(time.Since(startTime)) / float64(time.Millisecond)
		if err != nil {

			// Routes don't need to set the status code when returning errors, as
			// the DTX12345 code of the error maps to a status hint
			dtxcodeExtract := dtxcodeExtractor.FindStringSubmatch(err.Error())
			if len(dtxcodeExtract) >= 2 {
				if statusHint, ok := i18n.GetStatusHint(dtxcodeExtract[1]); ok {
					status = statusHint
				}
			}

			// If the context is done, we wrap in 408
			if status != http.StatusRequestTimeout {
				select {
				case <-ctx.Done():
					l.Errorf("Request failed and context is closed. Returning %d (overriding %d): %s", http.StatusRequestTimeout, status, err)
					status = http.StatusRequestTimeout
					err = i18n.WrapError(ctx, err, i18n.MsgRequestTimeout, httpReqID, durationMS)
				default:
				}
			}

			// ... or we default to 500
			if status < 300 {
				status = http.StatusInternalServerError
			}
			l.Infof("<-- %s %s [%d] (%.2fms): %s", req.Method, req.URL.Path, status, durationMS, err)
			res.Header().Add("Content-Type", "application/json")
			res.WriteHeader(status)
			_ = json.NewEncoder(res).Encode(&restError{
				Error: err.Error(),
			})
		} else {
			l.Infof("<-- %s %s [%d] (%.2fms)", req.Method, req.URL.Path, status, durationMS)
		}
	}
}

func (as *apiServer) notFoundHandler(res http.ResponseWriter, req *http.Request) (status int, err error) {
	return http.StatusNotFound, i18n.NewError(req.Context(), i18n.Msg404NotFound)
}

func (as *apiServer) swaggerUIHandler(res http.ResponseWriter, req *http.Request) (status int, err error) {
	res.Header().Add("Content-Type", "text/html")
	_, _ = res.Write(apispec.SwaggerUIHTML("/api/swagger.yaml"))
	return http.StatusOK, nil
}

func (as *apiServer) swaggerHandler(res http.ResponseWriter, req *http.Request) (status int, err error) {
	vars := mux.Vars(req)
	doc := apispec.SwaggerGen(req.Context(), routes)
	if vars["ext"] == ".json" {
		res.Header().Add("Content-Type", "application/json")
		b, _ := json.Marshal(&doc)
		_, _ = res.Write(b)
	} else {
		res.Header().Add("Content-Type", "application/x-yaml")
		b, _ := yaml.Marshal(&doc)
		_, _ = res.Write(b)
	}
	return http.StatusOK, nil
}

func (as *apiServer) createMuxRouter(e engine.Engine) *mux.Router {
	r := mux.NewRouter()
	if as.metricsEnabled {
		r.Use(metrics.GetRestServerInstrumentation().Middleware)
		r.Path(as.metricsPath).Handler(promhttp.InstrumentMetricHandler(metrics.Registry(),
			promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	}

	for _, route := range routes {
		if route.JSONHandler != nil {
			r.HandleFunc(fmt.Sprintf("/api/v1/%s", route.Path), as.routeHandler(e, route)).
				Methods(route.Method)
		}
	}
	r.HandleFunc(`/api/swagger{ext:\.yaml|\.json|}`, as.apiWrapper(as.swaggerHandler))
	r.HandleFunc(`/api`, as.apiWrapper(as.swaggerUIHandler))
	r.HandleFunc(`/ws`, e.WebSockets().Handler())

	r.NotFoundHandler = as.apiWrapper(as.notFoundHandler)
	return r
}
