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

package apispec

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/i18n"
)

// SwaggerGen generates an OpenAPI 3 document for the routes
func SwaggerGen(ctx context.Context, routes []*Route) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.2",
		Servers: openapi3.Servers{
			{URL: fmt.Sprintf("http://%s:%d/api/v1", config.GetString(config.HTTPAddress), config.GetInt(config.HTTPPort))},
		},
		Info: &openapi3.Info{
			Title:       "dapptx",
			Version:     "1.0",
			Description: "Copyright © 2021 Kaleido, Inc.",
		},
	}
	for _, route := range routes {
		addRoute(ctx, doc, route)
	}
	return doc
}

func getPathItem(doc *openapi3.T, path string) *openapi3.PathItem {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if doc.Paths == nil {
		doc.Paths = openapi3.Paths{}
	}
	pi, ok := doc.Paths[path]
	if ok {
		return pi
	}
	pi = &openapi3.PathItem{}
	doc.Paths[path] = pi
	return pi
}

func jsonContent(value interface{}) openapi3.Content {
	schemaRef, _, _ := openapi3gen.NewSchemaRefForValue(value)
	return openapi3.Content{
		"application/json": &openapi3.MediaType{
			Schema: schemaRef,
		},
	}
}

func addInput(input interface{}, op *openapi3.Operation) {
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Content: jsonContent(input),
		},
	}
}

func addOutput(ctx context.Context, route *Route, output interface{}, op *openapi3.Operation) {
	s := i18n.Expand(ctx, i18n.MsgSuccessResponse)
	res := &openapi3.Response{
		Description: &s,
	}
	if output != nil {
		res.Content = jsonContent(output)
	}
	op.Responses[strconv.FormatInt(int64(route.JSONOutputCode), 10)] = &openapi3.ResponseRef{
		Value: res,
	}
}

func addParam(ctx context.Context, op *openapi3.Operation, in, name, paramType string, description i18n.MessageKey) {
	op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			In:          in,
			Name:        name,
			Required:    in == openapi3.ParameterInPath,
			Description: i18n.Expand(ctx, description),
			Schema: &openapi3.SchemaRef{
				Value: &openapi3.Schema{
					Type: paramType,
				},
			},
		},
	})
}

func addRoute(ctx context.Context, doc *openapi3.T, route *Route) {
	pi := getPathItem(doc, route.Path)
	op := &openapi3.Operation{
		Description: i18n.Expand(ctx, route.Description),
		OperationID: route.Name,
		Responses:   openapi3.NewResponses(),
	}
	if route.Method != http.MethodGet && route.Method != http.MethodDelete && route.JSONInputValue != nil {
		if input := route.JSONInputValue(); input != nil {
			addInput(input, op)
		}
	}
	var output interface{}
	if route.JSONOutputValue != nil {
		output = route.JSONOutputValue()
	}
	addOutput(ctx, route, output, op)
	for _, p := range route.PathParams {
		addParam(ctx, op, openapi3.ParameterInPath, p.Name, "string", p.Description)
	}
	for _, q := range route.QueryParams {
		paramType := "string"
		if q.IsBool {
			paramType = "boolean"
		}
		addParam(ctx, op, openapi3.ParameterInQuery, q.Name, paramType, q.Description)
	}
	switch route.Method {
	case http.MethodGet:
		pi.Get = op
	case http.MethodPut:
		pi.Put = op
	case http.MethodPost:
		pi.Post = op
	case http.MethodDelete:
		pi.Delete = op
	case http.MethodPatch:
		pi.Patch = op
	}
}
