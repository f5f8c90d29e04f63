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

package i18n

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MessageKey is the english translation text
type MessageKey string

// Expand for use in docs and logging - returns a translated message, translated the language of the context
func Expand(ctx context.Context, key MessageKey, inserts ...interface{}) string {
	return pFor(ctx).Sprintf(string(key), inserts...)
}

// ExpandWithCode for use in error scenarios - returns a translated message with a "DTX012345:" prefix, translated the language of the context
func ExpandWithCode(ctx context.Context, key MessageKey, inserts ...interface{}) string {
	return string(key) + ": " + pFor(ctx).Sprintf(string(key), inserts...)
}

// WithLang sets the language on the context
func WithLang(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, ctxLangKey{}, lang)
}

// SetLang sets the default language used when the context does not carry one
func SetLang(lang string) {
	tag, _, _ := langMatcher.Match(language.Make(lang))
	defaultLangPrinter = message.NewPrinter(tag)
}

type (
	ctxLangKey struct{}
)

var serverLangs = []language.Tag{
	language.AmericanEnglish, // Only English currently supported
}

var langMatcher = language.NewMatcher(serverLangs)

var registered = map[MessageKey]bool{}

var statusHints = map[string]int{}

// ffm registers an english translation, and returns the key to use with Expand / NewError
func ffm(key, enTranslation string) MessageKey {
	return ffe(key, enTranslation, 0)
}

// ffe registers an error translation with an HTTP status hint for the API server
func ffe(key, enTranslation string, statusHint int) MessageKey {
	msgKey := MessageKey(key)
	if registered[msgKey] {
		panic(fmt.Sprintf("duplicate message key %s", key))
	}
	registered[msgKey] = true
	_ = message.SetString(language.English, key, enTranslation)
	if statusHint > 0 {
		statusHints[key] = statusHint
	}
	return msgKey
}

// GetStatusHint returns the HTTP status hint registered for a message code, if any
func GetStatusHint(code string) (int, bool) {
	hint, ok := statusHints[code]
	return hint, ok
}

var defaultLangPrinter = message.NewPrinter(language.AmericanEnglish)

func pFor(ctx context.Context) *message.Printer {
	lang := ctx.Value(ctxLangKey{})
	if lang == nil {
		return defaultLangPrinter
	}
	return message.NewPrinter(lang.(language.Tag))
}
