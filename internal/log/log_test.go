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

package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogContextField(t *testing.T) {
	ctx := WithLogField(context.Background(), "tx", "0x1234")
	assert.Equal(t, "0x1234", L(ctx).Data["tx"])
}

func TestLogContextFieldTruncated(t *testing.T) {
	txid := "0x0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	ctx := WithLogField(context.Background(), "tx", txid)
	assert.Equal(t, txid[0:61]+"...", L(ctx).Data["tx"])
}

func TestNoContextLoggerIsRoot(t *testing.T) {
	assert.Equal(t, rootLogger, L(context.Background()))
}

func TestSetLevels(t *testing.T) {
	for in, expected := range map[string]logrus.Level{
		"eRrOr":     logrus.ErrorLevel,
		"warn":      logrus.WarnLevel,
		"DEBUG":     logrus.DebugLevel,
		"trace":     logrus.TraceLevel,
		"info":      logrus.InfoLevel,
		"something": logrus.InfoLevel,
	} {
		SetLevel(in)
		assert.Equal(t, expected, logrus.GetLevel(), in)
	}
}

func TestSetFormattingUTC(t *testing.T) {
	SetFormatting(Formatting{
		DisableColor: true,
		UTC:          true,
	})
	_, ok := logrus.StandardLogger().Formatter.(*utcFormat)
	assert.True(t, ok)
	L(context.Background()).Infof("time in UTC")

	SetFormatting(Formatting{})
	_, ok = logrus.StandardLogger().Formatter.(*utcFormat)
	assert.False(t, ok)
}
