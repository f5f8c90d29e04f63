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

package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestGenerateConfigDocs(t *testing.T) {
	// Initialize config of all plugins
	config.Reset()
	engine.NewEngine()
	f, err := os.Create(filepath.Join(".", "config.md"))
	assert.NoError(t, err)
	generatedConfig, err := config.GenerateConfigMarkdown(context.Background())
	assert.NoError(t, err)
	_, err = f.Write(generatedConfig)
	assert.NoError(t, err)
	err = f.Close()
	assert.NoError(t, err)
}
