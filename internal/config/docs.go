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

package config

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/spf13/viper"
)

// GenerateConfigMarkdown documents every registered key and its default, grouped into one
// table per section. Plugins must have registered their keys before this is called.
func GenerateConfigMarkdown(ctx context.Context) ([]byte, error) {
	keys := GetKnownKeys()
	sort.Strings(keys)

	sections := map[string][]string{}
	var sectionNames []string
	for _, k := range keys {
		section := "root"
		if i := strings.LastIndex(k, "."); i > 0 {
			section = k[0:i]
		}
		if _, ok := sections[section]; !ok {
			sectionNames = append(sectionNames, section)
		}
		sections[section] = append(sections[section], k)
	}
	sort.Strings(sectionNames)

	b := &bytes.Buffer{}
	b.WriteString("# Configuration Reference\n")
	for _, section := range sectionNames {
		fmt.Fprintf(b, "\n## %s\n\n", section)
		b.WriteString("|Key|Default Value|\n")
		b.WriteString("|---|-------------|\n")
		for _, k := range sections[section] {
			fmt.Fprintf(b, "|%s|%s|\n", k[strings.LastIndex(k, ".")+1:], defaultValue(k))
		}
	}
	log.L(ctx).Debugf("Generated reference for %d keys in %d sections", len(keys), len(sectionNames))
	return b.Bytes(), nil
}

func defaultValue(k string) string {
	v := viper.Get(k)
	switch vt := v.(type) {
	case nil:
		return "`<nil>`"
	case string:
		if vt == "" {
			return "`<nil>`"
		}
		return fmt.Sprintf("`%s`", vt)
	default:
		return fmt.Sprintf("`%v`", vt)
	}
}
