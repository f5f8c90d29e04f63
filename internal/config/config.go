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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/spf13/viper"
)

// The following keys can be access from the root configuration.
// Plugins are resonsible for defining their own keys using the Prefix interface
var (
	Lang                       RootKey = ark("lang")
	LogLevel                   RootKey = ark("log.level")
	LogColor                   RootKey = ark("log.color")
	LogUTC                     RootKey = ark("log.utc")
	HTTPAddress                RootKey = ark("http.address")
	HTTPPort                   RootKey = ark("http.port")
	HTTPReadTimeout            RootKey = ark("http.readTimeout")
	HTTPWriteTimeout           RootKey = ark("http.writeTimeout")
	CorsEnabled                RootKey = ark("cors.enabled")
	CorsAllowedOrigins         RootKey = ark("cors.origins")
	CorsAllowedMethods         RootKey = ark("cors.methods")
	CorsAllowedHeaders         RootKey = ark("cors.headers")
	CorsAllowCredentials       RootKey = ark("cors.credentials")
	CorsMaxAge                 RootKey = ark("cors.maxAge")
	CorsDebug                  RootKey = ark("cors.debug")
	APIRequestTimeout          RootKey = ark("api.requestTimeout")
	APIDefaultLimit            RootKey = ark("api.defaultLimit")
	NetworkMode                RootKey = ark("network.mode")
	NetworkContractAddress     RootKey = ark("network.contractAddress")
	ContractsGreeting          RootKey = ark("contracts.greeting")
	ContractsTasks             RootKey = ark("contracts.tasks")
	ContractsToken             RootKey = ark("contracts.token")
	PollerMaxAttempts          RootKey = ark("poller.maxAttempts")
	PollerInterval             RootKey = ark("poller.interval")
	PollerFactor               RootKey = ark("poller.factor")
	PollerMaxInterval          RootKey = ark("poller.maxInterval")
	RegistryRecentLimit        RootKey = ark("registry.recentLimit")
	CacheReadsSize             RootKey = ark("cache.reads.size")
	CacheReadsTTL              RootKey = ark("cache.reads.ttl")
	EcosystemRefreshInterval   RootKey = ark("ecosystem.refreshInterval")
	MetricsEnabled             RootKey = ark("metrics.enabled")
	MetricsPath                RootKey = ark("metrics.path")
	WebsocketReadBufferSize    RootKey = ark("websocket.readBufferSize")
	WebsocketWriteBufferSize   RootKey = ark("websocket.writeBufferSize")
	WebsocketHeartbeatInterval RootKey = ark("websocket.heartbeatInterval")
)

// Prefix represents the global configuration, at a nested point in
// the config heirarchy. This allows plugins to define their own keys.
//
// Note that all values are GLOBAL so this cannot be used for per-instance
// customization. Rather for global initialization of plugins.
type Prefix interface {
	AddKnownKey(key string, defValue ...interface{})
	SubPrefix(suffix string) Prefix
	Set(key string, value interface{})
	Resolve(key string) string

	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int
	GetUint(key string) uint
	GetFloat64(key string) float64
	GetDuration(key string) time.Duration
	GetByteSize(key string) int64
	GetStringSlice(key string) []string
	GetStringMap(key string) map[string]interface{}
	UnmarshalKey(ctx context.Context, key string, rawVal interface{}) error
	Get(key string) interface{}
}

// RootKey key are the known configuration keys
type RootKey string

// Reset clears all configuration and restores the defaults
func Reset() {
	viper.Reset()

	viper.SetDefault(string(Lang), "en")
	viper.SetDefault(string(LogLevel), "info")
	viper.SetDefault(string(LogColor), true)
	viper.SetDefault(string(LogUTC), false)
	viper.SetDefault(string(HTTPAddress), "127.0.0.1")
	viper.SetDefault(string(HTTPPort), 5050)
	viper.SetDefault(string(HTTPReadTimeout), "15s")
	viper.SetDefault(string(HTTPWriteTimeout), "15s")
	viper.SetDefault(string(CorsEnabled), true)
	viper.SetDefault(string(CorsAllowedOrigins), []string{"*"})
	viper.SetDefault(string(CorsAllowedMethods), []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete})
	viper.SetDefault(string(CorsAllowedHeaders), []string{"*"})
	viper.SetDefault(string(CorsAllowCredentials), true)
	viper.SetDefault(string(CorsMaxAge), 600)
	viper.SetDefault(string(APIRequestTimeout), "120s")
	viper.SetDefault(string(APIDefaultLimit), 10)
	viper.SetDefault(string(NetworkMode), "devnet")
	viper.SetDefault(string(NetworkContractAddress), "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	viper.SetDefault(string(ContractsGreeting), "advanced-hello-world")
	viper.SetDefault(string(ContractsTasks), "task-manager")
	viper.SetDefault(string(ContractsToken), "ageofdevs-token")
	viper.SetDefault(string(PollerMaxAttempts), 30)
	viper.SetDefault(string(PollerInterval), "10s")
	viper.SetDefault(string(PollerFactor), 1.0)
	viper.SetDefault(string(PollerMaxInterval), "60s")
	viper.SetDefault(string(RegistryRecentLimit), 10)
	viper.SetDefault(string(CacheReadsSize), "1Mb")
	viper.SetDefault(string(CacheReadsTTL), "5s")
	viper.SetDefault(string(EcosystemRefreshInterval), "30s")
	viper.SetDefault(string(MetricsEnabled), true)
	viper.SetDefault(string(MetricsPath), "/metrics")
	viper.SetDefault(string(WebsocketReadBufferSize), "16Kb")
	viper.SetDefault(string(WebsocketWriteBufferSize), "16Kb")
	viper.SetDefault(string(WebsocketHeartbeatInterval), "30s")

	i18n.SetLang(GetString(Lang))
}

// ReadConfig initializes the config
func ReadConfig(cfgFile string) error {
	Reset()

	// Set precedence order for reading config location
	viper.SetEnvPrefix("dapptx")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetConfigType("yaml")
	if cfgFile != "" {
		f, err := os.Open(cfgFile)
		if err == nil {
			defer f.Close()
			err = viper.ReadConfig(f)
		}
		return err
	}
	viper.SetConfigName("dapptx")
	viper.AddConfigPath("/etc/dapptx/")
	viper.AddConfigPath("$HOME/.dapptx")
	viper.AddConfigPath(".")
	return viper.ReadInConfig()
}

var root = &configPrefix{
	keys: map[string]bool{}, // All keys go here, including those defined in sub prefixies
}

// ark adds a root key, used to define the keys that are used within the core
func ark(k string) RootKey {
	root.AddKnownKey(k)
	return RootKey(k)
}

// configPrefix is the main config structure passed to plugins, and used for root to wrap viper
type configPrefix struct {
	prefix string
	keys   map[string]bool
}

// NewPluginConfig creates a new plugin configuration object, at the specified prefix
func NewPluginConfig(prefix string) Prefix {
	if !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	return &configPrefix{
		prefix: prefix,
		keys:   root.keys,
	}
}

// GetKnownKeys returns every key registered so far, for documentation and validation
func GetKnownKeys() []string {
	var keys []string
	for k := range root.keys {
		keys = append(keys, k)
	}
	return keys
}

func (c *configPrefix) prefixKey(k string) string {
	key := c.prefix + k
	if !c.keys[key] {
		panic(fmt.Sprintf("Undefined configuration key '%s'", key))
	}
	return key
}

func (c *configPrefix) Resolve(key string) string {
	return c.prefixKey(key)
}

func (c *configPrefix) SubPrefix(suffix string) Prefix {
	return &configPrefix{
		prefix: c.prefix + suffix + ".",
		keys:   root.keys,
	}
}

func (c *configPrefix) AddKnownKey(k string, defValue ...interface{}) {
	key := c.prefix + k
	if len(defValue) == 1 {
		viper.SetDefault(key, defValue[0])
	} else if len(defValue) > 0 {
		viper.SetDefault(key, defValue)
	}
	c.keys[key] = true
}

// GetString gets a configuration string
func GetString(key RootKey) string {
	return root.GetString(string(key))
}
func (c *configPrefix) GetString(key string) string {
	return viper.GetString(c.prefixKey(key))
}

// GetStringSlice gets a configuration string array
func GetStringSlice(key RootKey) []string {
	return root.GetStringSlice(string(key))
}
func (c *configPrefix) GetStringSlice(key string) []string {
	return viper.GetStringSlice(c.prefixKey(key))
}

// GetBool gets a configuration bool
func GetBool(key RootKey) bool {
	return root.GetBool(string(key))
}
func (c *configPrefix) GetBool(key string) bool {
	return viper.GetBool(c.prefixKey(key))
}

// GetUint gets a configuration uint
func GetUint(key RootKey) uint {
	return root.GetUint(string(key))
}
func (c *configPrefix) GetUint(key string) uint {
	return viper.GetUint(c.prefixKey(key))
}

// GetInt gets a configuration int
func GetInt(key RootKey) int {
	return root.GetInt(string(key))
}
func (c *configPrefix) GetInt(key string) int {
	return viper.GetInt(c.prefixKey(key))
}

// GetFloat64 gets a configuration float
func GetFloat64(key RootKey) float64 {
	return root.GetFloat64(string(key))
}
func (c *configPrefix) GetFloat64(key string) float64 {
	return viper.GetFloat64(c.prefixKey(key))
}

// GetDuration gets a configuration duration. Plain numbers are milliseconds.
func GetDuration(key RootKey) time.Duration {
	return root.GetDuration(string(key))
}
func (c *configPrefix) GetDuration(key string) time.Duration {
	return parseDuration(viper.GetString(c.prefixKey(key)))
}

func parseDuration(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, _ := time.ParseDuration(s)
	return d
}

// GetByteSize gets a configuration byte size, such as "1Mb" or "512Kb"
func GetByteSize(key RootKey) int64 {
	return root.GetByteSize(string(key))
}
func (c *configPrefix) GetByteSize(key string) int64 {
	sizeString := viper.GetString(c.prefixKey(key))
	size, _ := units.RAMInBytes(sizeString)
	return size
}

// GetStringMap gets a configuration map
func GetStringMap(key RootKey) map[string]interface{} {
	return root.GetStringMap(string(key))
}
func (c *configPrefix) GetStringMap(key string) map[string]interface{} {
	return viper.GetStringMap(c.prefixKey(key))
}

// Get gets a configuration in raw form
func Get(key RootKey) interface{} {
	return root.Get(string(key))
}
func (c *configPrefix) Get(key string) interface{} {
	return viper.Get(c.prefixKey(key))
}

// Set allows runtime setting of config (used in unit tests)
func Set(key RootKey, value interface{}) {
	root.Set(string(key), value)
}
func (c *configPrefix) Set(key string, value interface{}) {
	viper.Set(c.prefixKey(key), value)
}

// UnmarshalKey gets a configuration section into a struct
func UnmarshalKey(ctx context.Context, key RootKey, rawVal interface{}) error {
	return root.UnmarshalKey(ctx, string(key), rawVal)
}
func (c *configPrefix) UnmarshalKey(ctx context.Context, key string, rawVal interface{}) error {
	// Viper's unmarshal does not work with our json annotated config
	// structures, so we have to go from map to JSON, then to unmarshal
	var intermediate map[string]interface{}
	err := viper.UnmarshalKey(c.prefixKey(key), &intermediate)
	if err == nil {
		b, _ := json.Marshal(intermediate)
		err = json.Unmarshal(b, rawVal)
	}
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgConfigFailed, key)
	}
	return nil
}
