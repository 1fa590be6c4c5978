// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/consensys/go-bidsys/pkg/validate"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// DefaultConfigFile is read when present and no configuration file is given
// explicitly.
const DefaultConfigFile = "bidsys.yaml"

// EnvPrefix prefixes every environment variable which configures validation.
// For example, BIDSYS_CACHE_SIZE sets cache-size and BIDSYS_RULES__SOUNDNESS
// sets rules.soundness.
const EnvPrefix = "BIDSYS_"

// Config holds the validation settings as loaded from defaults, configuration
// file, environment and command-line flags (in increasing order of priority).
type Config struct {
	Workers   uint            `koanf:"workers"`
	Reserve   uint            `koanf:"reserve"`
	Timeout   time.Duration   `koanf:"timeout"`
	CacheSize uint            `koanf:"cache-size"`
	Rules     map[string]bool `koanf:"rules"`
}

// Validation converts this configuration into one suitable for constructing a
// validator.
func (c *Config) Validation() validate.Config {
	return validate.Config{
		Workers:   c.Workers,
		Reserve:   c.Reserve,
		Timeout:   c.Timeout,
		CacheSize: c.CacheSize,
		Rules:     maps.Clone(c.Rules),
	}
}

// flags which map directly onto configuration keys.
var configKeys = map[string]string{
	"workers":    "workers",
	"reserve":    "reserve",
	"timeout":    "timeout",
	"cache-size": "cache-size",
}

// LoadConfig loads the validation configuration.  An empty cfgFile means the
// default configuration file is used if it exists.  The flags, when given, are
// only consulted for those explicitly set by the user.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	var (
		k   = koanf.New(".")
		cfg Config
	)
	// Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	// Configuration file
	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	//
	if cfgFile != "" {
		log.Debugf("reading configuration from %s", cfgFile)
		//
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfgFile, err)
		}
	}
	// Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	// Flags
	if flags != nil {
		err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := configKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			//
			return key, posflag.FlagVal(flags, f)
		}), nil)
		//
		if err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}
	//
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	//
	if flags != nil {
		if err := applyRuleFlags(&cfg, flags); err != nil {
			return nil, err
		}
	}
	//
	return &cfg, nil
}

// addConfigFlags registers the flags understood by LoadConfig.
func addConfigFlags(fs *pflag.FlagSet) {
	defaults := validate.DefaultConfig()
	//
	fs.Uint("workers", 0, "number of paths checked concurrently (0 means one per core)")
	fs.Uint("reserve", defaults.Reserve, "number of cores left free when workers is 0")
	fs.Duration("timeout", defaults.Timeout, "time limit for solving any one path (0 means no limit)")
	fs.Uint("cache-size", defaults.CacheSize, "number of memoised soundness results (0 disables)")
	fs.StringSlice("enable", nil, fmt.Sprintf("enable rules (%s)", strings.Join(validate.RuleNames, ", ")))
	fs.StringSlice("disable", nil, "disable rules")
}

func applyRuleFlags(cfg *Config, flags *pflag.FlagSet) error {
	for _, item := range []struct {
		flag    string
		enabled bool
	}{{"enable", true}, {"disable", false}} {
		if flags.Lookup(item.flag) == nil {
			continue
		}
		//
		names, err := flags.GetStringSlice(item.flag)
		if err != nil {
			return err
		}
		//
		for _, name := range names {
			if name == "" {
				return errors.New("empty rule name")
			}
			//
			cfg.Rules[name] = item.enabled
		}
	}
	//
	return nil
}

func defaults() map[string]interface{} {
	config := validate.DefaultConfig()
	m := map[string]interface{}{
		"workers":    config.Workers,
		"reserve":    config.Reserve,
		"timeout":    config.Timeout,
		"cache-size": config.CacheSize,
	}
	//
	for name, enabled := range config.Rules {
		m["rules."+name] = enabled
	}
	//
	return m
}

// envKey maps e.g. BIDSYS_RULES__RANGE_SANITY onto rules.range-sanity.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	//
	return strings.ReplaceAll(key, "_", "-")
}
