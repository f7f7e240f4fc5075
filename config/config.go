//
//
// Tencent is pleased to support the open source community by making tRPC available.
//
// Copyright (C) 2023 THL A29 Limited, a Tencent company.
// All rights reserved.
//
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the  Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

// Package config loads the stackctl configuration from yaml, toml or json files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"
	"go.uber.org/atomic"

	"github.com/christmasqueue/collections/errs"
	"github.com/christmasqueue/collections/internal/expandenv"
	"github.com/christmasqueue/collections/log"
)

// DefaultConfigPath is the config file used when neither a flag nor EnvConfigPath names one.
const DefaultConfigPath = "./stackctl.yaml"

// EnvConfigPath is the environment variable which overrides DefaultConfigPath.
const EnvConfigPath = "STACKCTL_CONF"

// DefaultCapacity is the stack capacity used when the config does not set one.
const DefaultCapacity = 10

// Output formats of the run reports.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config is the configuration for stackctl, which can be divided into 3 parts:
// 1. Stack config.
// 2. Runner config.
// 3. Log config.
type Config struct {
	Stack struct {
		// Capacity of every stack a script runs against. Zero and negative values are kept.
		Capacity *int `yaml:"capacity" toml:"capacity" json:"capacity"`
	} `yaml:"stack" toml:"stack" json:"stack"`

	Runner struct {
		Strict   bool   `yaml:"strict" toml:"strict" json:"strict"`       // Stop a script at the first rejected operation.
		Parallel int    `yaml:"parallel" toml:"parallel" json:"parallel"` // Scripts run at once, 0 for GOMAXPROCS.
		Output   string `yaml:"output" toml:"output" json:"output"`       // text or json.
		Metrics  bool   `yaml:"metrics" toml:"metrics" json:"metrics"`    // Print operation counters after the run.
	} `yaml:"runner" toml:"runner" json:"runner"`

	Log log.Config `yaml:"log" toml:"log" json:"log"`
}

// Capacity returns the configured capacity, or DefaultCapacity when unset.
func (c *Config) Capacity() int {
	if c.Stack.Capacity == nil {
		return DefaultCapacity
	}
	return *c.Stack.Capacity
}

var globalConfig atomic.Value

func init() {
	globalConfig.Store(defaultConfig())
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Runner.Output = OutputText
	return cfg
}

// GlobalConfig returns the global Config.
func GlobalConfig() *Config {
	return globalConfig.Load().(*Config)
}

// SetGlobalConfig set the global Config.
func SetGlobalConfig(cfg *Config) {
	globalConfig.Store(cfg)
}

// Path returns the config path to use when none is given explicitly.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

// Default returns a repaired config with every default applied.
func Default() *Config {
	cfg := defaultConfig()
	RepairConfig(cfg)
	return cfg
}

// LoadConfig loads a Config from the config file path.
func LoadConfig(configPath string) (*Config, error) {
	cfg, err := parseConfigFromFile(configPath)
	if err != nil {
		return nil, err
	}
	RepairConfig(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGlobalConfig loads a Config from the config file path and sets it as the global Config.
func LoadGlobalConfig(configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	SetGlobalConfig(cfg)
	return nil
}

func parseConfigFromFile(configPath string) (*Config, error) {
	codec := CodecForPath(configPath)
	if codec == nil {
		return nil, errs.Newf(errs.RetConfigInvalid, "config %s: no codec for this file extension", configPath)
	}
	buf, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errs.Wrapf(err, errs.RetIOFail, "read config %s", configPath)
	}
	// expand environment variables
	buf = expandenv.ExpandEnv(buf)

	cfg := defaultConfig()
	if err := codec.Unmarshal(buf, cfg); err != nil {
		return nil, errs.Wrapf(err, errs.RetConfigInvalid, "decode %s config %s", codec.Name(), configPath)
	}
	return cfg, nil
}

// RepairConfig repairs the Config by filling in some fields with default values.
func RepairConfig(cfg *Config) {
	if cfg.Stack.Capacity == nil {
		capacity := DefaultCapacity
		cfg.Stack.Capacity = &capacity
	}
	setDefault(&cfg.Runner.Output, OutputText)
	cfg.Runner.Output = strings.ToLower(cfg.Runner.Output)
	if len(cfg.Log) == 0 {
		cfg.Log = log.Config{{
			Writer:    log.OutputConsole,
			Level:     "info",
			Formatter: "console",
		}}
	}
	for i := range cfg.Log {
		setDefault(&cfg.Log[i].Writer, log.OutputConsole)
		setDefault(&cfg.Log[i].Formatter, "console")
		cfg.Log[i].Level = strings.ToLower(cfg.Log[i].Level)
	}
}

// Validate reports every problem of a repaired Config at once.
func Validate(cfg *Config) error {
	var result *multierror.Error
	if cfg.Runner.Parallel < 0 {
		result = multierror.Append(result, fmt.Errorf("runner.parallel must not be negative, got %d", cfg.Runner.Parallel))
	}
	switch cfg.Runner.Output {
	case OutputText, OutputJSON:
	default:
		result = multierror.Append(result, fmt.Errorf("runner.output must be %s or %s, got %q",
			OutputText, OutputJSON, cfg.Runner.Output))
	}
	for i, o := range cfg.Log {
		if _, ok := log.Levels[o.Level]; !ok {
			result = multierror.Append(result, fmt.Errorf("log[%d].level %q unknown", i, o.Level))
		}
		if !log.HasFormatter(o.Formatter) {
			result = multierror.Append(result, fmt.Errorf("log[%d].formatter %q unknown", i, o.Formatter))
		}
		switch o.Writer {
		case log.OutputConsole:
			switch o.WriteConfig.Stream {
			case "", "stderr", "stdout":
			default:
				result = multierror.Append(result, fmt.Errorf("log[%d].writer_config.stream %q unknown", i, o.WriteConfig.Stream))
			}
		case log.OutputFile:
			if o.WriteConfig.Filename == "" {
				result = multierror.Append(result, fmt.Errorf("log[%d].writer_config.filename is required by the file writer", i))
			}
		default:
			result = multierror.Append(result, fmt.Errorf("log[%d].writer %q unknown", i, o.Writer))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return errs.Wrap(err, errs.RetConfigInvalid, "invalid config")
	}
	return nil
}

// Set overrides a single setting by its dotted key, converting value with cast.
// Keys: stack.capacity, runner.strict, runner.parallel, runner.output, runner.metrics, log.level.
// log.level applies to every output.
func (c *Config) Set(key string, value interface{}) error {
	switch strings.ToLower(key) {
	case "stack.capacity":
		v, err := cast.ToIntE(value)
		if err != nil {
			return errs.Wrapf(err, errs.RetConfigInvalid, "set %s", key)
		}
		c.Stack.Capacity = &v
	case "runner.strict":
		v, err := cast.ToBoolE(value)
		if err != nil {
			return errs.Wrapf(err, errs.RetConfigInvalid, "set %s", key)
		}
		c.Runner.Strict = v
	case "runner.parallel":
		v, err := cast.ToIntE(value)
		if err != nil {
			return errs.Wrapf(err, errs.RetConfigInvalid, "set %s", key)
		}
		c.Runner.Parallel = v
	case "runner.metrics":
		v, err := cast.ToBoolE(value)
		if err != nil {
			return errs.Wrapf(err, errs.RetConfigInvalid, "set %s", key)
		}
		c.Runner.Metrics = v
	case "runner.output":
		v, err := cast.ToStringE(value)
		if err != nil {
			return errs.Wrapf(err, errs.RetConfigInvalid, "set %s", key)
		}
		c.Runner.Output = strings.ToLower(v)
	case "log.level":
		v, err := cast.ToStringE(value)
		if err != nil {
			return errs.Wrapf(err, errs.RetConfigInvalid, "set %s", key)
		}
		for i := range c.Log {
			c.Log[i].Level = strings.ToLower(v)
		}
	default:
		return errs.Newf(errs.RetConfigInvalid, "set %s: unknown key", key)
	}
	return nil
}

// SetAll applies "key=value" assignments in order.
func (c *Config) SetAll(assignments []string) error {
	for _, a := range assignments {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return errs.Newf(errs.RetConfigInvalid, "set %q: want key=value", a)
		}
		if err := c.Set(strings.TrimSpace(k), strings.TrimSpace(v)); err != nil {
			return err
		}
	}
	return nil
}

// setDefault points dst to def if dst is not nil and points to empty string.
func setDefault(dst *string, def string) {
	if dst != nil && *dst == "" {
		*dst = def
	}
}
