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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christmasqueue/collections/errs"
	"github.com/christmasqueue/collections/log"
)

func TestLoadConfigYAML(t *testing.T) {
	cfg, err := LoadConfig("testdata/stackctl.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Capacity())
	assert.True(t, cfg.Runner.Strict)
	assert.Equal(t, 2, cfg.Runner.Parallel)
	assert.Equal(t, OutputJSON, cfg.Runner.Output)
	require.Len(t, cfg.Log, 1)
	assert.Equal(t, "debug", cfg.Log[0].Level)
	assert.Equal(t, "stderr", cfg.Log[0].WriteConfig.Stream)
}

func TestLoadConfigYAMLEnv(t *testing.T) {
	t.Setenv("STACK_CAPACITY", "7")
	cfg, err := LoadConfig("testdata/stackctl.yaml")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Capacity())
}

func TestLoadConfigTOML(t *testing.T) {
	cfg, err := LoadConfig("testdata/stackctl.toml")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Capacity(), "zero capacity is kept")
	assert.False(t, cfg.Runner.Strict)
	assert.Equal(t, OutputText, cfg.Runner.Output)
	require.Len(t, cfg.Log, 1)
	assert.Equal(t, "warn", cfg.Log[0].Level)
	assert.Equal(t, "console", cfg.Log[0].Formatter)
}

func TestLoadConfigJSON(t *testing.T) {
	t.Setenv("LOG_DIR", "/var/log/stackctl")
	cfg, err := LoadConfig("testdata/stackctl.json")
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Capacity(), "negative capacity is kept")
	assert.Equal(t, 4, cfg.Runner.Parallel)
	require.Len(t, cfg.Log, 1)
	assert.Equal(t, log.OutputFile, cfg.Log[0].Writer)
	assert.Equal(t, "/var/log/stackctl", cfg.Log[0].WriteConfig.LogPath)
	assert.Equal(t, "stackctl.%Y%m%d.log", cfg.Log[0].WriteConfig.Filename)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("testdata/empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultCapacity, cfg.Capacity())
	assert.Equal(t, OutputText, cfg.Runner.Output)
	assert.Equal(t, 0, cfg.Runner.Parallel)
	require.Len(t, cfg.Log, 1)
	assert.Equal(t, log.OutputConsole, cfg.Log[0].Writer)
	assert.Equal(t, "info", cfg.Log[0].Level)

	assert.Equal(t, cfg, Default())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("testdata/not_exist.yaml")
	require.Error(t, err)
	assert.Equal(t, errs.RetIOFail, errs.Code(err))

	_, err = LoadConfig("testdata/stackctl.ini")
	require.Error(t, err)
	assert.Equal(t, errs.RetConfigInvalid, errs.Code(err))

	_, err = LoadConfig("testdata/invalid.yaml")
	require.Error(t, err)
	assert.Equal(t, errs.RetConfigInvalid, errs.Code(err))
	for _, want := range []string{
		"runner.parallel must not be negative",
		`runner.output must be text or json, got "xml"`,
		`log[0].level "loud" unknown`,
		`log[0].writer "kafka" unknown`,
		"log[1].writer_config.filename is required",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestGlobalConfig(t *testing.T) {
	old := GlobalConfig()
	defer SetGlobalConfig(old)

	require.NotNil(t, old)
	require.NoError(t, LoadGlobalConfig("testdata/stackctl.yaml"))
	assert.Equal(t, 3, GlobalConfig().Capacity())
	require.Error(t, LoadGlobalConfig("testdata/invalid.yaml"))
	assert.Equal(t, 3, GlobalConfig().Capacity())
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, DefaultConfigPath, Path())
	t.Setenv(EnvConfigPath, "/etc/stackctl.toml")
	assert.Equal(t, "/etc/stackctl.toml", Path())
}

func TestSet(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.SetAll([]string{
		"stack.capacity=5",
		"runner.strict = true",
		"runner.parallel=3",
		"runner.output=JSON",
		"runner.metrics=1",
		"log.level=debug",
	}))
	assert.Equal(t, 5, cfg.Capacity())
	assert.True(t, cfg.Runner.Strict)
	assert.Equal(t, 3, cfg.Runner.Parallel)
	assert.Equal(t, OutputJSON, cfg.Runner.Output)
	assert.True(t, cfg.Runner.Metrics)
	assert.Equal(t, "debug", cfg.Log[0].Level)
	require.NoError(t, Validate(cfg))

	require.NoError(t, cfg.Set("stack.capacity", -2))
	assert.Equal(t, -2, cfg.Capacity())

	tests := []struct {
		name string
		in   string
	}{
		{"not a number", "stack.capacity=three"},
		{"not a bool", "runner.strict=perhaps"},
		{"unknown key", "stack.depth=1"},
		{"missing value", "runner.parallel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.SetAll([]string{tt.in})
			require.Error(t, err)
			assert.Equal(t, errs.RetConfigInvalid, errs.Code(err))
		})
	}
}

func TestCodecForPath(t *testing.T) {
	assert.Equal(t, "yaml", CodecForPath("a/b.yml").Name())
	assert.Equal(t, "yaml", CodecForPath("a/b.YAML").Name())
	assert.Equal(t, "toml", CodecForPath("b.toml").Name())
	assert.Equal(t, "json", CodecForPath("b.json").Name())
	assert.Nil(t, CodecForPath("b"))
}
