// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package log_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/christmasqueue/collections/log"
)

var defaultConfig = []log.OutputConfig{
	{
		Writer:    "console",
		Level:     "debug",
		Formatter: "console",
		FormatConfig: log.FormatConfig{
			TimeFmt: "2006.01.02 15:04:05",
		},
	},
}

func TestNewZapLog(t *testing.T) {
	logger := log.NewZapLog(defaultConfig)
	assert.NotNil(t, logger)

	logger.SetLevel("0", log.LevelInfo)
	lvl := logger.GetLevel("0")
	assert.Equal(t, lvl, log.LevelInfo)

	l := logger.With(log.Field{Key: "test", Value: "a"})
	l.SetLevel("output", log.LevelDebug)
	assert.Equal(t, log.LevelDebug, l.GetLevel("output"))
}

func TestNewZapLogUnknownWriter(t *testing.T) {
	require.Panics(t, func() {
		log.NewZapLog([]log.OutputConfig{{Writer: "kafka"}})
	})
}

func TestZapLogWithLevel(t *testing.T) {
	logger := log.NewZapLog(defaultConfig)
	assert.NotNil(t, logger)

	l := logger.With(log.Field{Key: "test", Value: "a"})
	l.SetLevel("0", log.LevelFatal)
	assert.Equal(t, log.LevelFatal, l.GetLevel("0"))

	l = l.With(log.Field{Key: "key1", Value: "val1"})
	l.SetLevel("0", log.LevelError)
	assert.Equal(t, log.LevelError, l.GetLevel("0"))
}

func TestWithFields(t *testing.T) {
	core, ob := observer.New(zap.InfoLevel)
	zl := log.NewZapLogWithCore(core, zap.NewAtomicLevelAt(zap.InfoLevel))

	logger := zl.With(log.Field{Key: "script", Value: "a.txt"})
	logger.Debugf("dropped %d", 1)
	logger.Infof("pushed %q", "a")
	logger.Warn("stack", "full")

	entries := ob.AllUntimed()
	require.Len(t, entries, 2)
	require.Equal(t, `pushed "a"`, entries[0].Message)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "a.txt", entries[0].ContextMap()["script"])
	require.Equal(t, "stack full", entries[1].Message)
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestSetLogger(t *testing.T) {
	old := log.GetDefaultLogger()
	defer log.SetLogger(old)

	core, ob := observer.New(zap.DebugLevel)
	logger := log.NewZapLogWithCore(core, zap.NewAtomicLevelAt(zap.DebugLevel))
	log.SetLogger(log.WithCallerSkip(logger, 1))

	log.Debugf("hello %s", "world")
	log.Error("boom")
	require.Equal(t, 2, ob.Len())
	entries := ob.TakeAll()
	require.Equal(t, "hello world", entries[0].Message)
	require.Contains(t, entries[0].Caller.File, "zaplogger_test.go")
	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	logger := log.NewZapLog([]log.OutputConfig{{
		Writer:    log.OutputFile,
		Level:     "info",
		Formatter: "json",
		WriteConfig: log.WriteConfig{
			LogPath:  dir,
			Filename: "stackctl.%Y%m%d.log",
		},
	}})
	logger.Debug("not written")
	logger.Info("written")
	require.NoError(t, logger.Sync())

	name, err := log.FileName(log.WriteConfig{LogPath: dir, Filename: "stackctl.%Y%m%d.log"}, time.Now())
	require.NoError(t, err)
	buf, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"M":"written"`)
	assert.NotContains(t, string(buf), "not written")
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 12, 24, 18, 30, 0, 0, time.UTC)
	name, err := log.FileName(log.WriteConfig{LogPath: "/var/log", Filename: "stack.%Y-%m-%d.log"}, at)
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/var/log", "stack.2026-12-24.log"), name)

	name, err = log.FileName(log.WriteConfig{Filename: "plain.log"}, at)
	require.NoError(t, err)
	require.Equal(t, "plain.log", name)

	_, err = log.FileName(log.WriteConfig{}, at)
	require.Error(t, err)
}

func TestGetLogEncoderKey(t *testing.T) {
	tests := []struct {
		name   string
		defKey string
		key    string
		want   string
	}{
		{"custom", "T", "Time", "Time"},
		{"default", "T", "", "T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, log.GetLogEncoderKey(tt.defKey, tt.key))
		})
	}
}

func TestNewTimeEncoder(t *testing.T) {
	encoder := log.NewTimeEncoder("")
	assert.NotNil(t, encoder)

	encoder = log.NewTimeEncoder("2006-01-02 15:04:05")
	assert.NotNil(t, encoder)

	tests := []struct {
		name string
		fmt  string
	}{
		{"seconds timestamp", "seconds"},
		{"milliseconds timestamp", "milliseconds"},
		{"nanoseconds timestamp", "nanoseconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := log.NewTimeEncoder(tt.fmt)
			assert.NotNil(t, got)
		})
	}
}

func TestHasFormatter(t *testing.T) {
	assert.True(t, log.HasFormatter("console"))
	assert.True(t, log.HasFormatter("json"))
	assert.False(t, log.HasFormatter("xml"))
}
