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

package log

// Output name, default support console and file.
const (
	OutputConsole = "console"
	OutputFile    = "file"
)

// Config is the log config. Each log may have multiple outputs.
type Config []OutputConfig

// OutputConfig is the output config, includes console, file.
type OutputConfig struct {
	// Writer is the output of log, such as console or file.
	Writer      string      `yaml:"writer" toml:"writer" json:"writer"`
	WriteConfig WriteConfig `yaml:"writer_config" toml:"writer_config" json:"writer_config"`

	// Formatter is the format of log, such as console or json.
	Formatter    string       `yaml:"formatter" toml:"formatter" json:"formatter"`
	FormatConfig FormatConfig `yaml:"formatter_config" toml:"formatter_config" json:"formatter_config"`

	// Level controls the log level, like debug, info or error.
	Level string `yaml:"level" toml:"level" json:"level"`

	// EnableColor determines if the output is colored. The default value is false.
	EnableColor bool `yaml:"enable_color" toml:"enable_color" json:"enable_color"`
}

// WriteConfig is the local file config.
type WriteConfig struct {
	// Stream selects the console stream, stderr (default) or stdout.
	Stream string `yaml:"stream" toml:"stream" json:"stream"`
	// LogPath is the log path like /usr/local/stackctl/log/.
	LogPath string `yaml:"log_path" toml:"log_path" json:"log_path"`
	// Filename is the file name like stackctl.%Y%m%d.log; strftime verbs are
	// resolved when the file is opened.
	Filename string `yaml:"filename" toml:"filename" json:"filename"`
}

// FormatConfig is the log format config.
type FormatConfig struct {
	// TimeFmt is the time format of log output, default as "2006-01-02 15:04:05.000" on empty.
	TimeFmt string `yaml:"time_fmt" toml:"time_fmt" json:"time_fmt"`

	// TimeKey is the time key of log output, default as "T".
	TimeKey string `yaml:"time_key" toml:"time_key" json:"time_key"`
	// LevelKey is the level key of log output, default as "L".
	LevelKey string `yaml:"level_key" toml:"level_key" json:"level_key"`
	// CallerKey is the caller key of log output, default as "C".
	CallerKey string `yaml:"caller_key" toml:"caller_key" json:"caller_key"`
	// MessageKey is the message key of log output, default as "M".
	MessageKey string `yaml:"message_key" toml:"message_key" json:"message_key"`
}
