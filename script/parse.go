//
//
// Copyright (C) 2026 The ChristmasQueue Authors.
// All rights reserved.
//
// Licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

package script

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/christmasqueue/collections/errs"
)

const (
	expectSep     = "=>"
	commentPrefix = "#"
	// Stdin is the script path which reads from standard input.
	Stdin = "-"
)

// maxLineSize bounds one script line, and so one pushed value.
var maxLineSize = 16 << 20

// Parse reads a whole script. The first malformed line stops parsing.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		cmd, ok, err := ParseLine(lineNo, sc.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, errs.Newf(errs.RetParseFail, "line %d: longer than %d bytes", lineNo+1, maxLineSize)
		}
		return nil, errs.Wrapf(err, errs.RetIOFail, "read script at line %d", lineNo+1)
	}
	return cmds, nil
}

// ParseFile parses the script at path; Stdin reads standard input.
func ParseFile(path string) ([]Command, error) {
	var r io.Reader = os.Stdin
	if path != Stdin {
		f, err := os.Open(path)
		if err != nil {
			return nil, errs.Wrapf(err, errs.RetIOFail, "open script %s", path)
		}
		defer f.Close()
		r = f
	}
	cmds, err := Parse(r)
	if err != nil {
		return nil, errs.Wrapf(err, errs.Code(err), "script %s", path)
	}
	return cmds, nil
}

// ParseLine parses one script line. ok is false for blank and comment lines.
func ParseLine(lineNo int, line string) (cmd Command, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return Command{}, false, nil
	}
	cmd.Line = lineNo

	body := line
	if i := expectIndex(line); i >= 0 {
		body = strings.TrimSpace(line[:i])
		cmd.Expect = strings.TrimSpace(line[i+len(expectSep):])
		cmd.HasExpect = true
		if cmd.Expect == "" {
			return Command{}, false, errs.Newf(errs.RetParseFail, "line %d: empty expectation after %s", lineNo, expectSep)
		}
	}

	keyword, arg := body, ""
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		keyword, arg = body[:i], strings.TrimSpace(body[i+1:])
	}
	op, known := opKeywords[strings.ToLower(keyword)]
	if !known {
		return Command{}, false, errs.Newf(errs.RetParseFail, "line %d: unknown command %q", lineNo, keyword)
	}
	cmd.Op = op

	switch op {
	case OpPush:
		if strings.HasPrefix(arg, `"`) {
			v, err := strconv.Unquote(arg)
			if err != nil {
				return Command{}, false, errs.Newf(errs.RetParseFail, "line %d: bad quoted value %s", lineNo, arg)
			}
			arg = v
		} else if strings.Contains(arg, `"`) {
			return Command{}, false, errs.Newf(errs.RetParseFail, "line %d: quote in bare value %s, quote the whole value", lineNo, arg)
		}
		cmd.Value = arg
	case OpPeek:
		if arg != "" {
			depth, err := strconv.Atoi(arg)
			if err != nil {
				return Command{}, false, errs.Newf(errs.RetParseFail, "line %d: bad peek depth %q", lineNo, arg)
			}
			cmd.Depth = depth
		}
	default:
		if arg != "" {
			return Command{}, false, errs.Newf(errs.RetParseFail, "line %d: %s takes no argument", lineNo, op)
		}
	}
	return cmd, true, nil
}

// expectIndex returns the index of the last expectation separator outside a quoted
// value, or -1. Only an argument starting with a quote is a quoted value.
func expectIndex(line string) int {
	if i := strings.IndexAny(line, " \t"); i < 0 || !strings.HasPrefix(strings.TrimLeft(line[i:], " \t"), `"`) {
		return strings.LastIndex(line, expectSep)
	}
	idx := -1
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case inQuote && c == '\\':
			i++
		case c == '"':
			inQuote = !inQuote
		case !inQuote && strings.HasPrefix(line[i:], expectSep):
			idx = i
		}
	}
	return idx
}
