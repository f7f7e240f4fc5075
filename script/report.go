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
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/christmasqueue/collections/errs"
	"github.com/christmasqueue/collections/stack"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Step is one executed command.
type Step struct {
	Line    int    `json:"line"`
	Command string `json:"command"`
	Outcome string `json:"outcome"`
	OK      bool   `json:"ok"` // false when the stack rejected the command.
}

// Report is the result of one script run.
type Report struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Steps    []Step `json:"steps"`
	// Remaining is the stack content after the run, top first.
	Remaining []string `json:"remaining"`
	Error     string   `json:"error,omitempty"`
}

// finish drains st into Remaining, top first. st is empty afterwards.
func (rep *Report) finish(st *stack.Stack) {
	rep.Remaining = make([]string, 0, st.Size())
	for v, ok := st.TryPop(); ok; v, ok = st.TryPop() {
		rep.Remaining = append(rep.Remaining, v)
	}
}

// WriteText writes the report in a human readable form.
func (rep *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s (capacity %d)\n", rep.Name, rep.Capacity)
	for _, s := range rep.Steps {
		fmt.Fprintf(&b, "%4d  %-24s %s\n", s.Line, s.Command, s.Outcome)
	}
	if len(rep.Remaining) == 0 {
		b.WriteString("remaining: empty\n")
	} else {
		quoted := make([]string, len(rep.Remaining))
		for i, v := range rep.Remaining {
			quoted[i] = strconv.Quote(v)
		}
		fmt.Fprintf(&b, "remaining (top first): %s\n", strings.Join(quoted, " "))
	}
	if rep.Error != "" {
		fmt.Fprintf(&b, "error: %s\n", rep.Error)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errs.Wrap(err, errs.RetIOFail, "write report")
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func (rep *Report) WriteJSON(w io.Writer) error {
	return writeJSON(w, rep)
}

// WriteReports writes reports in format, "text" or "json". nil reports are skipped.
// JSON output is a single array.
func WriteReports(w io.Writer, format string, reports []*Report) error {
	kept := make([]*Report, 0, len(reports))
	for _, rep := range reports {
		if rep != nil {
			kept = append(kept, rep)
		}
	}
	switch format {
	case "json":
		return writeJSON(w, kept)
	case "text", "":
		for i, rep := range kept {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return errs.Wrap(err, errs.RetIOFail, "write report")
				}
			}
			if err := rep.WriteText(w); err != nil {
				return err
			}
		}
		return nil
	default:
		return errs.Newf(errs.RetConfigInvalid, "unknown report format %q", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errs.Wrap(err, errs.RetUnknown, "encode report")
	}
	buf = append(buf, '\n')
	if _, err := w.Write(buf); err != nil {
		return errs.Wrap(err, errs.RetIOFail, "write report")
	}
	return nil
}
