//
//
// Copyright (C) 2026 The ChristmasQueue Authors.
// All rights reserved.
//
// Licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

// Package script runs line based operation scripts against bounded stacks.
//
// A script holds one command per line:
//
//	# comment
//	push a          => true
//	push "two words"
//	peek 1          => "a"
//	pop             => "two words"
//	homogeneous     => true
//
// The optional "=> outcome" is checked against the rendered outcome of the command.
package script

import (
	"strconv"

	"github.com/christmasqueue/collections/errs"
	"github.com/christmasqueue/collections/stack"
)

// Op is a stack operation a command performs.
type Op int

// Ops.
const (
	OpPush Op = iota + 1
	OpPop
	OpPeek
	OpEmpty
	OpFull
	OpHomogeneous
	OpSize
	OpCap
	OpReset
)

var opNames = map[Op]string{
	OpPush:        "push",
	OpPop:         "pop",
	OpPeek:        "peek",
	OpEmpty:       "empty",
	OpFull:        "full",
	OpHomogeneous: "homogeneous",
	OpSize:        "size",
	OpCap:         "cap",
	OpReset:       "reset",
}

var opKeywords = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

// String returns the script keyword of the op.
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Outcome renderings shared by several ops.
const (
	outcomeFail   = "fail"
	outcomeAbsent = "absent"
	outcomeOK     = "ok"
)

// Command is one parsed script line.
type Command struct {
	Line  int
	Op    Op
	Value string // pushed value, OpPush only.
	Depth int    // OpPeek only.

	Expect    string // rendered outcome the command must produce.
	HasExpect bool
}

// String renders the command back in script syntax, without its expectation.
func (c Command) String() string {
	switch c.Op {
	case OpPush:
		return "push " + strconv.Quote(c.Value)
	case OpPeek:
		return "peek " + strconv.Itoa(c.Depth)
	default:
		return c.Op.String()
	}
}

// apply runs the command on st and renders its outcome.
// ok is false when the stack rejected the operation.
func (c Command) apply(st *stack.Stack) (outcome string, ok bool) {
	switch c.Op {
	case OpPush:
		ok = st.TryPush(c.Value)
		return strconv.FormatBool(ok), ok
	case OpPop:
		v, ok := st.TryPop()
		if !ok {
			return outcomeFail, false
		}
		return strconv.Quote(v), true
	case OpPeek:
		v, ok := st.Peek(c.Depth)
		if !ok {
			return outcomeAbsent, false
		}
		return strconv.Quote(v), true
	case OpEmpty:
		return strconv.FormatBool(st.IsEmpty()), true
	case OpFull:
		return strconv.FormatBool(st.IsFull()), true
	case OpHomogeneous:
		return strconv.FormatBool(st.IsHomogeneous()), true
	case OpSize:
		return strconv.Itoa(st.Size()), true
	case OpCap:
		return strconv.Itoa(st.Cap()), true
	case OpReset:
		st.Reset()
		return outcomeOK, true
	default:
		return outcomeFail, false
	}
}

// rejectCode is the error code of a rejected command in strict mode.
func (c Command) rejectCode() errs.RetCode {
	switch c.Op {
	case OpPush:
		return errs.RetStackFull
	case OpPop:
		return errs.RetStackEmpty
	case OpPeek:
		return errs.RetPeekAbsent
	default:
		return errs.RetUnknown
	}
}
