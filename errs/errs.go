// Package errs provides the coded error type returned by the stack driver, config loader
// and command line tool. The stack container itself never returns errors.
package errs

import (
	"errors"
	"fmt"
	"io"
)

// RetCode is the return code carried by Error.
type RetCode int32

// Return codes.
const (
	// RetOK means success.
	RetOK RetCode = 0

	// RetStackFull is the code of a push rejected by a full stack.
	RetStackFull RetCode = 1
	// RetStackEmpty is the code of a pop rejected by an empty stack.
	RetStackEmpty RetCode = 2
	// RetPeekAbsent is the code of a peek below the bottom of the stack.
	RetPeekAbsent RetCode = 3
	// RetExpectMismatch is the code of a script step whose outcome differs from its expectation.
	RetExpectMismatch RetCode = 4

	// RetParseFail is the code of a malformed script.
	RetParseFail RetCode = 10
	// RetConfigInvalid is the code of a config that fails to load or validate.
	RetConfigInvalid RetCode = 11
	// RetIOFail is the code of a failed read or write.
	RetIOFail RetCode = 12

	// RetUnknown is the code for unspecified errors.
	RetUnknown RetCode = 999
)

var retNames = map[RetCode]string{
	RetOK:             "ok",
	RetStackFull:      "stack full",
	RetStackEmpty:     "stack empty",
	RetPeekAbsent:     "peek absent",
	RetExpectMismatch: "expect mismatch",
	RetParseFail:      "parse fail",
	RetConfigInvalid:  "config invalid",
	RetIOFail:         "io fail",
	RetUnknown:        "unknown",
}

// String returns the short name of the code.
func (c RetCode) String() string {
	if s, ok := retNames[c]; ok {
		return s
	}
	return fmt.Sprintf("RetCode(%d)", int32(c))
}

const (
	// Success is the success prompt string.
	Success = "success"
)

// ErrUnknown is an unknown error.
var ErrUnknown = New(RetUnknown, "unknown error")

// Error is the error code structure which contains error code and error message.
type Error struct {
	Code RetCode
	Msg  string

	cause error // internal error, form the error chain.
}

// Error implements the error interface and returns the error description.
func (e *Error) Error() string {
	if e == nil {
		return Success
	}
	if e.cause != nil {
		return fmt.Sprintf("code:%d, msg:%s, caused by %s", e.Code, e.Msg, e.cause.Error())
	}
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Msg)
}

// Format implements the fmt.Formatter interface.
// %+v prints the code name and each cause on its own line.
func (e *Error) Format(s fmt.State, verb rune) {
	if e == nil {
		_, _ = io.WriteString(s, Success)
		return
	}
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "code:%d(%s), msg:%s", e.Code, e.Code, e.Msg)
			if e.Unwrap() != nil {
				_, _ = fmt.Fprintf(s, "\nCause by %+v", e.Unwrap())
			}
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(errs.Error=%s)", verb, e.Error())
	}
}

// Unwrap support Go 1.13+ error chains.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error with the same code.
// It lets errors.Is match against sentinel errors built with New.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// ErrCode permits any integer defined in https://go.dev/ref/spec#Numeric_types
type ErrCode interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~int | ~uintptr
}

// New creates an error.
func New[T ErrCode](code T, msg string) error {
	return &Error{
		Code: RetCode(code),
		Msg:  msg,
	}
}

// Newf creates an error, msg supports format strings.
func Newf[T ErrCode](code T, format string, params ...interface{}) error {
	return &Error{
		Code: RetCode(code),
		Msg:  fmt.Sprintf(format, params...),
	}
}

// Wrap creates a new error contains input error.
func Wrap[T ErrCode](err error, code T, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:  RetCode(code),
		Msg:   msg,
		cause: err,
	}
}

// Wrapf the same as Wrap, msg supports format strings.
func Wrapf[T ErrCode](err error, code T, format string, params ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:  RetCode(code),
		Msg:   fmt.Sprintf(format, params...),
		cause: err,
	}
}

// Code gets the error code through error.
func Code(e error) RetCode {
	if e == nil {
		return RetOK
	}

	// Doing type assertion first has a slight performance boost over just using errors.As
	// because of avoiding reflect when the assertion is probably true.
	err, ok := e.(*Error)
	if !ok && !errors.As(e, &err) {
		return RetUnknown
	}
	if err == nil {
		return RetOK
	}
	return err.Code
}

// Msg gets error msg through error.
func Msg(e error) string {
	if e == nil {
		return Success
	}
	err, ok := e.(*Error)
	if !ok && !errors.As(e, &err) {
		return e.Error()
	}
	if err == (*Error)(nil) {
		return Success
	}
	// For cases of error chains, err.Error() will print the entire chain,
	// including the current error and the nested error messages, in an appropriate format.
	if err.Unwrap() != nil {
		return err.Error()
	}
	return err.Msg
}
