// Package expandenv replaces ${key} and ${key:-default} in byte slices with the env value of key.
package expandenv

import (
	"bytes"
	"os"
)

var defaultSep = []byte(":-")

// ExpandEnv looks for ${var} and ${var:-default} in s and replaces them with the value of
// the corresponding environment variable.
// Unlike os.ExpandEnv, $var is left as is, since values like passwords may contain $.
func ExpandEnv(s []byte) []byte {
	return Expand(s, os.LookupEnv)
}

// Expand is ExpandEnv with a custom lookup.
// The default of ${var:-default} is used when var is unset or empty.
// A reference whose name holds a blank, or which is broken by a newline or a quote
// before its closing brace, is kept verbatim. ${} is removed.
func Expand(s []byte, lookup func(string) (string, bool)) []byte {
	var buf []byte
	i := 0
	for j := 0; j < len(s); j++ {
		if s[j] != '$' || j+2 >= len(s) || s[j+1] != '{' {
			continue
		}
		end := closingBrace(s[j+2:])
		if end < 0 {
			continue
		}
		if buf == nil {
			buf = make([]byte, 0, 2*len(s))
		}
		body := s[j+2 : j+2+end]
		buf = append(buf, s[i:j]...)
		i = j + 2 + end + 1
		if len(body) == 0 {
			j = i - 1
			continue
		}
		name, def, hasDef := body, []byte(nil), false
		if k := bytes.Index(body, defaultSep); k >= 0 {
			name, def, hasDef = body[:k], body[k+len(defaultSep):], true
		}
		if len(name) == 0 || bytes.IndexByte(name, ' ') >= 0 {
			buf = append(buf, s[j:i]...)
			j = i - 1
			continue
		}
		v, ok := lookup(string(name))
		if hasDef && (!ok || v == "") {
			buf = append(buf, def...)
		} else {
			buf = append(buf, v...)
		}
		j = i - 1
	}
	if buf == nil {
		return s
	}
	return append(buf, s[i:]...)
}

// closingBrace returns the index of the '}' ending a reference body, or -1 if the body
// is broken by a newline or a quote first.
func closingBrace(s []byte) int {
	for k, c := range s {
		switch c {
		case '}':
			return k
		case '\n', '"':
			return -1
		}
	}
	return -1
}
