// File: format.go
// Title: Formatted Construction
// Description: printf-style rendering into a String. The output is rendered
//              into a pooled scratch buffer first, so its exact length is
//              known before the String is resized, and a malformed template
//              never touches the existing content.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-03
// Modified: 2025-08-09
//
// Change History:
// - 2025-08-03 v0.1.0: Initial implementation
// - 2025-08-04 v0.1.1: Reject renderings carrying fmt error markers
// - 2025-08-09 v0.1.2: Ignore marker-like text coming from arguments

package safestr

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// fmtErrorMarker matches the inline diagnostics fmt writes for broken
// templates: %!d(MISSING), %!(EXTRA int=1), %!z(int=5), %!(NOVERB), ...
var fmtErrorMarker = regexp.MustCompile(
	`%!(?:\((?:NOVERB|BADWIDTH|BADPREC)\)|\(EXTRA |.\((?:MISSING|BADINDEX|<nil>)\)|.\([^=()]*=)`)

// render formats template with args into a pooled buffer and validates it.
// The caller must return the buffer with bytebufferpool.Put.
func render(op, template string, args []interface{}) (*bytebufferpool.ByteBuffer, error) {
	bb := bytebufferpool.Get()
	fmt.Fprintf(bb, template, args...)

	if bytes.Contains(bb.B, []byte("%!")) && brokenTemplate(template, args) {
		bytebufferpool.Put(bb)
		return nil, newError(InvalidArgument, op).WithDetail("template", template)
	}
	return bb, nil
}

// brokenTemplate renders template again with marker bytes removed from
// every textual argument, so only diagnostics written by fmt itself remain.
func brokenTemplate(template string, args []interface{}) bool {
	check := bytebufferpool.Get()
	defer bytebufferpool.Put(check)

	fmt.Fprintf(check, template, neutralArgs(args)...)
	return fmtErrorMarker.Match(check.B)
}

// neutralArgs copies args, replacing '%' and '!' in the text of strings,
// byte slices, errors and Stringers. Argument types that decide verb
// validity are kept: strings stay strings, byte slices stay byte slices.
func neutralArgs(args []interface{}) []interface{} {
	out := make([]interface{}, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			out[i] = strings.Map(neutralRune, v)
		case []byte:
			out[i] = bytes.Map(neutralRune, v)
		case fmt.Formatter:
			out[i] = v
		case error:
			out[i] = neutralError(strings.Map(neutralRune, v.Error()))
		case fmt.Stringer:
			out[i] = neutralStringer(strings.Map(neutralRune, v.String()))
		default:
			out[i] = arg
		}
	}
	return out
}

func neutralRune(r rune) rune {
	if r == '%' || r == '!' {
		return '_'
	}
	return r
}

type neutralError string

func (e neutralError) Error() string { return string(e) }

type neutralStringer string

func (s neutralStringer) String() string { return string(s) }

// Format replaces the content with the rendering of template and args.
// A template that fmt cannot satisfy yields InvalidArgument.
func (s *String) Format(template string, args ...interface{}) error {
	if s.absent() {
		return newError(NullReference, "Format")
	}

	bb, err := render("Format", template, args)
	if err != nil {
		return err
	}
	defer bytebufferpool.Put(bb)

	return s.assign("Format", bb.B)
}

// AppendFormat appends the rendering of template and args
func (s *String) AppendFormat(template string, args ...interface{}) error {
	if s.absent() {
		return newError(NullReference, "AppendFormat")
	}

	bb, err := render("AppendFormat", template, args)
	if err != nil {
		return err
	}
	defer bytebufferpool.Put(bb)

	return s.append("AppendFormat", bb.B)
}
