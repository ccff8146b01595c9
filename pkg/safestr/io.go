// File: io.go
// Title: io Interfaces
// Description: Lets a String act as an io.Writer sink and an io.WriterTo
//              source so it can be used with fmt.Fprintf, io.Copy and
//              friends.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-04
// Modified: 2025-08-04
//
// Change History:
// - 2025-08-04 v0.1.0: Initial implementation

package safestr

import "io"

var (
	_ io.Writer       = (*String)(nil)
	_ io.StringWriter = (*String)(nil)
	_ io.ByteWriter   = (*String)(nil)
	_ io.WriterTo     = (*String)(nil)
)

// Write appends p. It either writes all of p or nothing.
func (s *String) Write(p []byte) (int, error) {
	if err := s.AppendBuffer(p, len(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString appends text, zero bytes included
func (s *String) WriteString(text string) (int, error) {
	if s.absent() {
		return 0, newError(NullReference, "WriteString")
	}
	if err := s.append("WriteString", []byte(text)); err != nil {
		return 0, err
	}
	return len(text), nil
}

// WriteByte appends c
func (s *String) WriteByte(c byte) error {
	return s.AppendChar(c)
}

// WriteTo writes the content to w
func (s *String) WriteTo(w io.Writer) (int64, error) {
	if s.absent() {
		return 0, newError(NullReference, "WriteTo")
	}
	n, err := w.Write(s.View())
	return int64(n), err
}
