// File: transform.go
// Title: In-Place Transforms and Safe Copy-Out
// Description: ASCII case conversion, whitespace trimming, byte replacement
//              and the truncating, always-terminated copy into a caller
//              buffer. None of the transforms reallocate, so they work on
//              borrowed Strings too.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-03
// Modified: 2025-08-03
//
// Change History:
// - 2025-08-03 v0.1.0: Initial implementation

package safestr

// ToUpper converts ASCII lowercase letters to uppercase in place
func (s *String) ToUpper() error {
	if s.absent() {
		return newError(NullReference, "ToUpper")
	}
	for i := 0; i < s.length; i++ {
		if c := s.data[i]; c >= 'a' && c <= 'z' {
			s.data[i] = c - ('a' - 'A')
		}
	}
	return nil
}

// ToLower converts ASCII uppercase letters to lowercase in place
func (s *String) ToLower() error {
	if s.absent() {
		return newError(NullReference, "ToLower")
	}
	for i := 0; i < s.length; i++ {
		if c := s.data[i]; c >= 'A' && c <= 'Z' {
			s.data[i] = c + ('a' - 'A')
		}
	}
	return nil
}

// isSpace matches the C locale whitespace set
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Trim removes leading and trailing whitespace.
// An empty String is rejected with NullReference.
func (s *String) Trim() error {
	if s.absent() || s.length == 0 {
		return newError(NullReference, "Trim").WithDetail("length", s.Len())
	}

	start := 0
	for start < s.length && isSpace(s.data[start]) {
		start++
	}
	end := s.length
	for end > start && isSpace(s.data[end-1]) {
		end--
	}

	if start > 0 {
		copy(s.data, s.data[start:end])
	}
	s.length = end - start
	s.terminate()
	return nil
}

// ReplaceChar substitutes every old byte with new
func (s *String) ReplaceChar(old, new byte) error {
	if s.absent() {
		return newError(NullReference, "ReplaceChar")
	}
	for i := 0; i < s.length; i++ {
		if s.data[i] == old {
			s.data[i] = new
		}
	}
	return nil
}

// CopyToBuffer copies the content into dest followed by a zero terminator.
// When dest is too small the copy is truncated to len(dest)-1 bytes, still
// terminated, and BufferTooSmall is returned. n is the number of content
// bytes written.
func (s *String) CopyToBuffer(dest []byte) (n int, err error) {
	if s.absent() || dest == nil {
		return 0, newError(NullReference, "CopyToBuffer")
	}
	if len(dest) == 0 {
		return 0, newError(BufferTooSmall, "CopyToBuffer").
			WithDetail("required", s.length+1).
			WithDetail("available", 0)
	}

	n = min(s.length, len(dest)-1)
	copy(dest, s.data[:n])
	dest[n] = 0

	if n < s.length {
		return n, newError(BufferTooSmall, "CopyToBuffer").
			WithDetail("required", s.length+1).
			WithDetail("available", len(dest))
	}
	return n, nil
}
