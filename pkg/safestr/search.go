// File: search.go
// Title: Comparison and Search
// Description: Lexicographic comparison and equality against other Strings
//              and zero-terminated sources, plus forward and backward
//              searches for single bytes and byte patterns. Positions are
//              byte offsets; NPos signals "not found".
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-03
// Modified: 2025-08-03
//
// Change History:
// - 2025-08-03 v0.1.0: Initial implementation

package safestr

// ===============================
// Comparison
// ===============================

// compareBytes orders a and b byte-wise; a shorter common prefix sorts first
func compareBytes(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// comparePresence orders absent values before present ones.
// ok is false when both are present and a content comparison is needed.
func comparePresence(aAbsent, bAbsent bool) (result int, ok bool) {
	switch {
	case aAbsent && bAbsent:
		return 0, true
	case aAbsent:
		return -1, true
	case bAbsent:
		return 1, true
	default:
		return 0, false
	}
}

// Compare returns -1, 0 or 1 as a sorts before, equal to or after b.
// Absent Strings sort first; two absent Strings are equal.
func Compare(a, b *String) int {
	if r, ok := comparePresence(a.absent(), b.absent()); ok {
		return r
	}
	return compareBytes(a.View(), b.View())
}

// Equals reports whether a and b hold the same bytes
func Equals(a, b *String) bool {
	return Compare(a, b) == 0
}

// CompareCStr compares s with a zero-terminated source.
// Only the bytes before the first zero of either side take part.
func (s *String) CompareCStr(text CStr) int {
	if r, ok := comparePresence(s.absent(), text == nil); ok {
		return r
	}
	return compareBytes(CStr(s.View()).bytes(), text.bytes())
}

// EqualsCStr reports whether CompareCStr(text) is 0
func (s *String) EqualsCStr(text CStr) bool {
	return s.CompareCStr(text) == 0
}

// ===============================
// Search
// ===============================

// FindChar returns the first position >= start holding c, or NPos
func (s *String) FindChar(c byte, start int) int {
	if s.absent() || start < 0 || start >= s.length {
		return NPos
	}
	for i := start; i < s.length; i++ {
		if s.data[i] == c {
			return i
		}
	}
	return NPos
}

// FindBuffer returns the first position >= start where pattern occurs, or NPos.
// An empty pattern matches at start.
func (s *String) FindBuffer(pattern []byte, start int) int {
	if s.absent() || pattern == nil || start < 0 || start >= s.length {
		return NPos
	}

	n := len(pattern)
	if n == 0 {
		return start
	}
	if n > s.length-start {
		return NPos
	}

	for i := start; i <= s.length-n; i++ {
		if s.data[i] != pattern[0] {
			continue
		}
		match := true
		for j := 1; j < n; j++ {
			if s.data[i+j] != pattern[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return NPos
}

// FindCStr searches for a zero-terminated pattern
func (s *String) FindCStr(text CStr, start int) int {
	if text == nil {
		return NPos
	}
	return s.FindBuffer(text.bytes(), start)
}

// FindString searches for the full content of other, zero bytes included
func (s *String) FindString(other *String, start int) int {
	if other.absent() {
		return NPos
	}
	return s.FindBuffer(other.View(), start)
}

// RFindChar returns the last position <= start holding c, or NPos.
// A negative start (NPos included) begins at the last byte; a start past
// the end is clamped to it.
func (s *String) RFindChar(c byte, start int) int {
	if s.absent() || s.length == 0 {
		return NPos
	}
	if start < 0 || start >= s.length {
		start = s.length - 1
	}
	for i := start; i >= 0; i-- {
		if s.data[i] == c {
			return i
		}
	}
	return NPos
}

// RFindCharFromEnd returns the last position holding c, or NPos
func (s *String) RFindCharFromEnd(c byte) int {
	return s.RFindChar(c, NPos)
}

// Contains reports whether pattern occurs in s. The empty pattern is
// contained in every present String.
func (s *String) Contains(pattern []byte) bool {
	if s.absent() {
		return false
	}
	if len(pattern) == 0 {
		return true
	}
	return s.FindBuffer(pattern, 0) != NPos
}
