// File: safestr.go
// Title: Growable String Type and Lifecycle
// Description: Defines the String container, its construction options,
//              constructors, release path and the read-only inspection
//              operations. Every method is nil-safe: a nil *String is the
//              absent instance and a released String behaves like one.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-02
// Modified: 2025-08-09
//
// Change History:
// - 2025-08-02 v0.1.0: Initial implementation
// - 2025-08-04 v0.1.1: Added borrowed views (Wrap) and Scoped
// - 2025-08-09 v0.1.2: Absent views no longer share a backing array

package safestr

// NPos is the position returned by search operations when nothing matches.
// RFindChar also accepts it as "start from the last byte".
const NPos = -1

// String is an owning, growable, bounds-checked byte string.
//
// The backing buffer always holds a zero byte at index Len(), so CStr can be
// handed to consumers of zero-terminated strings. Slices returned by View and
// CStr are invalidated by the next mutating call.
//
// The zero value is an empty owning String that allocates on first growth.
// A String is not safe for concurrent mutation.
type String struct {
	data     []byte
	length   int
	borrowed bool
	released bool
	alloc    Allocator
}

// Option configures a String at construction time
type Option func(*String)

// WithAllocator sets the allocator used for every (re)allocation
func WithAllocator(a Allocator) Option {
	return func(s *String) {
		s.alloc = a
	}
}

// WithLimit caps the capacity of the String at max bytes (terminator included).
// A non-positive max means unlimited.
func WithLimit(max int) Option {
	return func(s *String) {
		s.alloc = HeapAllocator{Limit: max}
	}
}

// CStr is a zero-terminated byte source. Reading stops at the first zero byte
// or at the end of the slice. A nil CStr is an absent source.
type CStr []byte

// bytes returns the content of the source up to its first zero byte
func (c CStr) bytes() []byte {
	for i, b := range c {
		if b == 0 {
			return c[:i]
		}
	}
	return c
}

// cstrOf converts a Go string into a present CStr
func cstrOf(s string) CStr {
	if s == "" {
		return CStr{}
	}
	return CStr(s)
}

// absent reports whether s must be treated as a missing instance
func (s *String) absent() bool {
	return s == nil || s.released
}

// ===============================
// Construction and release
// ===============================

// NewWithCapacity creates an empty String with room for at least
// max(capacity, DefaultCapacity) bytes. It returns nil if allocation fails.
func NewWithCapacity(capacity int, opts ...Option) *String {
	if capacity < DefaultCapacity {
		capacity = DefaultCapacity
	}

	s := &String{}
	for _, opt := range opts {
		opt(s)
	}

	buf, err := s.allocator().Allocate(capacity)
	if err != nil || len(buf) < capacity {
		return nil
	}
	s.data = buf[:capacity]
	s.data[0] = 0
	return s
}

// New creates an empty String with DefaultCapacity
func New(opts ...Option) *String {
	return NewWithCapacity(DefaultCapacity, opts...)
}

// NewFromBuffer creates a String holding exactly the first length bytes of buf.
// Zero bytes are copied like any other byte. It returns nil when length is
// negative or larger than buf, or when allocation fails.
func NewFromBuffer(buf []byte, length int, opts ...Option) *String {
	if length < 0 || length > len(buf) {
		return nil
	}

	s := NewWithCapacity(length+1, opts...)
	if s == nil {
		return nil
	}

	copy(s.data, buf[:length])
	s.data[length] = 0
	s.length = length
	return s
}

// NewFromCStr creates a String from a zero-terminated source.
// An absent source yields a valid empty String.
func NewFromCStr(text CStr, opts ...Option) *String {
	if text == nil {
		return New(opts...)
	}
	content := text.bytes()
	return NewFromBuffer(content, len(content), opts...)
}

// NewFromString creates a String from a Go string, stopping at the first zero byte
func NewFromString(text string, opts ...Option) *String {
	return NewFromCStr(cstrOf(text), opts...)
}

// Clone returns a deep copy of src sharing its allocator.
// An absent source yields nil.
func Clone(src *String) *String {
	if src.absent() {
		return nil
	}
	return NewFromBuffer(src.data, src.length, WithAllocator(src.alloc))
}

// Wrap creates a borrowed String over caller-owned memory holding length
// bytes of content. The terminator is written at buf[length]. A borrowed
// String never reallocates: operations that would need more room than
// len(buf) fail with NullReference.
func Wrap(buf []byte, length int) (*String, error) {
	if length < 0 || length >= len(buf) {
		return nil, newError(InvalidArgument, "Wrap").
			WithDetail("length", length).
			WithDetail("buffer", len(buf))
	}

	buf[length] = 0
	return &String{
		data:     buf,
		length:   length,
		borrowed: true,
	}, nil
}

// Release drops the backing buffer. The String then behaves like an absent
// instance. Releasing nil or an already released String is a no-op.
func (s *String) Release() {
	if s.absent() {
		return
	}
	s.data = nil
	s.length = 0
	s.released = true
}

// Scoped creates a String, passes it to fn and releases it on every exit
// path, including panics. It returns ErrOutOfMemory if creation fails.
func Scoped(fn func(*String) error, opts ...Option) error {
	s := New(opts...)
	if s == nil {
		return newError(OutOfMemory, "Scoped").WithDetail("requested", DefaultCapacity)
	}
	defer s.Release()
	return fn(s)
}

// ===============================
// Inspection
// ===============================

// Len returns the number of content bytes (0 for an absent String)
func (s *String) Len() int {
	if s.absent() {
		return 0
	}
	return s.length
}

// Cap returns the size of the backing buffer (0 for an absent String)
func (s *String) Cap() int {
	if s.absent() {
		return 0
	}
	return len(s.data)
}

// IsEmpty reports whether the String is absent or has no content
func (s *String) IsEmpty() bool {
	return s.absent() || s.length == 0
}

// IsOwner reports whether the String owns, and may reallocate, its buffer
func (s *String) IsOwner() bool {
	return !s.absent() && !s.borrowed
}

// View returns the content as a read-only slice. It is never nil.
func (s *String) View() []byte {
	if s.absent() || s.data == nil {
		return []byte{}
	}
	return s.data[:s.length:s.length]
}

// CStr returns the content followed by its zero terminator.
// An absent String yields a slice holding only the terminator.
func (s *String) CStr() []byte {
	if s.absent() || s.data == nil {
		return []byte{0}
	}
	return s.data[: s.length+1 : s.length+1]
}

// String returns a copy of the content as a Go string
func (s *String) String() string {
	if s.absent() {
		return ""
	}
	return string(s.data[:s.length])
}
