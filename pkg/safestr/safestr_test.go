// File: safestr_test.go
// Title: Unit Tests for Errors, Capacity and Lifecycle
// Description: Tests the error codes and messages, the growth policy and
//              allocator failures, construction, release and inspection of
//              Strings, including absent and borrowed instances.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-02
// Modified: 2025-08-04
//
// Change History:
// - 2025-08-02 v0.1.0: Initial test implementation
// - 2025-08-04 v0.1.1: Borrowed view and allocator failure tests

package safestr

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"
)

// failAfter returns an allocator that serves n allocations and refuses the rest
func failAfter(n int) Allocator {
	calls := 0
	return AllocatorFunc(func(size int) ([]byte, error) {
		calls++
		if calls > n {
			return nil, ErrAllocationRefused
		}
		return make([]byte, size), nil
	})
}

func TestCodeMessage(t *testing.T) {
	tests := []struct {
		code     Code
		expected string
	}{
		{Success, "Success"},
		{NullReference, "Null pointer error"},
		{OutOfMemory, "Out of memory"},
		{InvalidIndex, "Invalid index"},
		{BufferTooSmall, "Buffer too small"},
		{InvalidArgument, "Invalid argument"},
		{Code(99), "Unknown error"},
		{Code(-1), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := tt.code.Message(); got != tt.expected {
				t.Errorf("Code(%d).Message() = %q; want %q", int(tt.code), got, tt.expected)
			}
		})
	}
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		input   string
		want    Code
		wantErr bool
	}{
		{"Success", Success, false},
		{"InvalidIndex", InvalidIndex, false},
		{"invalidindex", InvalidIndex, false},
		{"BUFFERTOOSMALL", BufferTooSmall, false},
		{"OutOfMemory", OutOfMemory, false},
		{"Bogus", Success, true},
		{"", Success, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCode(%q) error = %v; wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCode(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestError(t *testing.T) {
	err := newError(InvalidIndex, "Erase").WithDetail("index", 5).WithDetail("length", 3)

	want := "safestr.Erase: invalid index (index=5, length=3)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
	if err.Code() != InvalidIndex {
		t.Errorf("Code() = %v; want InvalidIndex", err.Code())
	}
	if err.Operation() != "Erase" {
		t.Errorf("Operation() = %q; want Erase", err.Operation())
	}

	details := err.Details()
	details["index"] = 99
	if err.Details()["index"] != 5 {
		t.Error("Details() must return a copy")
	}

	if !errors.Is(err, ErrInvalidIndex) {
		t.Error("errors.Is(err, ErrInvalidIndex) = false; want true")
	}
	if errors.Is(err, ErrNullReference) {
		t.Error("errors.Is(err, ErrNullReference) = true; want false")
	}

	wrapped := fmt.Errorf("step 3: %w", err)
	if !errors.Is(wrapped, ErrInvalidIndex) {
		t.Error("wrapped error lost its code")
	}
	if got := CodeOf(wrapped); got != InvalidIndex {
		t.Errorf("CodeOf(wrapped) = %v; want InvalidIndex", got)
	}
}

func TestErrorWithoutOperation(t *testing.T) {
	if got := ErrOutOfMemory.Error(); got != "out of memory" {
		t.Errorf("ErrOutOfMemory.Error() = %q; want %q", got, "out of memory")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Success},
		{"coded", newError(BufferTooSmall, "CopyToBuffer"), BufferTooSmall},
		{"sentinel", ErrNullReference, NullReference},
		{"foreign", errors.New("boom"), InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf(%v) = %v; want %v", tt.err, got, tt.want)
			}
		})
	}

	if got := ErrorMessage(nil); got != "Success" {
		t.Errorf("ErrorMessage(nil) = %q; want Success", got)
	}
}

func TestGrow(t *testing.T) {
	tests := []struct {
		name              string
		current, required int
		want              int
	}{
		{"fits", 64, 10, 64},
		{"exact", 64, 64, 64},
		{"one over", 64, 65, 128},
		{"several doublings", 64, 300, 512},
		{"odd current", 100, 150, 200},
		{"zero current", 0, 4, 64},
		{"zero current large", 0, 1000, 1024},
		{"overflow clamps", math.MaxInt/2 + 1, math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grow(tt.current, tt.required); got != tt.want {
				t.Errorf("grow(%d, %d) = %d; want %d", tt.current, tt.required, got, tt.want)
			}
		})
	}
}

func TestHeapAllocatorLimit(t *testing.T) {
	h := HeapAllocator{Limit: 100}

	if buf, err := h.Allocate(100); err != nil || len(buf) != 100 {
		t.Errorf("Allocate(100) = len %d, %v; want len 100, nil", len(buf), err)
	}
	if _, err := h.Allocate(101); !errors.Is(err, ErrAllocationRefused) {
		t.Errorf("Allocate(101) error = %v; want ErrAllocationRefused", err)
	}
	if _, err := (HeapAllocator{}).Allocate(-1); err == nil {
		t.Error("Allocate(-1) succeeded; want error")
	}
	for _, size := range []int{MaxCapacity + 1, math.MaxInt} {
		if _, err := (HeapAllocator{}).Allocate(size); !errors.Is(err, ErrAllocationRefused) {
			t.Errorf("Allocate(%d) error = %v; want ErrAllocationRefused", size, err)
		}
	}
}

func TestNewWithCapacity(t *testing.T) {
	tests := []struct {
		requested int
		wantCap   int
	}{
		{0, DefaultCapacity},
		{-5, DefaultCapacity},
		{10, DefaultCapacity},
		{64, 64},
		{100, 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.requested), func(t *testing.T) {
			s := NewWithCapacity(tt.requested)
			if s == nil {
				t.Fatal("NewWithCapacity returned nil")
			}
			if s.Len() != 0 || s.Cap() != tt.wantCap {
				t.Errorf("NewWithCapacity(%d): Len %d Cap %d; want 0 %d", tt.requested, s.Len(), s.Cap(), tt.wantCap)
			}
			if !bytes.Equal(s.CStr(), []byte{0}) {
				t.Errorf("CStr() = %v; want [0]", s.CStr())
			}
		})
	}
}

func TestNewFailsWhenAllocatorRefuses(t *testing.T) {
	if s := New(WithLimit(32)); s != nil {
		t.Errorf("New(WithLimit(32)) = %v; want nil", s)
	}
	if s := NewFromString("abc", WithAllocator(failAfter(0))); s != nil {
		t.Errorf("NewFromString with refusing allocator = %v; want nil", s)
	}
	if s := NewWithCapacity(math.MaxInt); s != nil {
		t.Errorf("NewWithCapacity(math.MaxInt) = %v; want nil", s)
	}
	if err := Scoped(func(*String) error { return nil }, WithLimit(8)); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("Scoped with refusing allocator = %v; want ErrOutOfMemory", err)
	}
}

func TestNewFromString(t *testing.T) {
	s := NewFromString("Hello, World!")
	if s.String() != "Hello, World!" {
		t.Errorf("String() = %q; want %q", s.String(), "Hello, World!")
	}
	if s.Len() != 13 {
		t.Errorf("Len() = %d; want 13", s.Len())
	}
	if s.Cap() != 64 {
		t.Errorf("Cap() = %d; want 64", s.Cap())
	}
	if !s.IsOwner() {
		t.Error("IsOwner() = false; want true")
	}

	cut := NewFromString("ab\x00cd")
	if cut.String() != "ab" {
		t.Errorf("NewFromString stops at zero byte: got %q; want %q", cut.String(), "ab")
	}
}

func TestNewFromCStr(t *testing.T) {
	tests := []struct {
		name  string
		input CStr
		want  string
	}{
		{"absent source", nil, ""},
		{"empty source", CStr{}, ""},
		{"plain", CStr("Test"), "Test"},
		{"terminated", CStr("Test\x00ignored"), "Test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFromCStr(tt.input)
			if s == nil {
				t.Fatal("NewFromCStr returned nil")
			}
			if s.String() != tt.want {
				t.Errorf("NewFromCStr(%q) = %q; want %q", tt.input, s.String(), tt.want)
			}
		})
	}
}

func TestNewFromBuffer(t *testing.T) {
	raw := []byte("Hello\x00World")

	s := NewFromBuffer(raw, len(raw))
	if s.Len() != 11 {
		t.Fatalf("Len() = %d; want 11", s.Len())
	}
	if s.At(5) != 0 || s.At(6) != 'W' {
		t.Errorf("embedded zero not preserved: At(5)=%d At(6)=%q", s.At(5), s.At(6))
	}
	if !bytes.Equal(s.View(), raw) {
		t.Errorf("View() = %q; want %q", s.View(), raw)
	}

	raw[0] = 'J'
	if s.At(0) != 'H' {
		t.Error("NewFromBuffer must copy its source")
	}

	prefix := NewFromBuffer(raw, 3)
	if prefix.String() != "Jel" {
		t.Errorf("NewFromBuffer(raw, 3) = %q; want %q", prefix.String(), "Jel")
	}

	if got := NewFromBuffer(raw, -1); got != nil {
		t.Error("NewFromBuffer with negative length must return nil")
	}
	if got := NewFromBuffer(raw, len(raw)+1); got != nil {
		t.Error("NewFromBuffer with length past the buffer must return nil")
	}
	if got := NewFromBuffer(nil, 0); got == nil || got.Len() != 0 {
		t.Error("NewFromBuffer(nil, 0) must return an empty String")
	}
}

func TestClone(t *testing.T) {
	original := NewFromString("Original")
	clone := Clone(original)

	if !Equals(original, clone) {
		t.Fatalf("Clone() = %q; want %q", clone, original)
	}

	if err := clone.AppendCStr(CStr(" copy")); err != nil {
		t.Fatalf("AppendCStr: %v", err)
	}
	if original.String() != "Original" {
		t.Errorf("original changed to %q after clone mutation", original)
	}

	if Clone(nil) != nil {
		t.Error("Clone(nil) must return nil")
	}

	released := NewFromString("gone")
	released.Release()
	if Clone(released) != nil {
		t.Error("Clone of a released String must return nil")
	}
}

func TestRelease(t *testing.T) {
	s := NewFromString("Hello")
	s.Release()

	if s.Len() != 0 || s.Cap() != 0 || !s.IsEmpty() || s.IsOwner() {
		t.Errorf("released String: Len %d Cap %d IsEmpty %v IsOwner %v",
			s.Len(), s.Cap(), s.IsEmpty(), s.IsOwner())
	}
	if err := s.AppendChar('x'); !errors.Is(err, ErrNullReference) {
		t.Errorf("AppendChar on released String = %v; want ErrNullReference", err)
	}

	// Second release and nil release are no-ops
	s.Release()
	var absent *String
	absent.Release()
}

func TestScopedReleases(t *testing.T) {
	var captured *String
	err := Scoped(func(s *String) error {
		captured = s
		return s.AppendCStr(CStr("scoped"))
	})
	if err != nil {
		t.Fatalf("Scoped() = %v", err)
	}
	if captured.Cap() != 0 {
		t.Error("Scoped must release the String on return")
	}

	sentinel := errors.New("stop")
	if err := Scoped(func(*String) error { return sentinel }); err != sentinel {
		t.Errorf("Scoped() = %v; want the callback error", err)
	}

	func() {
		defer func() { _ = recover() }()
		_ = Scoped(func(s *String) error {
			captured = s
			panic("boom")
		})
	}()
	if captured.Cap() != 0 {
		t.Error("Scoped must release the String when the callback panics")
	}
}

func TestZeroValue(t *testing.T) {
	var s String

	if !s.IsEmpty() || s.Len() != 0 || s.Cap() != 0 {
		t.Fatalf("zero value: IsEmpty %v Len %d Cap %d", s.IsEmpty(), s.Len(), s.Cap())
	}
	if s.String() != "" || len(s.View()) != 0 || !bytes.Equal(s.CStr(), []byte{0}) {
		t.Errorf("zero value views: %q %v %v", s.String(), s.View(), s.CStr())
	}

	if err := s.AppendCStr(CStr("abc")); err != nil {
		t.Fatalf("AppendCStr on zero value: %v", err)
	}
	if s.String() != "abc" || s.Cap() != DefaultCapacity {
		t.Errorf("after append: %q Cap %d; want %q Cap %d", s.String(), s.Cap(), "abc", DefaultCapacity)
	}
}

func TestAbsentInspection(t *testing.T) {
	var s *String

	if s.Len() != 0 || s.Cap() != 0 || !s.IsEmpty() || s.IsOwner() {
		t.Error("nil String must read as empty")
	}
	if s.View() == nil || len(s.View()) != 0 {
		t.Errorf("View() = %v; want non-nil empty slice", s.View())
	}
	if !bytes.Equal(s.CStr(), []byte{0}) {
		t.Errorf("CStr() = %v; want [0]", s.CStr())
	}
	if s.String() != "" {
		t.Errorf("String() = %q; want empty", s.String())
	}
	if s.At(0) != 0 {
		t.Error("At(0) on nil String must be 0")
	}

	// Writing through one absent view must not leak into the next
	s.CStr()[0] = 'x'
	_ = append(s.View(), 'y')
	if !bytes.Equal(s.CStr(), []byte{0}) {
		t.Errorf("CStr() after write = %v; want [0]", s.CStr())
	}
	if got := append(s.View(), 'z'); string(got) != "z" {
		t.Errorf("append(View(), 'z') = %q; want %q", got, "z")
	}
}

func TestTerminatorInvariant(t *testing.T) {
	s := NewFromString("Hello")
	steps := []func() error{
		func() error { return s.AppendCStr(CStr(", World")) },
		func() error { return s.InsertChar(0, '>') },
		func() error { return s.Erase(0, 1) },
		func() error { return s.Resize(3) },
		func() error { return s.Resize(10) },
		func() error { return s.PopBack() },
		func() error { return s.ShrinkToFit() },
		func() error { return s.Clear() },
	}

	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		cs := s.CStr()
		if len(cs) != s.Len()+1 || cs[s.Len()] != 0 {
			t.Fatalf("step %d: terminator missing, CStr() = %v", i, cs)
		}
		if s.Cap() < s.Len()+1 {
			t.Fatalf("step %d: Cap %d < Len+1 %d", i, s.Cap(), s.Len()+1)
		}
	}
}

func TestAllocationFailureKeepsContent(t *testing.T) {
	s := NewFromString("Hello", WithAllocator(failAfter(1)))
	if s == nil {
		t.Fatal("NewFromString returned nil")
	}

	big := bytes.Repeat([]byte("x"), 100)
	err := s.AppendBuffer(big, len(big))
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("AppendBuffer = %v; want ErrOutOfMemory", err)
	}
	if s.String() != "Hello" || s.Cap() != 64 {
		t.Errorf("after failed growth: %q Cap %d; want %q Cap 64", s.String(), s.Cap(), "Hello")
	}

	// Operations that fit still work
	if err := s.AppendCStr(CStr(", World!")); err != nil {
		t.Errorf("AppendCStr within capacity: %v", err)
	}
}

func TestWithLimit(t *testing.T) {
	s := New(WithLimit(128))
	if s == nil {
		t.Fatal("New(WithLimit(128)) returned nil")
	}

	if err := s.Reserve(100); err != nil {
		t.Fatalf("Reserve(100) = %v", err)
	}
	if s.Cap() != 128 {
		t.Errorf("Cap() = %d; want 128", s.Cap())
	}
	if err := s.Reserve(129); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("Reserve(129) = %v; want ErrOutOfMemory", err)
	}
	if s.Cap() != 128 {
		t.Errorf("Cap() after refused growth = %d; want 128", s.Cap())
	}
}

func TestWrap(t *testing.T) {
	buf := make([]byte, 16)
	copy(buf, "hello")

	s, err := Wrap(buf, 5)
	if err != nil {
		t.Fatalf("Wrap() = %v", err)
	}
	if s.String() != "hello" || s.IsOwner() || s.Cap() != 16 {
		t.Fatalf("Wrap: %q IsOwner %v Cap %d", s.String(), s.IsOwner(), s.Cap())
	}

	if err := s.ToUpper(); err != nil {
		t.Fatalf("ToUpper on borrowed: %v", err)
	}
	if string(buf[:5]) != "HELLO" {
		t.Errorf("borrowed buffer = %q; want HELLO", buf[:5])
	}

	// Growth within the borrowed buffer is fine
	if err := s.AppendCStr(CStr(" there")); err != nil {
		t.Fatalf("AppendCStr within borrowed capacity: %v", err)
	}
	if buf[11] != 0 {
		t.Error("terminator not written into borrowed buffer")
	}

	// Growth past it is not
	err = s.AppendCStr(CStr(" and more"))
	if !errors.Is(err, ErrNullReference) {
		t.Errorf("AppendCStr past borrowed capacity = %v; want ErrNullReference", err)
	}
	if s.String() != "HELLO there" {
		t.Errorf("content changed after failed growth: %q", s.String())
	}
	if err := s.ShrinkToFit(); !errors.Is(err, ErrNullReference) {
		t.Errorf("ShrinkToFit on borrowed = %v; want ErrNullReference", err)
	}

	s.Release()
	if string(buf[:5]) != "HELLO" {
		t.Error("Release must not touch a borrowed buffer")
	}
}

func TestWrapInvalid(t *testing.T) {
	buf := make([]byte, 4)
	for _, length := range []int{-1, 4, 5} {
		if _, err := Wrap(buf, length); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Wrap(buf, %d) = %v; want ErrInvalidArgument", length, err)
		}
	}
}
