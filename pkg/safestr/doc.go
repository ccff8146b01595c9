// File: doc.go
// Title: Package Documentation for safestr
// Description: Package safestr provides a growable, bounds-checked byte
//              string with explicit length tracking, geometric capacity
//              growth and a coded error result on every fallible operation.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-02
// Modified: 2025-08-04
//
// Change History:
// - 2025-08-02 v0.1.0: Initial implementation
// - 2025-08-04 v0.1.1: Documented borrowed views and io integration

// Package safestr provides a growable, bounds-checked byte string.
//
// Overview
//
// A String owns a heap buffer that always carries a zero terminator after
// the content, so the same value can be handed to code that expects
// zero-terminated text (CStr) and to code that wants an explicit length
// (View, Len). Content is an arbitrary byte sequence: zero bytes inside the
// content are preserved by every length-aware operation.
//
// Every fallible operation validates its arguments before changing state and
// returns an error whose Code is one of NullReference, OutOfMemory,
// InvalidIndex, BufferTooSmall or InvalidArgument. A failed operation leaves
// the String exactly as it was. The one partial result is CopyToBuffer,
// which writes a truncated, terminated copy and still reports
// BufferTooSmall.
//
// Absent values
//
// A nil *String is valid to call methods on. It reads as empty, searches
// return NPos, and mutating methods return ErrNullReference. A String that
// has been released behaves the same way. For zero-terminated sources the
// CStr type is used, where a nil CStr is an absent source.
//
// Capacity
//
// New Strings start with DefaultCapacity bytes. When an operation needs more
// room the capacity doubles from its current value until it fits. The
// allocation itself goes through an Allocator; WithLimit installs a
// HeapAllocator with a cap so OutOfMemory can be provoked and handled:
//
//	s := safestr.New(safestr.WithLimit(128))
//	if err := s.AppendBuffer(big, len(big)); errors.Is(err, safestr.ErrOutOfMemory) {
//	    // s still holds its previous content
//	}
//
// Wrap builds a borrowed String over caller memory. Borrowed Strings never
// reallocate: growth fails with NullReference while in-place operations such
// as SetAt, ToUpper or Trim work as usual.
//
// Usage
//
//	s := safestr.NewFromString("Hello")
//	defer s.Release()
//
//	_ = s.AppendCStr(safestr.CStr(", World!"))
//	_ = s.InsertChar(0, '>')
//	pos := s.FindCStr(safestr.CStr("World"), 0) // 8
//
//	buf := make([]byte, 4)
//	n, err := s.CopyToBuffer(buf) // n == 3, err is ErrBufferTooSmall
//
// Thread Safety
//
// A String is not safe for concurrent mutation. Slices returned by View and
// CStr are read-only and become stale after the next mutating call.
package safestr
