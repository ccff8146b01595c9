// File: mutate.go
// Title: Mutating String Operations
// Description: Implements capacity mutation (reserve, resize, clear, shrink),
//              assignment, concatenation, insertion, removal and indexed
//              access. Every operation validates its input before touching
//              state and leaves the String unchanged when it fails.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-02
// Modified: 2025-08-04
//
// Change History:
// - 2025-08-02 v0.1.0: Initial implementation
// - 2025-08-04 v0.1.1: Insertion copes with sources aliasing the String

package safestr

import "unsafe"

// checkSource validates a (buffer, length) pair
func checkSource(op string, buf []byte, length int) error {
	if length < 0 || length > len(buf) {
		return newError(InvalidArgument, op).
			WithDetail("length", length).
			WithDetail("buffer", len(buf))
	}
	return nil
}

// overlaps reports whether a and b share any backing memory
func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	pa := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	pb := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return pa < pb+uintptr(len(b)) && pb < pa+uintptr(len(a))
}

// terminate writes the terminator after the content
func (s *String) terminate() {
	if s.data != nil {
		s.data[s.length] = 0
	}
}

// ===============================
// Capacity mutation
// ===============================

// Reserve ensures the buffer holds at least capacity bytes. It never shrinks.
func (s *String) Reserve(capacity int) error {
	if s.absent() {
		return newError(NullReference, "Reserve")
	}
	if capacity <= len(s.data) {
		return nil
	}
	return s.ensureCapacity("Reserve", capacity)
}

// Resize sets the length to newLength. Growing zero-fills the new bytes,
// shrinking truncates logically.
func (s *String) Resize(newLength int) error {
	if s.absent() {
		return newError(NullReference, "Resize")
	}
	if newLength < 0 {
		return newError(InvalidArgument, "Resize").WithDetail("length", newLength)
	}

	if err := s.ensureCapacity("Resize", newLength+1); err != nil {
		return err
	}

	if newLength > s.length {
		clear(s.data[s.length:newLength])
	}
	s.length = newLength
	s.terminate()
	return nil
}

// Clear drops the content and keeps the capacity
func (s *String) Clear() error {
	if s.absent() {
		return newError(NullReference, "Clear")
	}
	s.length = 0
	s.terminate()
	return nil
}

// ShrinkToFit reallocates the buffer down to Len()+1 bytes when that is smaller
func (s *String) ShrinkToFit() error {
	if s.absent() || s.borrowed {
		return newError(NullReference, "ShrinkToFit")
	}
	if s.data == nil || s.length+1 >= len(s.data) {
		return nil
	}
	return s.reallocate("ShrinkToFit", s.length+1)
}

// ===============================
// Assignment
// ===============================

// AssignBuffer replaces the content with the first length bytes of buf
func (s *String) AssignBuffer(buf []byte, length int) error {
	if s.absent() {
		return newError(NullReference, "AssignBuffer")
	}
	if err := checkSource("AssignBuffer", buf, length); err != nil {
		return err
	}
	return s.assign("AssignBuffer", buf[:length])
}

// AssignCStr replaces the content with a zero-terminated source.
// An absent source clears the String.
func (s *String) AssignCStr(text CStr) error {
	if s.absent() {
		return newError(NullReference, "AssignCStr")
	}
	if text == nil {
		return s.Clear()
	}
	return s.assign("AssignCStr", text.bytes())
}

// AssignString replaces the content with a copy of other's content.
// An absent other clears the String.
func (s *String) AssignString(other *String) error {
	if s.absent() {
		return newError(NullReference, "AssignString")
	}
	if other.absent() {
		return s.Clear()
	}
	return s.assign("AssignString", other.View())
}

func (s *String) assign(op string, content []byte) error {
	if err := s.ensureCapacity(op, len(content)+1); err != nil {
		return err
	}
	copy(s.data, content)
	s.length = len(content)
	s.terminate()
	return nil
}

// ===============================
// Concatenation
// ===============================

// AppendBuffer appends the first length bytes of buf
func (s *String) AppendBuffer(buf []byte, length int) error {
	if s.absent() {
		return newError(NullReference, "AppendBuffer")
	}
	if err := checkSource("AppendBuffer", buf, length); err != nil {
		return err
	}
	return s.append("AppendBuffer", buf[:length])
}

// AppendCStr appends a zero-terminated source. An absent source is a no-op.
func (s *String) AppendCStr(text CStr) error {
	if s.absent() {
		return newError(NullReference, "AppendCStr")
	}
	if text == nil {
		return nil
	}
	return s.append("AppendCStr", text.bytes())
}

// AppendString appends other's content. An absent other is a no-op.
func (s *String) AppendString(other *String) error {
	if s.absent() {
		return newError(NullReference, "AppendString")
	}
	if other.absent() {
		return nil
	}
	return s.append("AppendString", other.View())
}

// AppendChar appends a single byte
func (s *String) AppendChar(c byte) error {
	return s.AppendBuffer([]byte{c}, 1)
}

func (s *String) append(op string, content []byte) error {
	if len(content) == 0 {
		return nil
	}

	newLength := s.length + len(content)
	if err := s.ensureCapacity(op, newLength+1); err != nil {
		return err
	}

	copy(s.data[s.length:], content)
	s.length = newLength
	s.terminate()
	return nil
}

// ===============================
// Insertion
// ===============================

// InsertBuffer inserts the first length bytes of buf at index.
// index must satisfy 0 <= index <= Len(); inserting at Len() appends.
func (s *String) InsertBuffer(index int, buf []byte, length int) error {
	if s.absent() {
		return newError(NullReference, "InsertBuffer")
	}
	if err := s.checkInsertIndex("InsertBuffer", index); err != nil {
		return err
	}
	if err := checkSource("InsertBuffer", buf, length); err != nil {
		return err
	}
	return s.insert("InsertBuffer", index, buf[:length])
}

// InsertCStr inserts a zero-terminated source at index. An absent source is a no-op.
func (s *String) InsertCStr(index int, text CStr) error {
	if s.absent() {
		return newError(NullReference, "InsertCStr")
	}
	if text == nil {
		return nil
	}
	if err := s.checkInsertIndex("InsertCStr", index); err != nil {
		return err
	}
	return s.insert("InsertCStr", index, text.bytes())
}

// InsertString inserts other's content at index. An absent other is a no-op.
func (s *String) InsertString(index int, other *String) error {
	if s.absent() {
		return newError(NullReference, "InsertString")
	}
	if other.absent() {
		return nil
	}
	if err := s.checkInsertIndex("InsertString", index); err != nil {
		return err
	}
	return s.insert("InsertString", index, other.View())
}

// InsertChar inserts a single byte at index
func (s *String) InsertChar(index int, c byte) error {
	return s.InsertBuffer(index, []byte{c}, 1)
}

func (s *String) checkInsertIndex(op string, index int) error {
	if index < 0 || index > s.length {
		return newError(InvalidIndex, op).
			WithDetail("index", index).
			WithDetail("length", s.length)
	}
	return nil
}

func (s *String) insert(op string, index int, content []byte) error {
	n := len(content)
	if n == 0 {
		return nil
	}

	// The tail shift below would overwrite a source that lives inside our own buffer.
	if overlaps(content, s.data) {
		content = append([]byte(nil), content...)
	}

	newLength := s.length + n
	if err := s.ensureCapacity(op, newLength+1); err != nil {
		return err
	}

	if index < s.length {
		copy(s.data[index+n:], s.data[index:s.length])
	}
	copy(s.data[index:], content)
	s.length = newLength
	s.terminate()
	return nil
}

// ===============================
// Removal
// ===============================

// Erase removes up to count bytes starting at index.
// index must be a valid content position, even when count is 0.
func (s *String) Erase(index, count int) error {
	if s.absent() {
		return newError(NullReference, "Erase")
	}
	if index < 0 || index >= s.length {
		return newError(InvalidIndex, "Erase").
			WithDetail("index", index).
			WithDetail("length", s.length)
	}
	if count < 0 {
		return newError(InvalidArgument, "Erase").WithDetail("count", count)
	}
	if count == 0 {
		return nil
	}

	if count > s.length-index {
		count = s.length - index
	}

	copy(s.data[index:], s.data[index+count:s.length])
	s.length -= count
	s.terminate()
	return nil
}

// PopBack removes the last byte
func (s *String) PopBack() error {
	if s.absent() || s.length == 0 {
		return newError(InvalidIndex, "PopBack").WithDetail("length", s.Len())
	}
	s.length--
	s.terminate()
	return nil
}

// ===============================
// Indexed access
// ===============================

// At returns the byte at index, or 0 when index is out of range
func (s *String) At(index int) byte {
	if s.absent() || index < 0 || index >= s.length {
		return 0
	}
	return s.data[index]
}

// SetAt overwrites the byte at index in place
func (s *String) SetAt(index int, c byte) error {
	if s.absent() {
		return newError(NullReference, "SetAt")
	}
	if index < 0 || index >= s.length {
		return newError(InvalidIndex, "SetAt").
			WithDetail("index", index).
			WithDetail("length", s.length)
	}
	s.data[index] = c
	return nil
}
