// File: capacity.go
// Title: Capacity Manager
// Description: Implements the grow-to-fit doubling policy and the single
//              reallocation path used by every mutating String operation,
//              together with the pluggable Allocator that backs it.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-02
// Modified: 2025-08-09
//
// Change History:
// - 2025-08-02 v0.1.0: Initial implementation
// - 2025-08-09 v0.1.1: MaxCapacity ceiling and wrapped-length guard

package safestr

import (
	"errors"
	"math"
)

const (
	// DefaultCapacity is the initial buffer size of a new String
	DefaultCapacity = 64

	// GrowthFactor is the multiplier applied to the capacity on growth
	GrowthFactor = 2

	// MaxCapacity is the largest buffer HeapAllocator hands out
	MaxCapacity = math.MaxInt32
)

// ErrAllocationRefused is returned by HeapAllocator when a request exceeds its limit
var ErrAllocationRefused = errors.New("allocation refused: size exceeds limit")

// Allocator provides backing buffers for Strings.
// Allocate must return a slice with len == size or an error.
type Allocator interface {
	Allocate(size int) ([]byte, error)
}

// HeapAllocator allocates from the Go heap.
// A positive Limit caps the size of any single buffer; sizes above
// MaxCapacity are always refused.
type HeapAllocator struct {
	Limit int
}

// Allocate returns a zeroed buffer of the requested size
func (h HeapAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 || size > MaxCapacity || (h.Limit > 0 && size > h.Limit) {
		return nil, ErrAllocationRefused
	}
	return make([]byte, size), nil
}

// AllocatorFunc adapts a function to the Allocator interface
type AllocatorFunc func(size int) ([]byte, error)

// Allocate calls f(size)
func (f AllocatorFunc) Allocate(size int) ([]byte, error) {
	return f(size)
}

// defaultAllocator is used when no allocator option is given
var defaultAllocator Allocator = HeapAllocator{}

// grow returns the smallest current*GrowthFactor^k (k >= 0) that is >= required.
// Doubling that would overflow clamps to required.
func grow(current, required int) int {
	if current < 1 {
		current = DefaultCapacity
	}
	for current < required {
		if current > math.MaxInt/GrowthFactor {
			return required
		}
		current *= GrowthFactor
	}
	return current
}

// allocator returns the allocator of s, falling back to the default one
func (s *String) allocator() Allocator {
	if s.alloc == nil {
		return defaultAllocator
	}
	return s.alloc
}

// ensureCapacity makes room for at least required bytes (terminator included).
// On failure the existing buffer and content are left untouched.
func (s *String) ensureCapacity(op string, required int) error {
	// A negative requirement is a length computation that wrapped around.
	if required < 0 {
		return newError(OutOfMemory, op).
			WithDetail("requested", required).
			WithDetail("capacity", len(s.data))
	}
	if len(s.data) >= required {
		return nil
	}

	if s.borrowed {
		return newError(NullReference, op).
			WithDetail("reason", "borrowed buffer cannot grow").
			WithDetail("requested", required)
	}

	newCapacity := grow(len(s.data), required)
	return s.reallocate(op, newCapacity)
}

// reallocate moves the content into a fresh buffer of exactly capacity bytes
func (s *String) reallocate(op string, capacity int) error {
	buf, err := s.allocator().Allocate(capacity)
	if err != nil || len(buf) < capacity {
		return newError(OutOfMemory, op).
			WithDetail("requested", capacity).
			WithDetail("capacity", len(s.data))
	}
	buf = buf[:capacity]

	copy(buf, s.data[:s.length])
	buf[s.length] = 0
	s.data = buf
	return nil
}
