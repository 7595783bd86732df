/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package shm

import (
	"fmt"
	"math/bits"

	"github.com/srediag/shmatomic/pkg/pr"
)

// Slots is a pool of fixed-size slots laid out inside a region: a bitmap of
// 64-bit words, one bit per slot, followed by the slots themselves. Every
// process that maps the region and builds Slots with the same parameters
// shares the pool. Allocation sets a bit with BitTestAndSet64, so two
// processes can never win the same slot.
type Slots struct {
	region *Region
	bitmap uintptr
	base   uintptr
	size   uintptr
	count  int
}

func bitmapWords(count int) int { return (count + 63) / 64 }

func slotAlign(size uintptr) uintptr {
	if size >= 16 {
		return 16
	}
	return 8
}

func alignUp(v, a uintptr) uintptr { return (v + a - 1) &^ (a - 1) }

// SlotsSize returns how many bytes, starting at an 8-byte aligned offset,
// a pool of count slots of slotSize bytes occupies.
func SlotsSize(slotSize uintptr, count int) uintptr {
	head := uintptr(bitmapWords(count)) * 8
	return alignUp(head, slotAlign(slotSize)) + slotSize*uintptr(count)
}

// NewSlots lays out a pool at off. The bitmap is not cleared: a fresh
// region is zero, and an existing pool is adopted as it is.
func NewSlots(r *Region, off uintptr, slotSize uintptr, count int) (*Slots, error) {
	if slotSize == 0 || count <= 0 {
		return nil, fmt.Errorf("%d slots of %d bytes: %w", count, slotSize, ErrInvalidSize)
	}
	if off%8 != 0 {
		return nil, fmt.Errorf("pool offset %d: %w", off, ErrMisaligned)
	}
	end := off + SlotsSize(slotSize, count)
	if end > uintptr(r.Size()) {
		return nil, fmt.Errorf("pool needs %d bytes at %d, region has %d: %w", end-off, off, r.Size(), ErrOutOfRange)
	}
	s := &Slots{
		region: r,
		bitmap: off,
		base:   alignUp(off+uintptr(bitmapWords(count))*8, slotAlign(slotSize)),
		size:   slotSize,
		count:  count,
	}
	return s, nil
}

func (s *Slots) word(i int) (*uint64, error) {
	return s.region.Uint64(s.bitmap + uintptr(i)*8)
}

// Alloc claims a free slot and returns its offset in the region.
func (s *Slots) Alloc() (uintptr, error) {
	for i := 0; i < bitmapWords(s.count); i++ {
		w, err := s.word(i)
		if err != nil {
			return 0, err
		}
		for {
			free := ^pr.Load64(w)
			if free == 0 {
				break
			}
			bit := bits.TrailingZeros64(free)
			idx := i*64 + bit
			if idx >= s.count {
				break
			}
			if !pr.BitTestAndSet64(w, uint(bit)) {
				return s.base + uintptr(idx)*s.size, nil
			}
			// Lost the bit to another allocator; look again.
		}
	}
	return 0, fmt.Errorf("all %d slots in use: %w", s.count, ErrNotEnoughSpace)
}

// Free releases the slot at off.
func (s *Slots) Free(off uintptr) error {
	if off < s.base || (off-s.base)%s.size != 0 || int((off-s.base)/s.size) >= s.count {
		return fmt.Errorf("offset %d is not a slot: %w", off, ErrOutOfRange)
	}
	idx := int((off - s.base) / s.size)
	w, err := s.word(idx / 64)
	if err != nil {
		return err
	}
	if !pr.BitTestAndReset64(w, uint(idx%64)) {
		return fmt.Errorf("slot %d: %w", idx, ErrNotAllocated)
	}
	return nil
}

// Stats returns the number of slots in use and free.
func (s *Slots) Stats() (used, free int, err error) {
	for i := 0; i < bitmapWords(s.count); i++ {
		w, err := s.word(i)
		if err != nil {
			return 0, 0, err
		}
		used += bits.OnesCount64(pr.Load64(w))
	}
	return used, s.count - used, nil
}

// Len returns the number of slots in the pool.
func (s *Slots) Len() int { return s.count }
