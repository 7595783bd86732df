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

//go:build !386 && !amd64

package arch

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// lane locates a narrow value inside the aligned 32-bit word that contains
// it. Heap objects are at least word sized, so the containing word never
// leaves the allocation.
type lane struct {
	word  *uint32
	shift uint32
	mask  uint32
}

func laneOf(p unsafe.Pointer, size uintptr) lane {
	off := uintptr(p) & 3
	shift := off * 8
	if cpu.IsBigEndian {
		shift = (4 - size - off) * 8
	}
	return lane{
		word:  (*uint32)(unsafe.Add(p, -int(off))),
		shift: uint32(shift),
		mask:  uint32(1<<(size*8)-1) << shift,
	}
}

func (l lane) load() uint32 {
	return (atomic.LoadUint32(l.word) & l.mask) >> l.shift
}

// update replaces the lane with f(current) and returns the value it held.
func (l lane) update(f func(uint32) uint32) uint32 {
	for {
		cur := atomic.LoadUint32(l.word)
		v := (cur & l.mask) >> l.shift
		next := cur&^l.mask | (f(v)<<l.shift)&l.mask
		if atomic.CompareAndSwapUint32(l.word, cur, next) {
			return v
		}
	}
}

// cas swaps the lane from old to new. On failure it returns the value that
// did not match.
func (l lane) cas(old, new uint32) (uint32, bool) {
	for {
		cur := atomic.LoadUint32(l.word)
		v := (cur & l.mask) >> l.shift
		if v != old {
			return v, false
		}
		next := cur&^l.mask | new<<l.shift
		// A neighbouring lane may have changed; retry without giving up.
		if atomic.CompareAndSwapUint32(l.word, cur, next) {
			return old, true
		}
	}
}

func (l lane) and(val uint32) uint32 {
	return (atomic.AndUint32(l.word, val<<l.shift|^l.mask) & l.mask) >> l.shift
}

func (l lane) or(val uint32) uint32 {
	return (atomic.OrUint32(l.word, val<<l.shift) & l.mask) >> l.shift
}

func lane8(p *uint8) lane   { return laneOf(unsafe.Pointer(p), 1) }
func lane16(p *uint16) lane { return laneOf(unsafe.Pointer(p), 2) }
