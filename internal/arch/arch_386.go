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

package arch

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// HasDoubleWord is always true: CMPXCHG8B predates every processor Go
// supports on 386.
const HasDoubleWord = true

var hasSSE2 = cpu.X86.HasSSE2

// CompilerBarrier is an empty routine. The compiler keeps memory accesses on
// their side of any call it cannot see through.
func CompilerBarrier()

// Pause issues PAUSE, the spin-wait hint.
func Pause()

// Load8 reads *ptr with a single MOVB.
//
//go:noescape
func Load8(ptr *uint8) uint8

//go:noescape
func Store8(ptr *uint8, val uint8)

//go:noescape
func Xchg8(ptr *uint8, new uint8) (old uint8)

//go:noescape
func Xadd8(ptr *uint8, delta uint8) (old uint8)

//go:noescape
func Load16(ptr *uint16) uint16

//go:noescape
func Store16(ptr *uint16, val uint16)

//go:noescape
func Xchg16(ptr *uint16, new uint16) (old uint16)

//go:noescape
func Xadd16(ptr *uint16, delta uint16) (old uint16)

func lfence()
func sfence()
func mfence()
func lockedFence()

// CasValue8 runs LOCK CMPXCHG. prev is the accumulator after the
// instruction: old on success, the current contents on failure.
//
//go:noescape
func CasValue8(ptr *uint8, old, new uint8) (prev uint8, swapped bool)

//go:noescape
func CasValue16(ptr *uint16, old, new uint16) (prev uint16, swapped bool)

//go:noescape
func CasValue32(ptr *uint32, old, new uint32) (prev uint32, swapped bool)

// The ...Zero forms report ZF as left by the locked instruction.
//
//go:noescape
func Inc8(ptr *uint8)

//go:noescape
func IncZero8(ptr *uint8) (zero bool)

//go:noescape
func Dec8(ptr *uint8)

//go:noescape
func DecZero8(ptr *uint8) (zero bool)

//go:noescape
func Neg8(ptr *uint8)

//go:noescape
func NegZero8(ptr *uint8) (zero bool)

// Not8 has no zero form: NOT does not write the flags.
//
//go:noescape
func Not8(ptr *uint8)

//go:noescape
func Add8(ptr *uint8, val uint8)

//go:noescape
func AddZero8(ptr *uint8, val uint8) (zero bool)

//go:noescape
func Sub8(ptr *uint8, val uint8)

//go:noescape
func SubZero8(ptr *uint8, val uint8) (zero bool)

//go:noescape
func And8(ptr *uint8, val uint8)

//go:noescape
func AndZero8(ptr *uint8, val uint8) (zero bool)

//go:noescape
func Or8(ptr *uint8, val uint8)

//go:noescape
func OrZero8(ptr *uint8, val uint8) (zero bool)

//go:noescape
func Xor8(ptr *uint8, val uint8)

//go:noescape
func XorZero8(ptr *uint8, val uint8) (zero bool)

//go:noescape
func Inc16(ptr *uint16)

//go:noescape
func IncZero16(ptr *uint16) (zero bool)

//go:noescape
func Dec16(ptr *uint16)

//go:noescape
func DecZero16(ptr *uint16) (zero bool)

//go:noescape
func Neg16(ptr *uint16)

//go:noescape
func NegZero16(ptr *uint16) (zero bool)

//go:noescape
func Not16(ptr *uint16)

//go:noescape
func Add16(ptr *uint16, val uint16)

//go:noescape
func AddZero16(ptr *uint16, val uint16) (zero bool)

//go:noescape
func Sub16(ptr *uint16, val uint16)

//go:noescape
func SubZero16(ptr *uint16, val uint16) (zero bool)

//go:noescape
func And16(ptr *uint16, val uint16)

//go:noescape
func AndZero16(ptr *uint16, val uint16) (zero bool)

//go:noescape
func Or16(ptr *uint16, val uint16)

//go:noescape
func OrZero16(ptr *uint16, val uint16) (zero bool)

//go:noescape
func Xor16(ptr *uint16, val uint16)

//go:noescape
func XorZero16(ptr *uint16, val uint16) (zero bool)

//go:noescape
func Inc32(ptr *uint32)

//go:noescape
func IncZero32(ptr *uint32) (zero bool)

//go:noescape
func Dec32(ptr *uint32)

//go:noescape
func DecZero32(ptr *uint32) (zero bool)

//go:noescape
func Neg32(ptr *uint32)

//go:noescape
func NegZero32(ptr *uint32) (zero bool)

//go:noescape
func Not32(ptr *uint32)

//go:noescape
func Add32(ptr *uint32, val uint32)

//go:noescape
func AddZero32(ptr *uint32, val uint32) (zero bool)

//go:noescape
func Sub32(ptr *uint32, val uint32)

//go:noescape
func SubZero32(ptr *uint32, val uint32) (zero bool)

//go:noescape
func And32(ptr *uint32, val uint32)

//go:noescape
func AndZero32(ptr *uint32, val uint32) (zero bool)

//go:noescape
func Or32(ptr *uint32, val uint32)

//go:noescape
func OrZero32(ptr *uint32, val uint32) (zero bool)

//go:noescape
func Xor32(ptr *uint32, val uint32)

//go:noescape
func XorZero32(ptr *uint32, val uint32) (zero bool)

// The bit routines return CF, the value of the bit before the
// instruction. bit must be below the operand width.
//
//go:noescape
func Bts16(ptr *uint16, bit uint32) (prior bool)

//go:noescape
func Btr16(ptr *uint16, bit uint32) (prior bool)

//go:noescape
func Btc16(ptr *uint16, bit uint32) (prior bool)

//go:noescape
func Bts32(ptr *uint32, bit uint32) (prior bool)

//go:noescape
func Btr32(ptr *uint32, bit uint32) (prior bool)

//go:noescape
func Btc32(ptr *uint32, bit uint32) (prior bool)

// CasValue64 runs LOCK CMPXCHG8B: a 64-bit compare-and-swap built from the
// two-word exchange, since no general register holds 64 bits here.
//
//go:noescape
func CasValue64(ptr *uint64, old, new uint64) (prev uint64, swapped bool)

// CasValue64Staged is CasValue64 for position-independent builds: the low
// half of the desired value is read from s.Lo and EBX is saved through
// s.Saved.
//
//go:noescape
func CasValue64Staged(ptr *uint64, old uint64, newHi uint32, s *Scratch) (prev uint64, swapped bool)


// LoadFence issues LFENCE, or a locked no-op add on processors without SSE2.
func LoadFence() {
	if hasSSE2 {
		lfence()
		return
	}
	lockedFence()
}

// StoreFence issues SFENCE, or a locked no-op add on processors without SSE2.
func StoreFence() {
	if hasSSE2 {
		sfence()
		return
	}
	lockedFence()
}

// MemoryFence issues MFENCE, or a locked no-op add on processors without SSE2.
func MemoryFence() {
	if hasSSE2 {
		mfence()
		return
	}
	lockedFence()
}

// 64-bit read-modify-write. There is no 64-bit general register, so these
// are either sync/atomic calls (which use CMPXCHG8B underneath) or
// compare-and-swap loops over CasValue64. ptr must be 8-byte aligned.

func Inc64(ptr *uint64)             { atomic.AddUint64(ptr, 1) }
func IncZero64(ptr *uint64) bool    { return atomic.AddUint64(ptr, 1) == 0 }
func Dec64(ptr *uint64)             { atomic.AddUint64(ptr, ^uint64(0)) }
func DecZero64(ptr *uint64) bool    { return atomic.AddUint64(ptr, ^uint64(0)) == 0 }
func Neg64(ptr *uint64)             { update64(ptr, func(v uint64) uint64 { return -v }) }
func NegZero64(ptr *uint64) bool    { return update64(ptr, func(v uint64) uint64 { return -v }) == 0 }
func Not64(ptr *uint64)             { update64(ptr, func(v uint64) uint64 { return ^v }) }
func Add64(ptr *uint64, val uint64) { atomic.AddUint64(ptr, val) }
func Sub64(ptr *uint64, val uint64) { atomic.AddUint64(ptr, -val) }
func And64(ptr *uint64, val uint64) { atomic.AndUint64(ptr, val) }
func Or64(ptr *uint64, val uint64)  { atomic.OrUint64(ptr, val) }
func Xor64(ptr *uint64, val uint64) { update64(ptr, func(v uint64) uint64 { return v ^ val }) }

func AddZero64(ptr *uint64, val uint64) bool { return atomic.AddUint64(ptr, val) == 0 }
func SubZero64(ptr *uint64, val uint64) bool { return atomic.AddUint64(ptr, -val) == 0 }
func AndZero64(ptr *uint64, val uint64) bool { return atomic.AndUint64(ptr, val)&val == 0 }
func OrZero64(ptr *uint64, val uint64) bool  { return atomic.OrUint64(ptr, val)|val == 0 }

func XorZero64(ptr *uint64, val uint64) bool {
	return update64(ptr, func(v uint64) uint64 { return v ^ val }) == 0
}

// Cas64 is the 64-bit compare-and-swap used by everything above this
// package. In position-independent builds the low half of new is written to
// a Scratch slot with the single-width store and the staged form runs.
func Cas64(ptr *uint64, old, new uint64) (prev uint64, swapped bool) {
	if PIC {
		var s Scratch
		atomic.StoreUintptr(&s.Lo, uintptr(uint32(new)))
		return CasValue64Staged(ptr, old, uint32(new>>32), &s)
	}
	return CasValue64(ptr, old, new)
}

// update64 applies f until the exchange lands and returns the value stored.
func update64(ptr *uint64, f func(uint64) uint64) uint64 {
	old := atomic.LoadUint64(ptr)
	for {
		next := f(old)
		prev, ok := Cas64(ptr, old, next)
		if ok {
			return next
		}
		old = prev
	}
}

// The 64-bit bit routines lock the 32-bit half that holds the bit. 386 is
// little-endian, so bits 32..63 live in the second half.

func half(ptr *uint64, bit uint32) *uint32 {
	return (*uint32)(unsafe.Add(unsafe.Pointer(ptr), uintptr(bit>>5&1)*4))
}

func Bts64(ptr *uint64, bit uint32) bool { return Bts32(half(ptr, bit), bit&31) }
func Btr64(ptr *uint64, bit uint32) bool { return Btr32(half(ptr, bit), bit&31) }
func Btc64(ptr *uint64, bit uint32) bool { return Btc32(half(ptr, bit), bit&31) }
