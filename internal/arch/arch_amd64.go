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

	"golang.org/x/sys/cpu"
)

// HasDoubleWord reports whether CMPXCHG16B is available. Early amd64
// processors lack it; CasValue128 faults there.
var HasDoubleWord = cpu.X86.HasCX16

// CompilerBarrier is an empty routine. The compiler keeps memory accesses on
// their side of any call it cannot see through.
func CompilerBarrier()

// LoadFence issues LFENCE.
func LoadFence()

// StoreFence issues SFENCE.
func StoreFence()

// MemoryFence issues MFENCE.
func MemoryFence()

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

// CasValue8 runs LOCK CMPXCHG. prev is the accumulator after the
// instruction: old on success, the current contents on failure.
//
//go:noescape
func CasValue8(ptr *uint8, old, new uint8) (prev uint8, swapped bool)

//go:noescape
func CasValue16(ptr *uint16, old, new uint16) (prev uint16, swapped bool)

//go:noescape
func CasValue32(ptr *uint32, old, new uint32) (prev uint32, swapped bool)

//go:noescape
func CasValue64(ptr *uint64, old, new uint64) (prev uint64, swapped bool)

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

//go:noescape
func Inc64(ptr *uint64)

//go:noescape
func IncZero64(ptr *uint64) (zero bool)

//go:noescape
func Dec64(ptr *uint64)

//go:noescape
func DecZero64(ptr *uint64) (zero bool)

//go:noescape
func Neg64(ptr *uint64)

//go:noescape
func NegZero64(ptr *uint64) (zero bool)

//go:noescape
func Not64(ptr *uint64)

//go:noescape
func Add64(ptr *uint64, val uint64)

//go:noescape
func AddZero64(ptr *uint64, val uint64) (zero bool)

//go:noescape
func Sub64(ptr *uint64, val uint64)

//go:noescape
func SubZero64(ptr *uint64, val uint64) (zero bool)

//go:noescape
func And64(ptr *uint64, val uint64)

//go:noescape
func AndZero64(ptr *uint64, val uint64) (zero bool)

//go:noescape
func Or64(ptr *uint64, val uint64)

//go:noescape
func OrZero64(ptr *uint64, val uint64) (zero bool)

//go:noescape
func Xor64(ptr *uint64, val uint64)

//go:noescape
func XorZero64(ptr *uint64, val uint64) (zero bool)

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

//go:noescape
func Bts64(ptr *uint64, bit uint32) (prior bool)

//go:noescape
func Btr64(ptr *uint64, bit uint32) (prior bool)

//go:noescape
func Btc64(ptr *uint64, bit uint32) (prior bool)

// CasValue128 runs LOCK CMPXCHG16B on the 16-byte aligned pair at ptr.
//
//go:noescape
func CasValue128(ptr *[2]uint64, oldLo, oldHi, newLo, newHi uint64) (prevLo, prevHi uint64, swapped bool)

// CasValue128Staged is CasValue128 with the low half of the desired value
// taken from s.Lo and RBX saved through s.Saved.
//
//go:noescape
func CasValue128Staged(ptr *[2]uint64, oldLo, oldHi, newHi uint64, s *Scratch) (prevLo, prevHi uint64, swapped bool)

// Cas128 is the 128-bit compare-and-swap used by everything above this
// package. In position-independent builds the low half of new is written to
// a Scratch slot with the single-width store and the staged form runs.
func Cas128(ptr *[2]uint64, old, new [2]uint64) (prev [2]uint64, swapped bool) {
	if PIC {
		var s Scratch
		atomic.StoreUintptr(&s.Lo, uintptr(new[0]))
		prev[0], prev[1], swapped = CasValue128Staged(ptr, old[0], old[1], new[1], &s)
		return prev, swapped
	}
	prev[0], prev[1], swapped = CasValue128(ptr, old[0], old[1], new[0], new[1])
	return prev, swapped
}

// Cas64 is the 64-bit compare-and-swap used by everything above this
// package. A single-word exchange needs no staging.
func Cas64(ptr *uint64, old, new uint64) (prev uint64, swapped bool) {
	return CasValue64(ptr, old, new)
}
