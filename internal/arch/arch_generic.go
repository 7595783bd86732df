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

import "sync/atomic"

// HasDoubleWord is false: the portable implementation has no two-word
// compare-and-swap.
const HasDoubleWord = false

// CompilerBarrier is an opaque call.
//
//go:noinline
func CompilerBarrier() {}

// fence is a read-modify-write on a word of its own frame. sync/atomic
// operations are sequentially consistent on every GOARCH, and a local word
// keeps cores from contending on a shared line.
func fence() {
	var w uint32
	atomic.AddUint32(&w, 0)
}

func LoadFence()   { fence() }
func StoreFence()  { fence() }
func MemoryFence() { fence() }

// Weakly ordered processors reorder ordinary accesses, so the relaxed
// barriers are full fences here.
func LoadBarrier()   { fence() }
func StoreBarrier()  { fence() }
func MemoryBarrier() { fence() }

// Pause has no portable equivalent.
//
//go:noinline
func Pause() {}

// Narrow words are emulated on their containing 32-bit word; see subword.go.

func Load8(ptr *uint8) uint8 { return uint8(lane8(ptr).load()) }

func Store8(ptr *uint8, val uint8) {
	lane8(ptr).update(func(uint32) uint32 { return uint32(val) })
}

func Xchg8(ptr *uint8, new uint8) uint8 {
	return uint8(lane8(ptr).update(func(uint32) uint32 { return uint32(new) }))
}

func Xadd8(ptr *uint8, delta uint8) uint8 {
	return uint8(lane8(ptr).update(func(v uint32) uint32 { return v + uint32(delta) }))
}

func CasValue8(ptr *uint8, old, new uint8) (uint8, bool) {
	prev, ok := lane8(ptr).cas(uint32(old), uint32(new))
	return uint8(prev), ok
}

func Inc8(ptr *uint8) { lane8(ptr).update(func(v uint32) uint32 { return v + 1 }) }

func IncZero8(ptr *uint8) bool {
	v := lane8(ptr).update(func(v uint32) uint32 { return v + 1 })
	return uint8(v + 1) == 0
}

func Dec8(ptr *uint8) { lane8(ptr).update(func(v uint32) uint32 { return v - 1 }) }

func DecZero8(ptr *uint8) bool {
	v := lane8(ptr).update(func(v uint32) uint32 { return v - 1 })
	return uint8(v - 1) == 0
}

func Neg8(ptr *uint8) { lane8(ptr).update(func(v uint32) uint32 { return -v }) }

func NegZero8(ptr *uint8) bool {
	v := lane8(ptr).update(func(v uint32) uint32 { return -v })
	return uint8(-v) == 0
}

func Not8(ptr *uint8) { lane8(ptr).update(func(v uint32) uint32 { return ^v }) }

func Add8(ptr *uint8, val uint8) {
	lane8(ptr).update(func(v uint32) uint32 { return v + uint32(val) })
}

func AddZero8(ptr *uint8, val uint8) bool {
	v := lane8(ptr).update(func(v uint32) uint32 { return v + uint32(val) })
	return uint8(v + uint32(val)) == 0
}

func Sub8(ptr *uint8, val uint8) {
	lane8(ptr).update(func(v uint32) uint32 { return v - uint32(val) })
}

func SubZero8(ptr *uint8, val uint8) bool {
	v := lane8(ptr).update(func(v uint32) uint32 { return v - uint32(val) })
	return uint8(v - uint32(val)) == 0
}

func Xor8(ptr *uint8, val uint8) {
	lane8(ptr).update(func(v uint32) uint32 { return v ^ uint32(val) })
}

func XorZero8(ptr *uint8, val uint8) bool {
	v := lane8(ptr).update(func(v uint32) uint32 { return v ^ uint32(val) })
	return uint8(v ^ uint32(val)) == 0
}

func And8(ptr *uint8, val uint8) { lane8(ptr).and(uint32(val)) }

func AndZero8(ptr *uint8, val uint8) bool {
	v := lane8(ptr).and(uint32(val))
	return uint8(v&uint32(val)) == 0
}

func Or8(ptr *uint8, val uint8) { lane8(ptr).or(uint32(val)) }

func OrZero8(ptr *uint8, val uint8) bool {
	v := lane8(ptr).or(uint32(val))
	return uint8(v|uint32(val)) == 0
}

func Load16(ptr *uint16) uint16 { return uint16(lane16(ptr).load()) }

func Store16(ptr *uint16, val uint16) {
	lane16(ptr).update(func(uint32) uint32 { return uint32(val) })
}

func Xchg16(ptr *uint16, new uint16) uint16 {
	return uint16(lane16(ptr).update(func(uint32) uint32 { return uint32(new) }))
}

func Xadd16(ptr *uint16, delta uint16) uint16 {
	return uint16(lane16(ptr).update(func(v uint32) uint32 { return v + uint32(delta) }))
}

func CasValue16(ptr *uint16, old, new uint16) (uint16, bool) {
	prev, ok := lane16(ptr).cas(uint32(old), uint32(new))
	return uint16(prev), ok
}

func Inc16(ptr *uint16) { lane16(ptr).update(func(v uint32) uint32 { return v + 1 }) }

func IncZero16(ptr *uint16) bool {
	v := lane16(ptr).update(func(v uint32) uint32 { return v + 1 })
	return uint16(v + 1) == 0
}

func Dec16(ptr *uint16) { lane16(ptr).update(func(v uint32) uint32 { return v - 1 }) }

func DecZero16(ptr *uint16) bool {
	v := lane16(ptr).update(func(v uint32) uint32 { return v - 1 })
	return uint16(v - 1) == 0
}

func Neg16(ptr *uint16) { lane16(ptr).update(func(v uint32) uint32 { return -v }) }

func NegZero16(ptr *uint16) bool {
	v := lane16(ptr).update(func(v uint32) uint32 { return -v })
	return uint16(-v) == 0
}

func Not16(ptr *uint16) { lane16(ptr).update(func(v uint32) uint32 { return ^v }) }

func Add16(ptr *uint16, val uint16) {
	lane16(ptr).update(func(v uint32) uint32 { return v + uint32(val) })
}

func AddZero16(ptr *uint16, val uint16) bool {
	v := lane16(ptr).update(func(v uint32) uint32 { return v + uint32(val) })
	return uint16(v + uint32(val)) == 0
}

func Sub16(ptr *uint16, val uint16) {
	lane16(ptr).update(func(v uint32) uint32 { return v - uint32(val) })
}

func SubZero16(ptr *uint16, val uint16) bool {
	v := lane16(ptr).update(func(v uint32) uint32 { return v - uint32(val) })
	return uint16(v - uint32(val)) == 0
}

func Xor16(ptr *uint16, val uint16) {
	lane16(ptr).update(func(v uint32) uint32 { return v ^ uint32(val) })
}

func XorZero16(ptr *uint16, val uint16) bool {
	v := lane16(ptr).update(func(v uint32) uint32 { return v ^ uint32(val) })
	return uint16(v ^ uint32(val)) == 0
}

func And16(ptr *uint16, val uint16) { lane16(ptr).and(uint32(val)) }

func AndZero16(ptr *uint16, val uint16) bool {
	v := lane16(ptr).and(uint32(val))
	return uint16(v&uint32(val)) == 0
}

func Or16(ptr *uint16, val uint16) { lane16(ptr).or(uint32(val)) }

func OrZero16(ptr *uint16, val uint16) bool {
	v := lane16(ptr).or(uint32(val))
	return uint16(v|uint32(val)) == 0
}

// Full words use sync/atomic directly where it has the operation and a
// compare-and-swap loop where it does not.

func CasValue32(ptr *uint32, old, new uint32) (uint32, bool) {
	for {
		cur := atomic.LoadUint32(ptr)
		if cur != old {
			return cur, false
		}
		if atomic.CompareAndSwapUint32(ptr, old, new) {
			return old, true
		}
	}
}

// update32 applies f until the exchange lands and returns the prior value.
func update32(ptr *uint32, f func(uint32) uint32) uint32 {
	for {
		old := atomic.LoadUint32(ptr)
		if atomic.CompareAndSwapUint32(ptr, old, f(old)) {
			return old
		}
	}
}

func Inc32(ptr *uint32)          { atomic.AddUint32(ptr, 1) }
func IncZero32(ptr *uint32) bool { return atomic.AddUint32(ptr, 1) == 0 }
func Dec32(ptr *uint32)          { atomic.AddUint32(ptr, ^uint32(0)) }
func DecZero32(ptr *uint32) bool { return atomic.AddUint32(ptr, ^uint32(0)) == 0 }
func Neg32(ptr *uint32)          { update32(ptr, func(v uint32) uint32 { return -v }) }
func NegZero32(ptr *uint32) bool { return update32(ptr, func(v uint32) uint32 { return -v }) == 0 }
func Not32(ptr *uint32)          { update32(ptr, func(v uint32) uint32 { return ^v }) }

func Add32(ptr *uint32, val uint32) { atomic.AddUint32(ptr, val) }
func Sub32(ptr *uint32, val uint32) { atomic.AddUint32(ptr, -val) }
func And32(ptr *uint32, val uint32) { atomic.AndUint32(ptr, val) }
func Or32(ptr *uint32, val uint32)  { atomic.OrUint32(ptr, val) }
func Xor32(ptr *uint32, val uint32) { update32(ptr, func(v uint32) uint32 { return v ^ val }) }

func AddZero32(ptr *uint32, val uint32) bool { return atomic.AddUint32(ptr, val) == 0 }
func SubZero32(ptr *uint32, val uint32) bool { return atomic.AddUint32(ptr, -val) == 0 }
func AndZero32(ptr *uint32, val uint32) bool { return atomic.AndUint32(ptr, val)&val == 0 }
func OrZero32(ptr *uint32, val uint32) bool  { return atomic.OrUint32(ptr, val)|val == 0 }

func XorZero32(ptr *uint32, val uint32) bool {
	return update32(ptr, func(v uint32) uint32 { return v ^ val })^val == 0
}

func CasValue64(ptr *uint64, old, new uint64) (uint64, bool) {
	for {
		cur := atomic.LoadUint64(ptr)
		if cur != old {
			return cur, false
		}
		if atomic.CompareAndSwapUint64(ptr, old, new) {
			return old, true
		}
	}
}

// update64 applies f until the exchange lands and returns the prior value.
func update64(ptr *uint64, f func(uint64) uint64) uint64 {
	for {
		old := atomic.LoadUint64(ptr)
		if atomic.CompareAndSwapUint64(ptr, old, f(old)) {
			return old
		}
	}
}

func Inc64(ptr *uint64)          { atomic.AddUint64(ptr, 1) }
func IncZero64(ptr *uint64) bool { return atomic.AddUint64(ptr, 1) == 0 }
func Dec64(ptr *uint64)          { atomic.AddUint64(ptr, ^uint64(0)) }
func DecZero64(ptr *uint64) bool { return atomic.AddUint64(ptr, ^uint64(0)) == 0 }
func Neg64(ptr *uint64)          { update64(ptr, func(v uint64) uint64 { return -v }) }
func NegZero64(ptr *uint64) bool { return update64(ptr, func(v uint64) uint64 { return -v }) == 0 }
func Not64(ptr *uint64)          { update64(ptr, func(v uint64) uint64 { return ^v }) }

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
	return update64(ptr, func(v uint64) uint64 { return v ^ val })^val == 0
}

func Bts16(ptr *uint16, bit uint32) bool {
	m := uint32(1) << bit
	return lane16(ptr).or(m)&m != 0
}

func Btr16(ptr *uint16, bit uint32) bool {
	m := uint32(1) << bit
	return lane16(ptr).and(^m&0xffff)&m != 0
}

func Btc16(ptr *uint16, bit uint32) bool {
	m := uint32(1) << bit
	return lane16(ptr).update(func(v uint32) uint32 { return v ^ m })&m != 0
}

func Bts32(ptr *uint32, bit uint32) bool {
	m := uint32(1) << bit
	return atomic.OrUint32(ptr, m)&m != 0
}

func Btr32(ptr *uint32, bit uint32) bool {
	m := uint32(1) << bit
	return atomic.AndUint32(ptr, ^m)&m != 0
}

func Btc32(ptr *uint32, bit uint32) bool {
	m := uint32(1) << bit
	return update32(ptr, func(v uint32) uint32 { return v ^ m })&m != 0
}

func Bts64(ptr *uint64, bit uint32) bool {
	m := uint64(1) << bit
	return atomic.OrUint64(ptr, m)&m != 0
}

func Btr64(ptr *uint64, bit uint32) bool {
	m := uint64(1) << bit
	return atomic.AndUint64(ptr, ^m)&m != 0
}

func Btc64(ptr *uint64, bit uint32) bool {
	m := uint64(1) << bit
	return update64(ptr, func(v uint64) uint64 { return v ^ m })&m != 0
}

// Cas64 is the 64-bit compare-and-swap used by everything above this
// package. A single-word exchange needs no staging.
func Cas64(ptr *uint64, old, new uint64) (prev uint64, swapped bool) {
	return CasValue64(ptr, old, new)
}
