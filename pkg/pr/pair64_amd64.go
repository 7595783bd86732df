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

package pr

import (
	"unsafe"

	"github.com/cenkalti/backoff/v4"

	"github.com/srediag/shmatomic/internal/arch"
)

// HasPair64 reports that Pair64 exists on this architecture.
const HasPair64 = true

// Pair64 is two 64-bit words exchanged as one 16-byte unit with CMPXCHG16B.
// The unit must be 16-byte aligned and the processor must pass
// DoubleWordSupported. There is no 16-byte load or store instruction, so
// LoadPair64 and StorePair64 are compare-and-swap loops.
type Pair64 [2]uint64

// newAligned128 carves a 16-byte aligned unit out of a three-word
// allocation.
func newAligned128() *[2]uint64 {
	buf := new([3]uint64)
	if uintptr(unsafe.Pointer(buf))%16 == 0 {
		return (*[2]uint64)(unsafe.Pointer(&buf[0]))
	}
	return (*[2]uint64)(unsafe.Pointer(&buf[1]))
}

func cas128(p *[2]uint64) casFunc[[2]uint64] {
	return func(old, new [2]uint64) ([2]uint64, bool) {
		return arch.Cas128(p, old, new)
	}
}

// NewPair64 allocates a zeroed, 16-byte aligned Pair64.
func NewPair64() *Pair64 {
	return (*Pair64)(newAligned128())
}

func CASPair64(p *Pair64, old, new Pair64) bool {
	_, ok := arch.Cas128((*[2]uint64)(p), old, new)
	return ok
}

func CASPairValue64(p *Pair64, old, new Pair64) (Pair64, bool) {
	v, ok := arch.Cas128((*[2]uint64)(p), old, new)
	return v, ok
}

// LoadPair64 retries until it reads a consistent unit.
func LoadPair64(p *Pair64) Pair64 {
	v, _ := LoadPair64With(p, nil)
	return v
}

// LoadPair64With is LoadPair64 under a retry policy. ok is false if the
// policy stopped first; v is then the last unit observed, which is itself a
// consistent snapshot taken by a failed exchange.
func LoadPair64With(p *Pair64, b backoff.BackOff) (v Pair64, ok bool) {
	return loadLoop(cas128((*[2]uint64)(p)), b)
}

func StorePair64(p *Pair64, v Pair64) {
	StorePair64With(p, v, nil)
}

// StorePair64With is StorePair64 under a retry policy. It reports false,
// leaving the unit untouched, if the policy stopped first.
func StorePair64With(p *Pair64, v Pair64, b backoff.BackOff) bool {
	return storeLoop(cas128((*[2]uint64)(p)), [2]uint64(v), b)
}
