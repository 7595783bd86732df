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
	"encoding/binary"
	"sync/atomic"
	"unsafe"

	"github.com/srediag/shmatomic/internal/arch"
)

// Pair32, Quad16 and Octet8 are views of one 8-byte double-word unit: two
// 32-bit words, four halfwords or eight bytes compared and exchanged
// together. Element 0 is at the lowest address. A unit must be 8-byte
// aligned; NewDouble returns one that is.
type (
	Pair32 [2]uint32
	Quad16 [4]uint16
	Octet8 [8]uint8
)

// DoubleWord is the set of 8-byte unit views.
type DoubleWord interface {
	Pair32 | Quad16 | Octet8
}

// NewDouble allocates a zeroed, 8-byte aligned unit.
func NewDouble[P DoubleWord]() *P {
	return (*P)(unsafe.Pointer(new(uint64)))
}

func unit[P DoubleWord](p *P) *uint64 {
	return (*uint64)(unsafe.Pointer(p))
}

// pack returns the memory image of v as the unit sees it.
func pack[P DoubleWord](v P) uint64 {
	return binary.NativeEndian.Uint64(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)))
}

func unpack[P DoubleWord](u uint64) (v P) {
	binary.NativeEndian.PutUint64(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)), u)
	return v
}

// CASDouble compares and exchanges the whole unit. It fails if any element
// differs from old, even when the others still match.
func CASDouble[P DoubleWord](p *P, old, new P) bool {
	_, ok := arch.Cas64(unit(p), pack(old), pack(new))
	return ok
}

// CASDoubleValue is CASDouble that also returns the unit as the compare saw
// it.
func CASDoubleValue[P DoubleWord](p *P, old, new P) (P, bool) {
	v, ok := arch.Cas64(unit(p), pack(old), pack(new))
	return unpack[P](v), ok
}

// LoadDouble reads the whole unit in one access.
func LoadDouble[P DoubleWord](p *P) P {
	return unpack[P](atomic.LoadUint64(unit(p)))
}

// StoreDouble writes the whole unit in one access.
func StoreDouble[P DoubleWord](p *P, v P) {
	atomic.StoreUint64(unit(p), pack(v))
}

func CASPair32(p *Pair32, old, new Pair32) bool { return CASDouble(p, old, new) }
func CASQuad16(p *Quad16, old, new Quad16) bool { return CASDouble(p, old, new) }
func CASOctet8(p *Octet8, old, new Octet8) bool { return CASDouble(p, old, new) }

func CASPairValue32(p *Pair32, old, new Pair32) (Pair32, bool) {
	return CASDoubleValue(p, old, new)
}

func CASQuadValue16(p *Quad16, old, new Quad16) (Quad16, bool) {
	return CASDoubleValue(p, old, new)
}

func CASOctetValue8(p *Octet8, old, new Octet8) (Octet8, bool) {
	return CASDoubleValue(p, old, new)
}

func LoadPair32(p *Pair32) Pair32 { return LoadDouble(p) }
func LoadQuad16(p *Quad16) Quad16 { return LoadDouble(p) }
func LoadOctet8(p *Octet8) Octet8 { return LoadDouble(p) }

func StorePair32(p *Pair32, v Pair32) { StoreDouble(p, v) }
func StoreQuad16(p *Quad16, v Quad16) { StoreDouble(p, v) }
func StoreOctet8(p *Octet8, v Octet8) { StoreDouble(p, v) }

// PairUintptr is two adjacent native words exchanged as one unit. It holds
// addresses as integers: the garbage collector does not see them, so they
// must refer to memory it does not manage, such as a shared mapping.
// HasPairUintptr reports whether the operations exist on this architecture.
type PairUintptr [2]uintptr
