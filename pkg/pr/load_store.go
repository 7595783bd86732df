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
	"sync/atomic"
	"unsafe"

	"github.com/srediag/shmatomic/internal/arch"
)

// Load reads *p in one access. Bytes and halfwords use a single MOVB or
// MOVW; wider words go through sync/atomic, which the compiler turns into a
// single move (through an XMM register for 64 bits on 386).
func Load[T Word](p *T) T {
	switch unsafe.Sizeof(*p) {
	case 1:
		return T(arch.Load8(p8(p)))
	case 2:
		return T(arch.Load16(p16(p)))
	case 4:
		return T(atomic.LoadUint32(p32(p)))
	default:
		return T(atomic.LoadUint64(p64(p)))
	}
}

// Store writes v to *p in one access.
func Store[T Word](p *T, v T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.Store8(p8(p), uint8(v))
	case 2:
		arch.Store16(p16(p), uint16(v))
	case 4:
		atomic.StoreUint32(p32(p), uint32(v))
	default:
		atomic.StoreUint64(p64(p), uint64(v))
	}
}

func Load8(p *uint8) uint8                     { return Load(p) }
func Load16(p *uint16) uint16                  { return Load(p) }
func Load32(p *uint32) uint32                  { return Load(p) }
func Load64(p *uint64) uint64                  { return Load(p) }
func LoadUint(p *uint) uint                    { return Load(p) }
func LoadInt(p *int) int                       { return Load(p) }
func LoadUintptr(p *uintptr) uintptr           { return Load(p) }
func LoadPtr(p *unsafe.Pointer) unsafe.Pointer { return atomic.LoadPointer(p) }

func Store8(p *uint8, v uint8)                     { Store(p, v) }
func Store16(p *uint16, v uint16)                  { Store(p, v) }
func Store32(p *uint32, v uint32)                  { Store(p, v) }
func Store64(p *uint64, v uint64)                  { Store(p, v) }
func StoreUint(p *uint, v uint)                    { Store(p, v) }
func StoreInt(p *int, v int)                       { Store(p, v) }
func StoreUintptr(p *uintptr, v uintptr)           { Store(p, v) }
func StorePtr(p *unsafe.Pointer, v unsafe.Pointer) { atomic.StorePointer(p, v) }
