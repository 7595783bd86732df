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

// CAS stores new into *p if it holds old and reports whether it did.
func CAS[T Word](p *T, old, new T) bool {
	switch unsafe.Sizeof(*p) {
	case 1:
		_, ok := arch.CasValue8(p8(p), uint8(old), uint8(new))
		return ok
	case 2:
		_, ok := arch.CasValue16(p16(p), uint16(old), uint16(new))
		return ok
	case 4:
		return atomic.CompareAndSwapUint32(p32(p), uint32(old), uint32(new))
	default:
		_, ok := arch.Cas64(p64(p), uint64(old), uint64(new))
		return ok
	}
}

// CASValue is CAS that also returns what *p held when the compare ran: old
// if the swap happened, the differing contents otherwise. Both results come
// from the same locked instruction, so observed needs no second read.
func CASValue[T Word](p *T, old, new T) (observed T, swapped bool) {
	switch unsafe.Sizeof(*p) {
	case 1:
		v, ok := arch.CasValue8(p8(p), uint8(old), uint8(new))
		return T(v), ok
	case 2:
		v, ok := arch.CasValue16(p16(p), uint16(old), uint16(new))
		return T(v), ok
	case 4:
		v, ok := arch.CasValue32(p32(p), uint32(old), uint32(new))
		return T(v), ok
	default:
		v, ok := arch.Cas64(p64(p), uint64(old), uint64(new))
		return T(v), ok
	}
}

func CAS8(p *uint8, old, new uint8) bool           { return CAS(p, old, new) }
func CAS16(p *uint16, old, new uint16) bool        { return CAS(p, old, new) }
func CAS32(p *uint32, old, new uint32) bool        { return CAS(p, old, new) }
func CAS64(p *uint64, old, new uint64) bool        { return CAS(p, old, new) }
func CASUint(p *uint, old, new uint) bool          { return CAS(p, old, new) }
func CASInt(p *int, old, new int) bool             { return CAS(p, old, new) }
func CASUintptr(p *uintptr, old, new uintptr) bool { return CAS(p, old, new) }

func CASValue8(p *uint8, old, new uint8) (uint8, bool) {
	return CASValue(p, old, new)
}

func CASValue16(p *uint16, old, new uint16) (uint16, bool) {
	return CASValue(p, old, new)
}

func CASValue32(p *uint32, old, new uint32) (uint32, bool) {
	return CASValue(p, old, new)
}

func CASValue64(p *uint64, old, new uint64) (uint64, bool) {
	return CASValue(p, old, new)
}

func CASValueUint(p *uint, old, new uint) (uint, bool) {
	return CASValue(p, old, new)
}

func CASValueInt(p *int, old, new int) (int, bool) {
	return CASValue(p, old, new)
}

func CASValueUintptr(p *uintptr, old, new uintptr) (uintptr, bool) {
	return CASValue(p, old, new)
}

func CASPtr(p *unsafe.Pointer, old, new unsafe.Pointer) bool {
	return atomic.CompareAndSwapPointer(p, old, new)
}

// CASValuePtr loops over sync/atomic instead of exchanging the raw word so
// that the garbage collector's write barrier runs on the stored pointer.
// The loop only repeats while *p keeps matching old between the load and the
// exchange.
func CASValuePtr(p *unsafe.Pointer, old, new unsafe.Pointer) (unsafe.Pointer, bool) {
	for {
		cur := atomic.LoadPointer(p)
		if cur != old {
			return cur, false
		}
		if atomic.CompareAndSwapPointer(p, old, new) {
			return old, true
		}
	}
}
