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

// Exchange stores v into *p and returns the previous contents (XCHG).
func Exchange[T Word](p *T, v T) T {
	switch unsafe.Sizeof(*p) {
	case 1:
		return T(arch.Xchg8(p8(p), uint8(v)))
	case 2:
		return T(arch.Xchg16(p16(p), uint16(v)))
	case 4:
		return T(atomic.SwapUint32(p32(p), uint32(v)))
	default:
		return T(atomic.SwapUint64(p64(p), uint64(v)))
	}
}

// FetchAdd adds d to *p and returns the previous contents (LOCK XADD).
func FetchAdd[T Word](p *T, d T) T {
	switch unsafe.Sizeof(*p) {
	case 1:
		return T(arch.Xadd8(p8(p), uint8(d)))
	case 2:
		return T(arch.Xadd16(p16(p), uint16(d)))
	case 4:
		return T(atomic.AddUint32(p32(p), uint32(d)) - uint32(d))
	default:
		return T(atomic.AddUint64(p64(p), uint64(d)) - uint64(d))
	}
}

func Exchange8(p *uint8, v uint8) uint8             { return Exchange(p, v) }
func Exchange16(p *uint16, v uint16) uint16         { return Exchange(p, v) }
func Exchange32(p *uint32, v uint32) uint32         { return Exchange(p, v) }
func Exchange64(p *uint64, v uint64) uint64         { return Exchange(p, v) }
func ExchangeUint(p *uint, v uint) uint             { return Exchange(p, v) }
func ExchangeInt(p *int, v int) int                 { return Exchange(p, v) }
func ExchangeUintptr(p *uintptr, v uintptr) uintptr { return Exchange(p, v) }

// ExchangePtr goes through sync/atomic so the garbage collector sees the
// write.
func ExchangePtr(p *unsafe.Pointer, v unsafe.Pointer) unsafe.Pointer {
	return atomic.SwapPointer(p, v)
}

func FetchAdd8(p *uint8, d uint8) uint8             { return FetchAdd(p, d) }
func FetchAdd16(p *uint16, d uint16) uint16         { return FetchAdd(p, d) }
func FetchAdd32(p *uint32, d uint32) uint32         { return FetchAdd(p, d) }
func FetchAdd64(p *uint64, d uint64) uint64         { return FetchAdd(p, d) }
func FetchAddUint(p *uint, d uint) uint             { return FetchAdd(p, d) }
func FetchAddInt(p *int, d int) int                 { return FetchAdd(p, d) }
func FetchAddUintptr(p *uintptr, d uintptr) uintptr { return FetchAdd(p, d) }
