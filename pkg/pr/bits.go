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

	"github.com/srediag/shmatomic/internal/arch"
)

// bitIndex reduces bit modulo the width of T. The hardware instructions
// would otherwise address memory past *p.
func bitIndex[T BitWord](p *T, bit uint) uint32 {
	return uint32(bit) & uint32(unsafe.Sizeof(*p)*8-1)
}

// BitTestAndSet sets bit of *p and returns its previous value.
func BitTestAndSet[T BitWord](p *T, bit uint) bool {
	switch unsafe.Sizeof(*p) {
	case 2:
		return arch.Bts16((*uint16)(unsafe.Pointer(p)), bitIndex(p, bit))
	case 4:
		return arch.Bts32((*uint32)(unsafe.Pointer(p)), bitIndex(p, bit))
	default:
		return arch.Bts64((*uint64)(unsafe.Pointer(p)), bitIndex(p, bit))
	}
}

// BitTestAndReset clears bit of *p and returns its previous value.
func BitTestAndReset[T BitWord](p *T, bit uint) bool {
	switch unsafe.Sizeof(*p) {
	case 2:
		return arch.Btr16((*uint16)(unsafe.Pointer(p)), bitIndex(p, bit))
	case 4:
		return arch.Btr32((*uint32)(unsafe.Pointer(p)), bitIndex(p, bit))
	default:
		return arch.Btr64((*uint64)(unsafe.Pointer(p)), bitIndex(p, bit))
	}
}

// BitTestAndComplement flips bit of *p and returns its previous value.
func BitTestAndComplement[T BitWord](p *T, bit uint) bool {
	switch unsafe.Sizeof(*p) {
	case 2:
		return arch.Btc16((*uint16)(unsafe.Pointer(p)), bitIndex(p, bit))
	case 4:
		return arch.Btc32((*uint32)(unsafe.Pointer(p)), bitIndex(p, bit))
	default:
		return arch.Btc64((*uint64)(unsafe.Pointer(p)), bitIndex(p, bit))
	}
}

func BitTestAndSet16(p *uint16, bit uint) bool       { return BitTestAndSet(p, bit) }
func BitTestAndSet32(p *uint32, bit uint) bool       { return BitTestAndSet(p, bit) }
func BitTestAndSet64(p *uint64, bit uint) bool       { return BitTestAndSet(p, bit) }
func BitTestAndSetUint(p *uint, bit uint) bool       { return BitTestAndSet(p, bit) }
func BitTestAndSetInt(p *int, bit uint) bool         { return BitTestAndSet(p, bit) }
func BitTestAndSetUintptr(p *uintptr, bit uint) bool { return BitTestAndSet(p, bit) }

func BitTestAndReset16(p *uint16, bit uint) bool       { return BitTestAndReset(p, bit) }
func BitTestAndReset32(p *uint32, bit uint) bool       { return BitTestAndReset(p, bit) }
func BitTestAndReset64(p *uint64, bit uint) bool       { return BitTestAndReset(p, bit) }
func BitTestAndResetUint(p *uint, bit uint) bool       { return BitTestAndReset(p, bit) }
func BitTestAndResetInt(p *int, bit uint) bool         { return BitTestAndReset(p, bit) }
func BitTestAndResetUintptr(p *uintptr, bit uint) bool { return BitTestAndReset(p, bit) }

func BitTestAndComplement16(p *uint16, bit uint) bool       { return BitTestAndComplement(p, bit) }
func BitTestAndComplement32(p *uint32, bit uint) bool       { return BitTestAndComplement(p, bit) }
func BitTestAndComplement64(p *uint64, bit uint) bool       { return BitTestAndComplement(p, bit) }
func BitTestAndComplementUint(p *uint, bit uint) bool       { return BitTestAndComplement(p, bit) }
func BitTestAndComplementInt(p *int, bit uint) bool         { return BitTestAndComplement(p, bit) }
func BitTestAndComplementUintptr(p *uintptr, bit uint) bool { return BitTestAndComplement(p, bit) }
