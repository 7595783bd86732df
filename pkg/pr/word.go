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

// Word is the set of integer types the operations accept. Only the size of
// the type matters; signed types wrap the same way as unsigned ones.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr |
		~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// BitWord is the subset of Word with bit-test-and-modify support. There is
// no byte-sized bit instruction.
type BitWord interface {
	~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr |
		~int16 | ~int32 | ~int64 | ~int
}

// PIC reports whether the package was built with the pic tag, in which the
// double-word compare-and-swap stages the low half of the desired value
// through a scratch slot.
const PIC = arch.PIC

// DoubleWordSupported reports whether the running processor implements the
// native double-word compare-and-swap. It is always true on 386 and depends
// on CMPXCHG16B on amd64.
func DoubleWordSupported() bool {
	return arch.HasDoubleWord
}

// Stall is a busy-wait hint for spin loops. It has no memory effect.
func Stall() {
	arch.Pause()
}

func p8[T Word](p *T) *uint8   { return (*uint8)(unsafe.Pointer(p)) }
func p16[T Word](p *T) *uint16 { return (*uint16)(unsafe.Pointer(p)) }
func p32[T Word](p *T) *uint32 { return (*uint32)(unsafe.Pointer(p)) }
func p64[T Word](p *T) *uint64 { return (*uint64)(unsafe.Pointer(p)) }
