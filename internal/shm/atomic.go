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

package shm

import (
	"fmt"
	"unsafe"
)

// Locate returns the address of a size-byte location at off in mem. The
// location must lie inside mem and its address must be a multiple of align.
// mem is expected to start on a page boundary, so an aligned offset gives an
// aligned address; the check is on the address regardless.
func Locate(mem []byte, off, size, align uintptr) (unsafe.Pointer, error) {
	if size == 0 || off > uintptr(len(mem)) || uintptr(len(mem))-off < size {
		return nil, fmt.Errorf("offset %d size %d in %d bytes: %w", off, size, len(mem), ErrOutOfRange)
	}
	p := unsafe.Pointer(&mem[off])
	if uintptr(p)%align != 0 {
		return nil, fmt.Errorf("offset %d needs %d-byte alignment: %w", off, align, ErrMisaligned)
	}
	return p, nil
}
