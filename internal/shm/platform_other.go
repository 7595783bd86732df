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

//go:build !linux

package shm

import (
	"context"
	"unsafe"
)

// MapRegion only supports anonymous regions off Linux. They are backed by
// process memory aligned to 16 bytes and are not visible to other processes.
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !opts.Anonymous {
		return nil, ErrUnsupported
	}
	words := make([]uint64, (opts.Size+7)/8+2)
	off := 0
	if uintptr(unsafe.Pointer(&words[0]))%16 != 0 {
		off = 1
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&words[off])), opts.Size)
	return &MappedRegion{Addr: buf, Fd: -1}, nil
}

// UnmapRegion drops the reference to the backing memory.
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region != nil {
		region.Addr = nil
	}
	return nil
}
