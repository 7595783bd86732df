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

//go:build 386 || arm || mips || mipsle

package pr

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"

	"github.com/cenkalti/backoff/v4"

	"github.com/srediag/shmatomic/internal/arch"
)

// HasPairUintptr reports that the PairUintptr operations exist here. Two
// native words fill the 8-byte unit, so the unit must be 8-byte aligned.
const HasPairUintptr = true

func pairUnit(p *PairUintptr) *uint64 { return (*uint64)(unsafe.Pointer(p)) }

func packPair(v PairUintptr) uint64 {
	return binary.NativeEndian.Uint64(unsafe.Slice((*byte)(unsafe.Pointer(&v)), 8))
}

func unpackPair(u uint64) (v PairUintptr) {
	binary.NativeEndian.PutUint64(unsafe.Slice((*byte)(unsafe.Pointer(&v)), 8), u)
	return v
}

func NewPairUintptr() *PairUintptr {
	return (*PairUintptr)(unsafe.Pointer(new(uint64)))
}

func CASPairUintptr(p *PairUintptr, old, new PairUintptr) bool {
	_, ok := arch.Cas64(pairUnit(p), packPair(old), packPair(new))
	return ok
}

func CASPairValueUintptr(p *PairUintptr, old, new PairUintptr) (PairUintptr, bool) {
	v, ok := arch.Cas64(pairUnit(p), packPair(old), packPair(new))
	return unpackPair(v), ok
}

func LoadPairUintptr(p *PairUintptr) PairUintptr {
	return unpackPair(atomic.LoadUint64(pairUnit(p)))
}

func StorePairUintptr(p *PairUintptr, v PairUintptr) {
	atomic.StoreUint64(pairUnit(p), packPair(v))
}

// LoadPairUintptrWith never retries on this architecture; b is unused.
func LoadPairUintptrWith(p *PairUintptr, b backoff.BackOff) (PairUintptr, bool) {
	return LoadPairUintptr(p), true
}

// StorePairUintptrWith never retries on this architecture; b is unused.
func StorePairUintptrWith(p *PairUintptr, v PairUintptr, b backoff.BackOff) bool {
	StorePairUintptr(p, v)
	return true
}
