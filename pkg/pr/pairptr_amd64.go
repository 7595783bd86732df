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

// HasPairUintptr reports that the PairUintptr operations exist here. On
// amd64 they use the 16-byte unit; see Pair64 for the requirements.
const HasPairUintptr = true

func words(v PairUintptr) [2]uint64 { return [2]uint64{uint64(v[0]), uint64(v[1])} }

func pairOf(w [2]uint64) PairUintptr { return PairUintptr{uintptr(w[0]), uintptr(w[1])} }

func pairUnit(p *PairUintptr) *[2]uint64 { return (*[2]uint64)(unsafe.Pointer(p)) }

// NewPairUintptr allocates a zeroed unit with the alignment the exchange
// needs.
func NewPairUintptr() *PairUintptr {
	return (*PairUintptr)(unsafe.Pointer(newAligned128()))
}

func CASPairUintptr(p *PairUintptr, old, new PairUintptr) bool {
	_, ok := arch.Cas128(pairUnit(p), words(old), words(new))
	return ok
}

func CASPairValueUintptr(p *PairUintptr, old, new PairUintptr) (PairUintptr, bool) {
	v, ok := arch.Cas128(pairUnit(p), words(old), words(new))
	return pairOf(v), ok
}

func LoadPairUintptr(p *PairUintptr) PairUintptr {
	v, _ := LoadPairUintptrWith(p, nil)
	return v
}

func LoadPairUintptrWith(p *PairUintptr, b backoff.BackOff) (PairUintptr, bool) {
	v, ok := loadLoop(cas128(pairUnit(p)), b)
	return pairOf(v), ok
}

func StorePairUintptr(p *PairUintptr, v PairUintptr) {
	StorePairUintptrWith(p, v, nil)
}

func StorePairUintptrWith(p *PairUintptr, v PairUintptr, b backoff.BackOff) bool {
	return storeLoop(cas128(pairUnit(p)), words(v), b)
}
