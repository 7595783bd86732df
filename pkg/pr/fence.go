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

import "github.com/srediag/shmatomic/internal/arch"

// Order names the class of memory accesses a fence orders.
type Order uint8

const (
	// OrderLoad orders loads before the fence against loads after it.
	OrderLoad Order = iota
	// OrderStore orders stores before the fence against stores after it.
	OrderStore
	// OrderMemory orders all accesses on both sides.
	OrderMemory
	// OrderLoadDepends orders a load against later loads that depend on
	// its result.
	OrderLoadDepends
)

func (o Order) String() string {
	switch o {
	case OrderLoad:
		return "load"
	case OrderStore:
		return "store"
	case OrderMemory:
		return "memory"
	case OrderLoadDepends:
		return "load_depends"
	default:
		return "unknown"
	}
}

// Fence orders accesses of class o as far as the processor's own memory
// model requires. On x86 that needs no instruction and only the compiler is
// stopped; weakly ordered processors get a full fence.
func Fence(o Order) {
	switch o {
	case OrderLoad:
		arch.LoadBarrier()
	case OrderStore:
		arch.StoreBarrier()
	case OrderMemory:
		arch.MemoryBarrier()
	default:
		arch.CompilerBarrier()
	}
}

// FenceStrict emits the hardware barrier for o: LFENCE, SFENCE or MFENCE on
// x86. Dependent loads are never reordered on x86, so OrderLoadDepends is
// only a compiler barrier.
func FenceStrict(o Order) {
	switch o {
	case OrderLoad:
		arch.LoadFence()
	case OrderStore:
		arch.StoreFence()
	case OrderMemory:
		arch.MemoryFence()
	default:
		arch.CompilerBarrier()
	}
}

func FenceLoad()        { arch.LoadBarrier() }
func FenceStore()       { arch.StoreBarrier() }
func FenceMemory()      { arch.MemoryBarrier() }
func FenceLoadDepends() { arch.CompilerBarrier() }

func FenceStrictLoad()        { arch.LoadFence() }
func FenceStrictStore()       { arch.StoreFence() }
func FenceStrictMemory()      { arch.MemoryFence() }
func FenceStrictLoadDepends() { arch.CompilerBarrier() }
