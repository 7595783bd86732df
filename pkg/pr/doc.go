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

// Package pr provides atomic memory-access primitives: fences, loads and
// stores, exchange, fetch-and-add, in-place read-modify-write,
// compare-and-swap over one and two words, and bit-test-and-modify.
//
// Every operation is exported once per width tag (8, 16, 32, 64, Uint, Int,
// Uintptr and, where it applies, Ptr) and once as a generic function over
// Word, so width-generic code can call Load[T] while hand-written code calls
// Load32. The generic forms dispatch on the size of T; the compiler folds the
// dispatch away per instantiation.
//
// All locations are caller-owned and must be naturally aligned. Apart from
// the New constructors for double-word units, no operation allocates, and
// none blocks, logs or returns an error. The
// read-modify-write and compare-and-swap operations are sequentially
// consistent; plain loads and stores carry the ordering of the hardware
// memory model, which on x86 is why the relaxed fences compile to nothing
// but a compiler barrier.
//
// The only loops are the double-word load and store on units that have no
// atomic load or store of their own. They retry a compare-and-swap until it
// lands; callers that need a bound pass a backoff.BackOff.
package pr
