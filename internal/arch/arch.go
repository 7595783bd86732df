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

// Package arch contains one implementation of the atomic primitive contract
// per instruction set.
//
// amd64 and 386 are written in assembly and use LOCK-prefixed instructions
// whose condition flags are read back in the same routine. Every other
// GOARCH gets the portable implementation in arch_generic.go, built on
// sync/atomic compare-and-swap loops. Operations that sync/atomic already
// provides for 32-bit, 64-bit and pointer words (plain load, store, swap,
// add, compare-and-swap) are not duplicated here.
//
// The function set every implementation must provide is pinned in
// contract.go.
package arch

// Scratch is the staging area used by the double-word compare-and-swap when
// the package is built in position-independent mode. Lo holds the low half
// of the desired value; Saved receives the reserved register while the
// instruction runs.
//
// The layout is read by assembly: Lo at offset 0, Saved at one word.
type Scratch struct {
	Lo    uintptr
	Saved uintptr
}
