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

package arch

// Every implementation of this package must provide exactly this function
// set; a missing or mistyped routine fails the build for that GOARCH.
var (
	_ func() = CompilerBarrier
	_ func() = LoadFence
	_ func() = StoreFence
	_ func() = MemoryFence
	_ func() = LoadBarrier
	_ func() = StoreBarrier
	_ func() = MemoryBarrier
	_ func() = Pause

	_ func(*uint8) uint8        = Load8
	_ func(*uint8, uint8)       = Store8
	_ func(*uint8, uint8) uint8 = Xchg8
	_ func(*uint8, uint8) uint8 = Xadd8

	_ func(*uint16) uint16         = Load16
	_ func(*uint16, uint16)        = Store16
	_ func(*uint16, uint16) uint16 = Xchg16
	_ func(*uint16, uint16) uint16 = Xadd16

	_ func(*uint8, uint8, uint8) (uint8, bool) = CasValue8
	_ func(*uint8)                             = Inc8
	_ func(*uint8) bool                        = IncZero8
	_ func(*uint8)                             = Dec8
	_ func(*uint8) bool                        = DecZero8
	_ func(*uint8)                             = Neg8
	_ func(*uint8) bool                        = NegZero8
	_ func(*uint8)                             = Not8
	_ func(*uint8, uint8)                      = Add8
	_ func(*uint8, uint8) bool                 = AddZero8
	_ func(*uint8, uint8)                      = Sub8
	_ func(*uint8, uint8) bool                 = SubZero8
	_ func(*uint8, uint8)                      = And8
	_ func(*uint8, uint8) bool                 = AndZero8
	_ func(*uint8, uint8)                      = Or8
	_ func(*uint8, uint8) bool                 = OrZero8
	_ func(*uint8, uint8)                      = Xor8
	_ func(*uint8, uint8) bool                 = XorZero8

	_ func(*uint16, uint16, uint16) (uint16, bool) = CasValue16
	_ func(*uint16)                                = Inc16
	_ func(*uint16) bool                           = IncZero16
	_ func(*uint16)                                = Dec16
	_ func(*uint16) bool                           = DecZero16
	_ func(*uint16)                                = Neg16
	_ func(*uint16) bool                           = NegZero16
	_ func(*uint16)                                = Not16
	_ func(*uint16, uint16)                        = Add16
	_ func(*uint16, uint16) bool                   = AddZero16
	_ func(*uint16, uint16)                        = Sub16
	_ func(*uint16, uint16) bool                   = SubZero16
	_ func(*uint16, uint16)                        = And16
	_ func(*uint16, uint16) bool                   = AndZero16
	_ func(*uint16, uint16)                        = Or16
	_ func(*uint16, uint16) bool                   = OrZero16
	_ func(*uint16, uint16)                        = Xor16
	_ func(*uint16, uint16) bool                   = XorZero16

	_ func(*uint32, uint32, uint32) (uint32, bool) = CasValue32
	_ func(*uint32)                                = Inc32
	_ func(*uint32) bool                           = IncZero32
	_ func(*uint32)                                = Dec32
	_ func(*uint32) bool                           = DecZero32
	_ func(*uint32)                                = Neg32
	_ func(*uint32) bool                           = NegZero32
	_ func(*uint32)                                = Not32
	_ func(*uint32, uint32)                        = Add32
	_ func(*uint32, uint32) bool                   = AddZero32
	_ func(*uint32, uint32)                        = Sub32
	_ func(*uint32, uint32) bool                   = SubZero32
	_ func(*uint32, uint32)                        = And32
	_ func(*uint32, uint32) bool                   = AndZero32
	_ func(*uint32, uint32)                        = Or32
	_ func(*uint32, uint32) bool                   = OrZero32
	_ func(*uint32, uint32)                        = Xor32
	_ func(*uint32, uint32) bool                   = XorZero32

	_ func(*uint64, uint64, uint64) (uint64, bool) = CasValue64
	_ func(*uint64, uint64, uint64) (uint64, bool) = Cas64
	_ func(*uint64)                                = Inc64
	_ func(*uint64) bool                           = IncZero64
	_ func(*uint64)                                = Dec64
	_ func(*uint64) bool                           = DecZero64
	_ func(*uint64)                                = Neg64
	_ func(*uint64) bool                           = NegZero64
	_ func(*uint64)                                = Not64
	_ func(*uint64, uint64)                        = Add64
	_ func(*uint64, uint64) bool                   = AddZero64
	_ func(*uint64, uint64)                        = Sub64
	_ func(*uint64, uint64) bool                   = SubZero64
	_ func(*uint64, uint64)                        = And64
	_ func(*uint64, uint64) bool                   = AndZero64
	_ func(*uint64, uint64)                        = Or64
	_ func(*uint64, uint64) bool                   = OrZero64
	_ func(*uint64, uint64)                        = Xor64
	_ func(*uint64, uint64) bool                   = XorZero64

	_ func(*uint16, uint32) bool = Bts16
	_ func(*uint16, uint32) bool = Btr16
	_ func(*uint16, uint32) bool = Btc16

	_ func(*uint32, uint32) bool = Bts32
	_ func(*uint32, uint32) bool = Btr32
	_ func(*uint32, uint32) bool = Btc32

	_ func(*uint64, uint32) bool = Bts64
	_ func(*uint64, uint32) bool = Btr64
	_ func(*uint64, uint32) bool = Btc64
)
