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

// The read-modify-write operations change *p in place with one locked
// instruction. The ...Zero forms report whether the value they stored is
// zero, taken from the same instruction. Not has no zero form.

// Inc increments *p.
func Inc[T Word](p *T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.Inc8(p8(p))
	case 2:
		arch.Inc16(p16(p))
	case 4:
		arch.Inc32(p32(p))
	default:
		arch.Inc64(p64(p))
	}
}

func IncZero[T Word](p *T) bool {
	switch unsafe.Sizeof(*p) {
	case 1:
		return arch.IncZero8(p8(p))
	case 2:
		return arch.IncZero16(p16(p))
	case 4:
		return arch.IncZero32(p32(p))
	default:
		return arch.IncZero64(p64(p))
	}
}

// Dec decrements *p.
func Dec[T Word](p *T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.Dec8(p8(p))
	case 2:
		arch.Dec16(p16(p))
	case 4:
		arch.Dec32(p32(p))
	default:
		arch.Dec64(p64(p))
	}
}

func DecZero[T Word](p *T) bool {
	switch unsafe.Sizeof(*p) {
	case 1:
		return arch.DecZero8(p8(p))
	case 2:
		return arch.DecZero16(p16(p))
	case 4:
		return arch.DecZero32(p32(p))
	default:
		return arch.DecZero64(p64(p))
	}
}

// Neg replaces *p with its two's complement negation.
func Neg[T Word](p *T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.Neg8(p8(p))
	case 2:
		arch.Neg16(p16(p))
	case 4:
		arch.Neg32(p32(p))
	default:
		arch.Neg64(p64(p))
	}
}

func NegZero[T Word](p *T) bool {
	switch unsafe.Sizeof(*p) {
	case 1:
		return arch.NegZero8(p8(p))
	case 2:
		return arch.NegZero16(p16(p))
	case 4:
		return arch.NegZero32(p32(p))
	default:
		return arch.NegZero64(p64(p))
	}
}

// Not replaces *p with its bitwise complement.
func Not[T Word](p *T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.Not8(p8(p))
	case 2:
		arch.Not16(p16(p))
	case 4:
		arch.Not32(p32(p))
	default:
		arch.Not64(p64(p))
	}
}

// Add adds v to *p.
func Add[T Word](p *T, v T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.Add8(p8(p), uint8(v))
	case 2:
		arch.Add16(p16(p), uint16(v))
	case 4:
		arch.Add32(p32(p), uint32(v))
	default:
		arch.Add64(p64(p), uint64(v))
	}
}

func AddZero[T Word](p *T, v T) bool {
	switch unsafe.Sizeof(*p) {
	case 1:
		return arch.AddZero8(p8(p), uint8(v))
	case 2:
		return arch.AddZero16(p16(p), uint16(v))
	case 4:
		return arch.AddZero32(p32(p), uint32(v))
	default:
		return arch.AddZero64(p64(p), uint64(v))
	}
}

// Sub subtracts v from *p.
func Sub[T Word](p *T, v T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.Sub8(p8(p), uint8(v))
	case 2:
		arch.Sub16(p16(p), uint16(v))
	case 4:
		arch.Sub32(p32(p), uint32(v))
	default:
		arch.Sub64(p64(p), uint64(v))
	}
}

func SubZero[T Word](p *T, v T) bool {
	switch unsafe.Sizeof(*p) {
	case 1:
		return arch.SubZero8(p8(p), uint8(v))
	case 2:
		return arch.SubZero16(p16(p), uint16(v))
	case 4:
		return arch.SubZero32(p32(p), uint32(v))
	default:
		return arch.SubZero64(p64(p), uint64(v))
	}
}

// And replaces *p with *p & v.
func And[T Word](p *T, v T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.And8(p8(p), uint8(v))
	case 2:
		arch.And16(p16(p), uint16(v))
	case 4:
		arch.And32(p32(p), uint32(v))
	default:
		arch.And64(p64(p), uint64(v))
	}
}

func AndZero[T Word](p *T, v T) bool {
	switch unsafe.Sizeof(*p) {
	case 1:
		return arch.AndZero8(p8(p), uint8(v))
	case 2:
		return arch.AndZero16(p16(p), uint16(v))
	case 4:
		return arch.AndZero32(p32(p), uint32(v))
	default:
		return arch.AndZero64(p64(p), uint64(v))
	}
}

// Or replaces *p with *p | v.
func Or[T Word](p *T, v T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.Or8(p8(p), uint8(v))
	case 2:
		arch.Or16(p16(p), uint16(v))
	case 4:
		arch.Or32(p32(p), uint32(v))
	default:
		arch.Or64(p64(p), uint64(v))
	}
}

func OrZero[T Word](p *T, v T) bool {
	switch unsafe.Sizeof(*p) {
	case 1:
		return arch.OrZero8(p8(p), uint8(v))
	case 2:
		return arch.OrZero16(p16(p), uint16(v))
	case 4:
		return arch.OrZero32(p32(p), uint32(v))
	default:
		return arch.OrZero64(p64(p), uint64(v))
	}
}

// Xor replaces *p with *p ^ v.
func Xor[T Word](p *T, v T) {
	switch unsafe.Sizeof(*p) {
	case 1:
		arch.Xor8(p8(p), uint8(v))
	case 2:
		arch.Xor16(p16(p), uint16(v))
	case 4:
		arch.Xor32(p32(p), uint32(v))
	default:
		arch.Xor64(p64(p), uint64(v))
	}
}

func XorZero[T Word](p *T, v T) bool {
	switch unsafe.Sizeof(*p) {
	case 1:
		return arch.XorZero8(p8(p), uint8(v))
	case 2:
		return arch.XorZero16(p16(p), uint16(v))
	case 4:
		return arch.XorZero32(p32(p), uint32(v))
	default:
		return arch.XorZero64(p64(p), uint64(v))
	}
}

func Inc8(p *uint8)                  { Inc(p) }
func Inc16(p *uint16)                { Inc(p) }
func Inc32(p *uint32)                { Inc(p) }
func Inc64(p *uint64)                { Inc(p) }
func IncUint(p *uint)                { Inc(p) }
func IncInt(p *int)                  { Inc(p) }
func IncUintptr(p *uintptr)          { Inc(p) }
func IncZero8(p *uint8) bool         { return IncZero(p) }
func IncZero16(p *uint16) bool       { return IncZero(p) }
func IncZero32(p *uint32) bool       { return IncZero(p) }
func IncZero64(p *uint64) bool       { return IncZero(p) }
func IncZeroUint(p *uint) bool       { return IncZero(p) }
func IncZeroInt(p *int) bool         { return IncZero(p) }
func IncZeroUintptr(p *uintptr) bool { return IncZero(p) }

func Dec8(p *uint8)                  { Dec(p) }
func Dec16(p *uint16)                { Dec(p) }
func Dec32(p *uint32)                { Dec(p) }
func Dec64(p *uint64)                { Dec(p) }
func DecUint(p *uint)                { Dec(p) }
func DecInt(p *int)                  { Dec(p) }
func DecUintptr(p *uintptr)          { Dec(p) }
func DecZero8(p *uint8) bool         { return DecZero(p) }
func DecZero16(p *uint16) bool       { return DecZero(p) }
func DecZero32(p *uint32) bool       { return DecZero(p) }
func DecZero64(p *uint64) bool       { return DecZero(p) }
func DecZeroUint(p *uint) bool       { return DecZero(p) }
func DecZeroInt(p *int) bool         { return DecZero(p) }
func DecZeroUintptr(p *uintptr) bool { return DecZero(p) }

func Neg8(p *uint8)                  { Neg(p) }
func Neg16(p *uint16)                { Neg(p) }
func Neg32(p *uint32)                { Neg(p) }
func Neg64(p *uint64)                { Neg(p) }
func NegUint(p *uint)                { Neg(p) }
func NegInt(p *int)                  { Neg(p) }
func NegUintptr(p *uintptr)          { Neg(p) }
func NegZero8(p *uint8) bool         { return NegZero(p) }
func NegZero16(p *uint16) bool       { return NegZero(p) }
func NegZero32(p *uint32) bool       { return NegZero(p) }
func NegZero64(p *uint64) bool       { return NegZero(p) }
func NegZeroUint(p *uint) bool       { return NegZero(p) }
func NegZeroInt(p *int) bool         { return NegZero(p) }
func NegZeroUintptr(p *uintptr) bool { return NegZero(p) }

func Not8(p *uint8)         { Not(p) }
func Not16(p *uint16)       { Not(p) }
func Not32(p *uint32)       { Not(p) }
func Not64(p *uint64)       { Not(p) }
func NotUint(p *uint)       { Not(p) }
func NotInt(p *int)         { Not(p) }
func NotUintptr(p *uintptr) { Not(p) }

func Add8(p *uint8, v uint8)                    { Add(p, v) }
func Add16(p *uint16, v uint16)                 { Add(p, v) }
func Add32(p *uint32, v uint32)                 { Add(p, v) }
func Add64(p *uint64, v uint64)                 { Add(p, v) }
func AddUint(p *uint, v uint)                   { Add(p, v) }
func AddInt(p *int, v int)                      { Add(p, v) }
func AddUintptr(p *uintptr, v uintptr)          { Add(p, v) }
func AddZero8(p *uint8, v uint8) bool           { return AddZero(p, v) }
func AddZero16(p *uint16, v uint16) bool        { return AddZero(p, v) }
func AddZero32(p *uint32, v uint32) bool        { return AddZero(p, v) }
func AddZero64(p *uint64, v uint64) bool        { return AddZero(p, v) }
func AddZeroUint(p *uint, v uint) bool          { return AddZero(p, v) }
func AddZeroInt(p *int, v int) bool             { return AddZero(p, v) }
func AddZeroUintptr(p *uintptr, v uintptr) bool { return AddZero(p, v) }

func Sub8(p *uint8, v uint8)                    { Sub(p, v) }
func Sub16(p *uint16, v uint16)                 { Sub(p, v) }
func Sub32(p *uint32, v uint32)                 { Sub(p, v) }
func Sub64(p *uint64, v uint64)                 { Sub(p, v) }
func SubUint(p *uint, v uint)                   { Sub(p, v) }
func SubInt(p *int, v int)                      { Sub(p, v) }
func SubUintptr(p *uintptr, v uintptr)          { Sub(p, v) }
func SubZero8(p *uint8, v uint8) bool           { return SubZero(p, v) }
func SubZero16(p *uint16, v uint16) bool        { return SubZero(p, v) }
func SubZero32(p *uint32, v uint32) bool        { return SubZero(p, v) }
func SubZero64(p *uint64, v uint64) bool        { return SubZero(p, v) }
func SubZeroUint(p *uint, v uint) bool          { return SubZero(p, v) }
func SubZeroInt(p *int, v int) bool             { return SubZero(p, v) }
func SubZeroUintptr(p *uintptr, v uintptr) bool { return SubZero(p, v) }

func And8(p *uint8, v uint8)                    { And(p, v) }
func And16(p *uint16, v uint16)                 { And(p, v) }
func And32(p *uint32, v uint32)                 { And(p, v) }
func And64(p *uint64, v uint64)                 { And(p, v) }
func AndUint(p *uint, v uint)                   { And(p, v) }
func AndInt(p *int, v int)                      { And(p, v) }
func AndUintptr(p *uintptr, v uintptr)          { And(p, v) }
func AndZero8(p *uint8, v uint8) bool           { return AndZero(p, v) }
func AndZero16(p *uint16, v uint16) bool        { return AndZero(p, v) }
func AndZero32(p *uint32, v uint32) bool        { return AndZero(p, v) }
func AndZero64(p *uint64, v uint64) bool        { return AndZero(p, v) }
func AndZeroUint(p *uint, v uint) bool          { return AndZero(p, v) }
func AndZeroInt(p *int, v int) bool             { return AndZero(p, v) }
func AndZeroUintptr(p *uintptr, v uintptr) bool { return AndZero(p, v) }

func Or8(p *uint8, v uint8)                    { Or(p, v) }
func Or16(p *uint16, v uint16)                 { Or(p, v) }
func Or32(p *uint32, v uint32)                 { Or(p, v) }
func Or64(p *uint64, v uint64)                 { Or(p, v) }
func OrUint(p *uint, v uint)                   { Or(p, v) }
func OrInt(p *int, v int)                      { Or(p, v) }
func OrUintptr(p *uintptr, v uintptr)          { Or(p, v) }
func OrZero8(p *uint8, v uint8) bool           { return OrZero(p, v) }
func OrZero16(p *uint16, v uint16) bool        { return OrZero(p, v) }
func OrZero32(p *uint32, v uint32) bool        { return OrZero(p, v) }
func OrZero64(p *uint64, v uint64) bool        { return OrZero(p, v) }
func OrZeroUint(p *uint, v uint) bool          { return OrZero(p, v) }
func OrZeroInt(p *int, v int) bool             { return OrZero(p, v) }
func OrZeroUintptr(p *uintptr, v uintptr) bool { return OrZero(p, v) }

func Xor8(p *uint8, v uint8)                    { Xor(p, v) }
func Xor16(p *uint16, v uint16)                 { Xor(p, v) }
func Xor32(p *uint32, v uint32)                 { Xor(p, v) }
func Xor64(p *uint64, v uint64)                 { Xor(p, v) }
func XorUint(p *uint, v uint)                   { Xor(p, v) }
func XorInt(p *int, v int)                      { Xor(p, v) }
func XorUintptr(p *uintptr, v uintptr)          { Xor(p, v) }
func XorZero8(p *uint8, v uint8) bool           { return XorZero(p, v) }
func XorZero16(p *uint16, v uint16) bool        { return XorZero(p, v) }
func XorZero32(p *uint32, v uint32) bool        { return XorZero(p, v) }
func XorZero64(p *uint64, v uint64) bool        { return XorZero(p, v) }
func XorZeroUint(p *uint, v uint) bool          { return XorZero(p, v) }
func XorZeroInt(p *int, v int) bool             { return XorZero(p, v) }
func XorZeroUintptr(p *uintptr, v uintptr) bool { return XorZero(p, v) }
