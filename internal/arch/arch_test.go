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

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ArchTestSuite struct {
	suite.Suite
}

func (s *ArchTestSuite) TestNarrowLoadStore() {
	var b [4]uint8
	Store8(&b[1], 0xab)
	s.Equal(uint8(0xab), Load8(&b[1]))
	s.Equal([4]uint8{0, 0xab, 0, 0}, b)

	var h [2]uint16
	Store16(&h[1], 0xbeef)
	s.Equal(uint16(0xbeef), Load16(&h[1]))
	s.Equal(uint16(0), h[0])
}

func (s *ArchTestSuite) TestExchangeAndFetchAdd() {
	b := [4]uint8{1, 2, 3, 4}
	s.Equal(uint8(3), Xchg8(&b[2], 9))
	s.Equal(uint8(0xff), Xadd8(&b[0], 0xff)+0xfe)
	s.Equal([4]uint8{0, 2, 9, 4}, b)

	h := [2]uint16{0xfffe, 7}
	s.Equal(uint16(0xfffe), Xadd16(&h[0], 3))
	s.Equal(uint16(1), h[0])
	s.Equal(uint16(7), Xchg16(&h[1], 8))
	s.Equal(uint16(8), h[1])
}

func (s *ArchTestSuite) TestCasValue() {
	b := [4]uint8{0, 5, 0, 0}
	prev, ok := CasValue8(&b[1], 5, 6)
	s.True(ok)
	s.Equal(uint8(5), prev)
	prev, ok = CasValue8(&b[1], 5, 7)
	s.False(ok)
	s.Equal(uint8(6), prev)

	h := uint16(10)
	p16, ok := CasValue16(&h, 11, 12)
	s.False(ok)
	s.Equal(uint16(10), p16)

	w := uint32(1)
	p32, ok := CasValue32(&w, 1, 2)
	s.True(ok)
	s.Equal(uint32(1), p32)
	s.Equal(uint32(2), w)

	var q uint64 = 1 << 40
	p64, ok := CasValue64(&q, 1<<40, 1<<41)
	s.True(ok)
	s.Equal(uint64(1<<40), p64)
	p64, ok = CasValue64(&q, 1<<40, 0)
	s.False(ok)
	s.Equal(uint64(1<<41), p64)
}

func (s *ArchTestSuite) TestUnaryZeroFlag() {
	b := uint8(0xff)
	s.True(IncZero8(&b))
	s.False(DecZero8(&b))
	s.Equal(uint8(0xff), b)
	Not8(&b)
	s.Equal(uint8(0), b)
	s.True(NegZero8(&b))

	h := uint16(1)
	s.True(DecZero16(&h))
	Inc16(&h)
	Neg16(&h)
	s.Equal(uint16(0xffff), h)

	w := uint32(5)
	Neg32(&w)
	s.Equal(uint32(0xfffffffb), w)
	s.False(NegZero32(&w))
	s.Equal(uint32(5), w)

	var q uint64
	s.False(DecZero64(&q))
	s.Equal(^uint64(0), q)
	s.True(IncZero64(&q))
	Not64(&q)
	s.Equal(^uint64(0), q)
}

func (s *ArchTestSuite) TestBinaryZeroFlag() {
	w := uint32(0xf0)
	s.True(AndZero32(&w, 0x0f))
	s.Equal(uint32(0), w)
	s.False(OrZero32(&w, 0x3))
	s.True(XorZero32(&w, 0x3))
	s.True(SubZero32(&w, 0))
	s.False(AddZero32(&w, 9))
	Sub32(&w, 4)
	s.Equal(uint32(5), w)

	var q uint64 = 1 << 33
	s.True(SubZero64(&q, 1<<33))
	Add64(&q, 3)
	Or64(&q, 1<<62)
	And64(&q, 1<<62|1)
	Xor64(&q, 1)
	s.Equal(uint64(1<<62), q)
	s.True(XorZero64(&q, 1<<62))

	b := [4]uint8{0xaa, 0x0f, 0xaa, 0xaa}
	s.True(AndZero8(&b[1], 0xf0))
	s.False(OrZero8(&b[1], 0x81))
	s.True(SubZero8(&b[1], 0x81))
	Add8(&b[1], 0x10)
	Xor8(&b[1], 0x11)
	s.Equal([4]uint8{0xaa, 0x01, 0xaa, 0xaa}, b)

	h := uint16(0x00ff)
	And16(&h, 0x0ff0)
	Or16(&h, 0xf000)
	s.Equal(uint16(0xf0f0), h)
	s.True(XorZero16(&h, 0xf0f0))
}

func (s *ArchTestSuite) TestBits() {
	h := uint16(0)
	s.False(Bts16(&h, 15))
	s.True(Bts16(&h, 15))
	s.True(Btc16(&h, 15))
	s.False(Btr16(&h, 15))
	s.Equal(uint16(0), h)

	w := uint32(1)
	s.True(Btr32(&w, 0))
	s.False(Btc32(&w, 31))
	s.Equal(uint32(1<<31), w)

	var q uint64
	s.False(Bts64(&q, 40))
	s.False(Bts64(&q, 3))
	s.Equal(uint64(1<<40|1<<3), q)
	s.True(Btc64(&q, 40))
	s.True(Btr64(&q, 3))
	s.Equal(uint64(0), q)
}

func (s *ArchTestSuite) TestFencesAndPause() {
	s.NotPanics(func() {
		CompilerBarrier()
		LoadFence()
		StoreFence()
		MemoryFence()
		LoadBarrier()
		StoreBarrier()
		MemoryBarrier()
		Pause()
	})
}

// Neighbouring narrow words share a 32-bit word on some implementations;
// concurrent increments on each lane must not bleed into the others.
func (s *ArchTestSuite) TestConcurrentNarrowCounters() {
	const workers, rounds = 8, 2000
	var b [4]uint8
	var h [2]uint16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(lane int) {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				Inc8(&b[lane%4])
				Add16(&h[lane%2], 1)
			}
		}(i)
	}
	wg.Wait()
	for i := range b {
		s.Equal(uint8(workers/4*rounds%256), b[i])
	}
	for i := range h {
		s.Equal(uint16(workers/2*rounds), h[i])
	}
}

func (s *ArchTestSuite) TestConcurrentCasCounter() {
	const workers, rounds = 8, 1000
	var w uint32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				cur := atomic.LoadUint32(&w)
				for {
					prev, ok := CasValue32(&w, cur, cur+1)
					if ok {
						break
					}
					cur = prev
				}
			}
		}()
	}
	wg.Wait()
	s.Equal(uint32(workers*rounds), w)
}

func TestArchTestSuite(t *testing.T) {
	suite.Run(t, new(ArchTestSuite))
}
