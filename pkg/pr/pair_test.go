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
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/srediag/shmatomic/internal/contention"
)

type PairTestSuite struct {
	suite.Suite
}

func (s *PairTestSuite) TestPair32() {
	p := NewDouble[Pair32]()
	s.Equal(Pair32{}, LoadPair32(p))
	StorePair32(p, Pair32{1, 2})
	s.Equal(Pair32{1, 2}, *p)

	s.True(CASPair32(p, Pair32{1, 2}, Pair32{3, 4}))
	s.Equal(Pair32{3, 4}, LoadPair32(p))

	observed, ok := CASPairValue32(p, Pair32{1, 2}, Pair32{5, 6})
	s.False(ok)
	s.Equal(Pair32{3, 4}, observed)
	s.Equal(Pair32{3, 4}, *p)
}

// Changing either word between the read and the exchange must fail the
// exchange even though the other word still matches.
func (s *PairTestSuite) TestTornPairRejected() {
	p := NewDouble[Pair32]()
	StorePair32(p, Pair32{1, 2})

	old := LoadPair32(p)
	Store32(&p[1], 3)
	s.False(CASPair32(p, old, Pair32{7, 7}))
	s.Equal(Pair32{1, 3}, LoadPair32(p))

	old = LoadPair32(p)
	Inc32(&p[0])
	observed, ok := CASPairValue32(p, old, Pair32{7, 7})
	s.False(ok)
	s.Equal(Pair32{2, 3}, observed)
}

func (s *PairTestSuite) TestQuad16() {
	q := NewDouble[Quad16]()
	StoreQuad16(q, Quad16{1, 2, 3, 4})
	old := LoadQuad16(q)
	Store16(&q[2], 9)
	s.False(CASQuad16(q, old, Quad16{}))

	observed, ok := CASQuadValue16(q, old, Quad16{})
	s.False(ok)
	s.Equal(Quad16{1, 2, 9, 4}, observed)
	s.True(CASQuad16(q, observed, Quad16{5, 6, 7, 8}))
	s.Equal(Quad16{5, 6, 7, 8}, LoadQuad16(q))
}

func (s *PairTestSuite) TestOctet8() {
	o := NewDouble[Octet8]()
	StoreOctet8(o, Octet8{1, 2, 3, 4, 5, 6, 7, 8})
	old := LoadOctet8(o)
	Store8(&o[7], 0)
	s.False(CASOctet8(o, old, Octet8{}))

	observed, ok := CASOctetValue8(o, Octet8{1, 2, 3, 4, 5, 6, 7, 0}, Octet8{8, 7, 6, 5, 4, 3, 2, 1})
	s.True(ok)
	s.Equal(Octet8{1, 2, 3, 4, 5, 6, 7, 0}, observed)
	s.Equal(Octet8{8, 7, 6, 5, 4, 3, 2, 1}, LoadOctet8(o))
}

func (s *PairTestSuite) TestPairUintptr() {
	if !HasPairUintptr || (HasPair64 && !DoubleWordSupported()) {
		s.T().Skip("no two-word exchange for native words")
	}
	checkPairUintptr(s.T())
}

func TestPairTestSuite(t *testing.T) {
	suite.Run(t, new(PairTestSuite))
}

// Workers bump both halves together; any snapshot with unequal halves is a
// torn read or a torn write.
func TestPair32StaysConsistent(t *testing.T) {
	const rounds = 2000
	d, err := contention.New(4)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close()) }()

	p := NewDouble[Pair32]()
	out, err := d.Run(func(worker int) contention.Outcome {
		for i := 0; i < rounds; i++ {
			cur := LoadPair32(p)
			if cur[0] != cur[1] {
				return contention.Outcome{Worker: worker}
			}
			for {
				next := Pair32{cur[0] + 1, cur[1] + 1}
				observed, ok := CASPairValue32(p, cur, next)
				if ok {
					break
				}
				if observed[0] != observed[1] {
					return contention.Outcome{Worker: worker}
				}
				cur = observed
			}
		}
		return contention.Outcome{Worker: worker, OK: true}
	})
	require.NoError(t, err)
	for _, o := range out {
		require.True(t, o.OK, "worker %d saw a torn pair", o.Worker)
	}
	require.Equal(t, Pair32{4 * rounds, 4 * rounds}, LoadPair32(p))
}
