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
	"unsafe"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/srediag/shmatomic/internal/contention"
)

type Pair64TestSuite struct {
	suite.Suite
}

func (s *Pair64TestSuite) SetupTest() {
	if !DoubleWordSupported() {
		s.T().Skip("CMPXCHG16B not available")
	}
}

func (s *Pair64TestSuite) TestAligned() {
	for i := 0; i < 64; i++ {
		s.Zero(uintptr(unsafe.Pointer(NewPair64())) % 16)
		s.Zero(uintptr(unsafe.Pointer(NewPairUintptr())) % 16)
	}
}

func (s *Pair64TestSuite) TestLoadStoreCAS() {
	p := NewPair64()
	s.Equal(Pair64{}, LoadPair64(p))

	StorePair64(p, Pair64{1 << 40, 2})
	s.Equal(Pair64{1 << 40, 2}, LoadPair64(p))

	s.True(CASPair64(p, Pair64{1 << 40, 2}, Pair64{3, 1 << 50}))
	observed, ok := CASPairValue64(p, Pair64{1 << 40, 2}, Pair64{})
	s.False(ok)
	s.Equal(Pair64{3, 1 << 50}, observed)
}

func (s *Pair64TestSuite) TestTornPairRejected() {
	p := NewPair64()
	StorePair64(p, Pair64{10, 20})
	old := LoadPair64(p)
	Store64(&p[1], 21)
	s.False(CASPair64(p, old, Pair64{0, 0}))
	s.Equal(Pair64{10, 21}, LoadPair64(p))
}

func (s *Pair64TestSuite) TestBoundedLoad() {
	p := NewPair64()
	StorePair64(p, Pair64{7, 8})

	// An uncontended load lands on the second attempt at the latest, so one
	// retry is always enough.
	v, ok := LoadPair64With(p, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1))
	s.True(ok)
	s.Equal(Pair64{7, 8}, v)

	// With no retries, the seeded attempt fails but still reports what it saw.
	v, ok = LoadPair64With(p, &backoff.StopBackOff{})
	s.False(ok)
	s.Equal(Pair64{7, 8}, v)

	s.False(StorePair64With(p, Pair64{1, 1}, &backoff.StopBackOff{}))
	s.Equal(Pair64{7, 8}, LoadPair64(p))
}

func TestPair64TestSuite(t *testing.T) {
	suite.Run(t, new(Pair64TestSuite))
}

func TestPair64StaysConsistent(t *testing.T) {
	if !DoubleWordSupported() {
		t.Skip("CMPXCHG16B not available")
	}
	const rounds = 1000
	d, err := contention.New(4)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close()) }()

	p := NewPair64()
	out, err := d.Run(func(worker int) contention.Outcome {
		for i := 0; i < rounds; i++ {
			cur := LoadPair64(p)
			for {
				if cur[0] != cur[1] {
					return contention.Outcome{Worker: worker}
				}
				observed, ok := CASPairValue64(p, cur, Pair64{cur[0] + 1, cur[1] + 1})
				if ok {
					break
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
	require.Equal(t, Pair64{4 * rounds, 4 * rounds}, LoadPair64(p))
}
