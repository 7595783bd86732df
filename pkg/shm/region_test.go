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

package shm

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"
	"testing"
	"time"
	"unsafe"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/srediag/shmatomic/pkg/pr"
)

type recordingTracer struct {
	tracenoop.Tracer
	spans []string
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	t.spans = append(t.spans, name)
	return t.Tracer.Start(ctx, name, opts...)
}

type recordingCounter struct {
	metricnoop.Int64Counter
	total *int64
}

func (c recordingCounter) Add(_ context.Context, n int64, _ ...metric.AddOption) {
	*c.total += n
}

type recordingMeter struct {
	metricnoop.Meter
	counts map[string]*int64
}

func (m *recordingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	n := new(int64)
	m.counts[name] = n
	return recordingCounter{total: n}, nil
}

type RegionTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *RegionTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RegionTestSuite) anonymous(size int) *Region {
	r, err := Open(s.ctx, Config{Size: size, Anonymous: true})
	s.Require().NoError(err)
	return r
}

func (s *RegionTestSuite) TestTypedLocations() {
	r := s.anonymous(4096)
	defer r.Close()
	s.Equal("anonymous", r.Name())
	s.Equal(4096, r.Size())

	b, err := r.Uint8(3)
	s.Require().NoError(err)
	pr.Store8(b, 0x7f)
	s.Equal(byte(0x7f), r.Bytes()[3])

	h, err := r.Uint16(6)
	s.Require().NoError(err)
	pr.Store16(h, 1)
	s.True(pr.DecZero16(h))

	w, err := r.Uint32(8)
	s.Require().NoError(err)
	s.Equal(uint32(0), pr.FetchAdd32(w, 5))

	q, err := r.Uint64(16)
	s.Require().NoError(err)
	pr.Inc64(q)
	s.Equal(uint64(1), pr.Load64(q))

	u, err := r.Uintptr(24)
	s.Require().NoError(err)
	s.False(pr.BitTestAndSetUintptr(u, 3))

	p, err := r.Pair32(32)
	s.Require().NoError(err)
	s.True(pr.CASPair32(p, pr.Pair32{}, pr.Pair32{1, 2}))

	pp, err := r.PairUintptr(64)
	s.Require().NoError(err)
	s.Zero(uintptr(unsafe.Pointer(pp)) % unsafe.Sizeof(pr.PairUintptr{}))
}

func (s *RegionTestSuite) TestLocationErrors() {
	r := s.anonymous(64)
	defer r.Close()

	_, err := r.Uint32(2)
	s.ErrorIs(err, ErrMisaligned)
	_, err = r.Uint64(4)
	s.ErrorIs(err, ErrMisaligned)
	_, err = r.Uint64(64)
	s.ErrorIs(err, ErrOutOfRange)
	_, err = r.Pair32(60)
	s.ErrorIs(err, ErrOutOfRange)
	_, err = r.Uint8(64)
	s.ErrorIs(err, ErrOutOfRange)
}

func (s *RegionTestSuite) TestClose() {
	r := s.anonymous(64)
	s.NoError(r.Close())
	s.ErrorIs(r.Close(), ErrClosed)
	_, err := r.Uint64(0)
	s.ErrorIs(err, ErrClosed)
	s.Zero(r.Size())
	s.Nil(r.Bytes())
}

func (s *RegionTestSuite) TestInvalidConfig() {
	_, err := Open(s.ctx, Config{Size: 0, Anonymous: true})
	s.ErrorIs(err, ErrInvalidSize)
	_, err = Open(s.ctx, Config{Size: 64})
	s.ErrorIs(err, ErrInvalidName)
	s.NotErrorIs(err, ErrInvalidSize)
}

func (s *RegionTestSuite) TestInstrumentation() {
	tracer := &recordingTracer{}
	meter := &recordingMeter{counts: map[string]*int64{}}
	r, err := Open(s.ctx, Config{Size: 64, Anonymous: true, Meter: meter, Tracer: tracer})
	s.Require().NoError(err)
	s.NoError(r.Close())

	s.Equal([]string{"shm.Open", "shm.Close"}, tracer.spans)
	s.Equal(int64(1), *meter.counts["shm.region.maps"])
	s.Equal(int64(1), *meter.counts["shm.region.unmaps"])
}

func (s *RegionTestSuite) TestDump() {
	r := s.anonymous(64)
	defer r.Close()
	copy(r.Bytes(), "shmatomic")

	out := Dump(r, 16)
	s.Contains(out, "73 68 6d 61")
	s.Contains(out, "|shmatomic")
	s.Equal(Dump(r, 64), Dump(r, 1000))
	s.Empty(Dump(r, -1))
}

func (s *RegionTestSuite) TestNamedRegionSharedBetweenMappings() {
	if runtime.GOOS != "linux" {
		s.T().Skip("named regions need /dev/shm")
	}
	name := fmt.Sprintf("shmatomic-region-%d-%d", os.Getpid(), time.Now().UnixNano())
	a, err := Open(s.ctx, Config{Name: name, Size: 4096, Create: true})
	s.Require().NoError(err)
	defer a.Close()
	b, err := Open(s.ctx, Config{Name: name, Size: 4096})
	s.Require().NoError(err)
	defer b.Close()

	qa, err := a.Uint64(128)
	s.Require().NoError(err)
	qb, err := b.Uint64(128)
	s.Require().NoError(err)
	s.NotEqual(unsafe.Pointer(qa), unsafe.Pointer(qb))

	pr.Add64(qa, 41)
	s.True(pr.CAS64(qb, 41, 42))
	s.Equal(uint64(42), pr.Load64(qa))

	_, err = Open(s.ctx, Config{Name: name, Size: 4096, Create: true})
	s.Error(err)
}

func TestRegionTestSuite(t *testing.T) {
	suite.Run(t, new(RegionTestSuite))
}

func TestCanCreateOnDevShm(t *testing.T) {
	switch runtime.GOOS {
	case "linux":
		// only paths under /dev/shm are checked
		assert.True(t, canCreateOnDevShm(math.MaxUint64, "sdffafds"))
		stat, err := disk.Usage("/dev/shm")
		if err != nil {
			t.Skipf("no /dev/shm: %v", err)
		}
		assert.True(t, canCreateOnDevShm(stat.Free/2, "/dev/shm/xxx"))
		assert.False(t, canCreateOnDevShm(math.MaxUint64, "/dev/shm/yyy"))
	default:
		assert.True(t, canCreateOnDevShm(33333, "sdffafds"))
	}
}
