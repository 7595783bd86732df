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
	"unsafe"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/srediag/shmatomic/internal/debug"
	internalshm "github.com/srediag/shmatomic/internal/shm"
	"github.com/srediag/shmatomic/pkg/pr"
)

const instrumentationName = "github.com/srediag/shmatomic/pkg/shm"

var logger = debug.New("shm", nil)

// Config holds region creation parameters.
type Config struct {
	Name   string // region name under /dev/shm; ignored when Anonymous
	Size   int    // region size in bytes
	Create bool   // create the region; fails if it already exists
	// Anonymous maps a region with no name, shared only with children.
	Anonymous bool
	Meter     metric.Meter
	Tracer    trace.Tracer
}

// Region is a mapped shared memory region.
type Region struct {
	name   string
	mapped *internalshm.MappedRegion
	closed uint32

	tracer  trace.Tracer
	maps    metric.Int64Counter
	unmaps  metric.Int64Counter
	attrSet attribute.Set
}

// Open maps the region described by cfg. Creating a named region first
// checks that /dev/shm has room for it.
func Open(ctx context.Context, cfg Config) (r *Region, err error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("size %d: %w", cfg.Size, ErrInvalidSize)
	}
	if !cfg.Anonymous && cfg.Name == "" {
		return nil, fmt.Errorf("named region without a name: %w", ErrInvalidName)
	}
	meter, tracer := cfg.Meter, cfg.Tracer
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}

	r = &Region{name: cfg.Name, tracer: tracer}
	if cfg.Anonymous {
		r.name = "anonymous"
	}
	r.attrSet = attribute.NewSet(
		attribute.String("shm.name", r.name),
		attribute.Int("shm.size", cfg.Size),
	)
	if r.maps, err = meter.Int64Counter("shm.region.maps",
		metric.WithDescription("Regions mapped.")); err != nil {
		return nil, fmt.Errorf("maps counter: %w", err)
	}
	if r.unmaps, err = meter.Int64Counter("shm.region.unmaps",
		metric.WithDescription("Regions unmapped.")); err != nil {
		return nil, fmt.Errorf("unmaps counter: %w", err)
	}

	ctx, span := tracer.Start(ctx, "shm.Open", trace.WithAttributes(r.attrSet.ToSlice()...))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if cfg.Create && !cfg.Anonymous && !canCreateOnDevShm(uint64(cfg.Size), internalshm.DevShm+"/"+cfg.Name) {
		return nil, fmt.Errorf("create %s with %d bytes: %w", cfg.Name, cfg.Size, ErrNotEnoughSpace)
	}
	r.mapped, err = internalshm.MapRegion(ctx, internalshm.MapOptions{
		Name:      cfg.Name,
		Size:      cfg.Size,
		Create:    cfg.Create,
		Anonymous: cfg.Anonymous,
	})
	if err != nil {
		return nil, err
	}
	r.maps.Add(ctx, 1, metric.WithAttributeSet(r.attrSet))
	logger.Infof("mapped region %s, %d bytes", r.name, cfg.Size)
	return r, nil
}

// Name returns the region name, "anonymous" for anonymous regions.
func (r *Region) Name() string { return r.name }

// Size returns the mapped size in bytes.
func (r *Region) Size() int {
	if r.isClosed() {
		return 0
	}
	return len(r.mapped.Addr)
}

// Bytes returns the mapping. The slice is invalid once the region is
// closed.
func (r *Region) Bytes() []byte {
	if r.isClosed() {
		return nil
	}
	return r.mapped.Addr
}

func (r *Region) isClosed() bool {
	return pr.Load32(&r.closed) != 0
}

// Close unmaps the region. A region this process created is also unlinked.
// Closing twice returns ErrClosed.
func (r *Region) Close() error {
	if !pr.CAS32(&r.closed, 0, 1) {
		return ErrClosed
	}
	ctx, span := r.tracer.Start(context.Background(), "shm.Close", trace.WithAttributes(r.attrSet.ToSlice()...))
	defer span.End()

	if debug.DebugMode() {
		logger.Debugf("region %s at close:\n%s", r.name, dump(r.mapped.Addr, 256))
	}
	if err := internalshm.UnmapRegion(ctx, r.mapped); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warnf("unmap region %s: %v", r.name, err)
		return err
	}
	r.unmaps.Add(ctx, 1, metric.WithAttributeSet(r.attrSet))
	logger.Infof("unmapped region %s", r.name)
	return nil
}

func (r *Region) locate(off, size, align uintptr) (unsafe.Pointer, error) {
	if r.isClosed() {
		return nil, ErrClosed
	}
	return internalshm.Locate(r.mapped.Addr, off, size, align)
}

func (r *Region) Uint8(off uintptr) (*uint8, error) {
	p, err := r.locate(off, 1, 1)
	return (*uint8)(p), err
}

func (r *Region) Uint16(off uintptr) (*uint16, error) {
	p, err := r.locate(off, 2, 2)
	return (*uint16)(p), err
}

func (r *Region) Uint32(off uintptr) (*uint32, error) {
	p, err := r.locate(off, 4, 4)
	return (*uint32)(p), err
}

// Uint64 requires 8-byte alignment on every architecture, including 386
// where the language only aligns uint64 to 4.
func (r *Region) Uint64(off uintptr) (*uint64, error) {
	p, err := r.locate(off, 8, 8)
	return (*uint64)(p), err
}

func (r *Region) Uintptr(off uintptr) (*uintptr, error) {
	p, err := r.locate(off, unsafe.Sizeof(uintptr(0)), unsafe.Sizeof(uintptr(0)))
	return (*uintptr)(p), err
}

// Pair32 returns an 8-byte double-word unit.
func (r *Region) Pair32(off uintptr) (*pr.Pair32, error) {
	p, err := r.locate(off, 8, 8)
	return (*pr.Pair32)(p), err
}

// PairUintptr returns a two-word unit aligned to its own size, as the
// double-word exchange requires.
func (r *Region) PairUintptr(off uintptr) (*pr.PairUintptr, error) {
	size := unsafe.Sizeof(pr.PairUintptr{})
	p, err := r.locate(off, size, size)
	return (*pr.PairUintptr)(p), err
}
