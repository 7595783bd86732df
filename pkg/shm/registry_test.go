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

//go:build linux

package shm

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/srediag/shmatomic/internal/contention"
	"github.com/srediag/shmatomic/pkg/pr"
)

func registryName(t *testing.T) string {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skipf("no /dev/shm: %v", err)
	}
	return fmt.Sprintf("shmatomic-registry-%d-%d", os.Getpid(), time.Now().UnixNano())
}

func TestAcquireSharesRegion(t *testing.T) {
	ctx := context.Background()
	name := registryName(t)
	before := Acquired()

	a, err := Acquire(ctx, Config{Name: name, Size: 4096, Create: true})
	require.NoError(t, err)
	// Create only matters for the first Acquire.
	b, err := Acquire(ctx, Config{Name: name, Size: 4096, Create: true})
	require.NoError(t, err)
	require.Same(t, a, b)
	require.Equal(t, before+1, Acquired())

	q, err := a.Uint64(0)
	require.NoError(t, err)
	pr.Inc64(q)

	require.NoError(t, Release(name))
	_, err = b.Uint64(0)
	require.NoError(t, err, "region must stay open while referenced")

	require.NoError(t, Release(name))
	_, err = a.Uint64(0)
	require.ErrorIs(t, err, ErrClosed)
	require.Equal(t, before, Acquired())
	require.ErrorIs(t, Release(name), ErrClosed)
}

func TestAcquireOpenFailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	name := registryName(t)

	_, err := Acquire(ctx, Config{Name: name, Size: 4096})
	require.Error(t, err)
	require.ErrorIs(t, Release(name), ErrClosed)

	r, err := Acquire(ctx, Config{Name: name, Size: 4096, Create: true})
	require.NoError(t, err)
	require.NotNil(t, r)
	require.NoError(t, Release(name))
}

func TestAcquireRejectsAnonymous(t *testing.T) {
	_, err := Acquire(context.Background(), Config{Size: 4096, Anonymous: true})
	require.ErrorIs(t, err, ErrInvalidName)
	_, err = Acquire(context.Background(), Config{Size: 4096})
	require.ErrorIs(t, err, ErrInvalidName)
}

// A name whose last reference is dropped can be created again at once, even
// while other goroutines keep releasing and recreating it.
func TestReleaseThenCreateAgain(t *testing.T) {
	ctx := context.Background()
	name := registryName(t)
	cfg := Config{Name: name, Size: 4096, Create: true}

	for i := 0; i < 50; i++ {
		r, err := Acquire(ctx, cfg)
		require.NoError(t, err, "round %d", i)
		q, err := r.Uint64(0)
		require.NoError(t, err)
		require.Equal(t, uint64(0), pr.Load64(q), "round %d sees a fresh region", i)
		pr.Inc64(q)
		require.NoError(t, Release(name))
	}

	d, err := contention.New(4)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close()) }()
	out, err := d.Run(func(worker int) contention.Outcome {
		for i := 0; i < 50; i++ {
			if _, err := Acquire(ctx, cfg); err != nil {
				return contention.Outcome{Worker: worker, Value: uint64(i)}
			}
			if err := Release(name); err != nil {
				return contention.Outcome{Worker: worker, Value: uint64(i)}
			}
		}
		return contention.Outcome{Worker: worker, OK: true}
	})
	require.NoError(t, err)
	for _, o := range out {
		require.True(t, o.OK, "worker %d failed at iteration %d", o.Worker, o.Value)
	}
	require.ErrorIs(t, Release(name), ErrClosed)
}
