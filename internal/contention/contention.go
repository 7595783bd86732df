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

// Package contention runs the same function on many goroutines at once and
// collects what each one reports. Tests use it to race atomic operations
// against each other.
package contention

import (
	"fmt"
	"sync"
	"time"

	queuepkg "github.com/Workiva/go-datastructures/queue"
	"github.com/panjf2000/ants/v2"
)

const defaultReleaseTimeout = 5 * time.Second

// Outcome is one worker's report.
type Outcome struct {
	Worker int
	Value  uint64
	OK     bool
}

// Driver owns a pool sized so that every worker of a round runs
// concurrently.
type Driver struct {
	workers int
	pool    *ants.Pool
}

// New returns a driver for the given number of workers.
func New(workers int) (*Driver, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("contention: invalid worker count %d", workers)
	}
	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("contention: new pool: %w", err)
	}
	return &Driver{workers: workers, pool: pool}, nil
}

// Workers returns the number of workers per round.
func (d *Driver) Workers() int {
	return d.workers
}

// Run starts fn on every worker, releases them together and returns their
// outcomes in completion order.
func (d *Driver) Run(fn func(worker int) Outcome) ([]Outcome, error) {
	results := queuepkg.New(int64(d.workers))
	defer results.Dispose()

	var ready, done sync.WaitGroup
	start := make(chan struct{})
	ready.Add(d.workers)
	done.Add(d.workers)
	for i := 0; i < d.workers; i++ {
		worker := i
		err := d.pool.Submit(func() {
			defer done.Done()
			ready.Done()
			<-start
			_ = results.Put(fn(worker))
		})
		if err != nil {
			// Unblock and drain the workers already submitted.
			for j := i; j < d.workers; j++ {
				ready.Done()
				done.Done()
			}
			close(start)
			done.Wait()
			return nil, fmt.Errorf("contention: submit worker %d: %w", worker, err)
		}
	}
	ready.Wait()
	close(start)
	done.Wait()

	items, err := results.Get(int64(d.workers))
	if err != nil {
		return nil, fmt.Errorf("contention: collect: %w", err)
	}
	out := make([]Outcome, 0, len(items))
	for _, it := range items {
		o, ok := it.(Outcome)
		if !ok {
			return nil, fmt.Errorf("contention: unexpected result %T", it)
		}
		out = append(out, o)
	}
	return out, nil
}

// Close releases the pool and waits for its goroutines to exit.
func (d *Driver) Close() error {
	return d.pool.ReleaseTimeout(defaultReleaseTimeout)
}
