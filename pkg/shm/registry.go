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

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/srediag/shmatomic/pkg/pr"
)

type entry struct {
	region *Region
	refs   int32
	err    error
}

// regions holds the named regions opened through Acquire in this process.
var regions = cmap.New[*entry]()

// Acquire returns the process-wide Region for cfg.Name, opening it on first
// use. Each successful Acquire must be paired with a Release. Anonymous
// regions have no name to share and are rejected.
func Acquire(ctx context.Context, cfg Config) (*Region, error) {
	if cfg.Anonymous || cfg.Name == "" {
		return nil, fmt.Errorf("acquire needs a named region: %w", ErrInvalidName)
	}
	e := regions.Upsert(cfg.Name, nil, func(exist bool, cur, _ *entry) *entry {
		if exist && cur.err == nil {
			pr.Inc(&cur.refs)
			return cur
		}
		r, err := Open(ctx, cfg)
		if err != nil {
			return &entry{err: err}
		}
		return &entry{region: r, refs: 1}
	})
	if e.err != nil {
		regions.RemoveCb(cfg.Name, func(_ string, v *entry, exists bool) bool {
			return exists && v == e
		})
		return nil, e.err
	}
	logger.Debugf("acquired region %s, refs %d", cfg.Name, pr.Load(&e.refs))
	return e.region, nil
}

// Release drops one reference to the named region and closes it when the
// last one goes. The region is unmapped and unlinked before its entry leaves
// the registry, so an Acquire that creates the same name afterwards does not
// find the old file.
func Release(name string) error {
	var closeErr error
	found := false
	regions.RemoveCb(name, func(_ string, v *entry, exists bool) bool {
		if !exists || v.err != nil {
			return false
		}
		found = true
		if !pr.DecZero(&v.refs) {
			return false
		}
		logger.Debugf("last reference to region %s released", name)
		closeErr = v.region.Close()
		return true
	})
	if !found {
		return fmt.Errorf("release %s: %w", name, ErrClosed)
	}
	return closeErr
}

// Acquired returns the number of named regions currently held.
func Acquired() int {
	return regions.Count()
}
