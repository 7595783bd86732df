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
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/srediag/shmatomic/internal/arch"
)

// casFunc is a value-returning compare-and-swap over one double-word unit.
type casFunc[U comparable] func(old, new U) (observed U, swapped bool)

// loadLoop reads a unit that has no atomic load by swapping it with itself.
// It starts from the zero value and adopts whatever the failed attempt
// observed. A nil policy retries until the swap lands.
func loadLoop[U comparable](cas casFunc[U], b backoff.BackOff) (U, bool) {
	var cur U
	if b != nil {
		b.Reset()
	}
	for {
		observed, ok := cas(cur, cur)
		if ok {
			return cur, true
		}
		cur = observed
		if !wait(b) {
			return cur, false
		}
	}
}

// storeLoop writes v to a unit that has no atomic store.
func storeLoop[U comparable](cas casFunc[U], v U, b backoff.BackOff) bool {
	var cur U
	if b != nil {
		b.Reset()
	}
	for {
		observed, ok := cas(cur, v)
		if ok {
			return true
		}
		cur = observed
		if !wait(b) {
			return false
		}
	}
}

// wait runs between attempts. It reports false once the policy gives up.
func wait(b backoff.BackOff) bool {
	if b == nil {
		arch.Pause()
		return true
	}
	d := b.NextBackOff()
	switch {
	case d == backoff.Stop:
		return false
	case d > 0:
		time.Sleep(d)
	default:
		arch.Pause()
	}
	return true
}
