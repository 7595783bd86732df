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

package prmetrics

import (
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srediag/shmatomic/pkg/pr"
)

func TestLoadPair64Instrumented(t *testing.T) {
	if !pr.DoubleWordSupported() {
		t.Skip("CMPXCHG16B not available")
	}
	p := pr.NewPair64()
	pr.StorePair64(p, pr.Pair64{1, 2})

	// The load seeds from zero, so one retry is needed to adopt the
	// stored value.
	policy := Wrap(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 4), Options{Name: "pair64"})
	v, ok := pr.LoadPair64With(p, policy)
	require.True(t, ok)
	assert.Equal(t, pr.Pair64{1, 2}, v)
	assert.Equal(t, float64(1), policy.Retries())
	assert.Zero(t, policy.Stops())

	// An immediate stop leaves the loop after the first failed attempt.
	stop := Wrap(&backoff.StopBackOff{}, Options{Name: "stop"})
	v, ok = pr.LoadPair64With(p, stop)
	assert.False(t, ok)
	assert.Equal(t, pr.Pair64{1, 2}, v)
	assert.Equal(t, float64(1), stop.Stops())
}
