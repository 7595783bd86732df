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

package contention

import (
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// ants starts its default pool when the package is loaded; those
// goroutines live for the whole process.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/panjf2000/ants/v2.(*poolCommon).purgeStaleWorkers"),
		goleak.IgnoreTopFunction("github.com/panjf2000/ants/v2.(*poolCommon).ticktock"),
	)
}

func TestRunCollectsEveryWorker(t *testing.T) {
	d, err := New(6)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close()) }()

	var started int32
	out, err := d.Run(func(worker int) Outcome {
		atomic.AddInt32(&started, 1)
		return Outcome{Worker: worker, Value: uint64(worker * 10), OK: true}
	})
	require.NoError(t, err)
	require.Len(t, out, 6)
	assert.EqualValues(t, 6, started)

	sort.Slice(out, func(i, j int) bool { return out[i].Worker < out[j].Worker })
	for i, o := range out {
		assert.Equal(t, i, o.Worker)
		assert.Equal(t, uint64(i*10), o.Value)
		assert.True(t, o.OK)
	}
}

func TestRunIsReusable(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close()) }()

	for round := 0; round < 3; round++ {
		out, err := d.Run(func(worker int) Outcome { return Outcome{Worker: worker, OK: true} })
		require.NoError(t, err)
		require.Len(t, out, 2)
	}
}

func TestNewRejectsZeroWorkers(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
}
