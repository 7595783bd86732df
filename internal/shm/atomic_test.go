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
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	words := make([]uint64, 4)
	mem := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), 32)

	p, err := Locate(mem, 8, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, unsafe.Pointer(&words[1]), p)

	_, err = Locate(mem, 4, 8, 8)
	assert.True(t, errors.Is(err, ErrMisaligned))

	_, err = Locate(mem, 28, 8, 4)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = Locate(mem, 40, 1, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = Locate(mem, 0, 0, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	p, err = Locate(mem, 31, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, unsafe.Pointer(&mem[31]), p)
}
