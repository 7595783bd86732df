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

//go:build amd64 || 386 || arm || mips || mipsle

package pr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func checkPairUintptr(t *testing.T) {
	p := NewPairUintptr()
	require.Equal(t, PairUintptr{}, LoadPairUintptr(p))

	StorePairUintptr(p, PairUintptr{0x10, 0x20})
	require.Equal(t, PairUintptr{0x10, 0x20}, *p)

	require.True(t, CASPairUintptr(p, PairUintptr{0x10, 0x20}, PairUintptr{0x30, 0x40}))
	StoreUintptr(&p[0], 0x31)
	observed, ok := CASPairValueUintptr(p, PairUintptr{0x30, 0x40}, PairUintptr{})
	require.False(t, ok)
	require.Equal(t, PairUintptr{0x31, 0x40}, observed)

	v, ok := LoadPairUintptrWith(p, nil)
	require.True(t, ok)
	require.Equal(t, PairUintptr{0x31, 0x40}, v)
	require.True(t, StorePairUintptrWith(p, PairUintptr{1, 2}, nil))
	require.Equal(t, PairUintptr{1, 2}, LoadPairUintptr(p))
}
