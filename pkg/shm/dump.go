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
	"encoding/hex"

	"github.com/valyala/bytebufferpool"
)

// Dump returns a hex dump of the first n bytes of the region, or of the
// whole region if it is smaller.
func Dump(r *Region, n int) string {
	return dump(r.Bytes(), n)
}

func dump(mem []byte, n int) string {
	if n > len(mem) {
		n = len(mem)
	}
	if n < 0 {
		n = 0
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	d := hex.Dumper(buf)
	_, _ = d.Write(mem[:n])
	_ = d.Close()
	return buf.String()
}
