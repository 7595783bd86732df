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
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	internalshm "github.com/srediag/shmatomic/internal/shm"
)

// canCreateOnDevShm reports whether a region of size bytes fits in the free
// space of /dev/shm. Paths elsewhere, and platforms without /dev/shm, are
// not checked.
func canCreateOnDevShm(size uint64, path string) bool {
	if runtime.GOOS != "linux" || !strings.HasPrefix(path, internalshm.DevShm) {
		return true
	}
	stat, err := disk.Usage(internalshm.DevShm)
	if err != nil {
		logger.Warnf("could not stat %s: %v", internalshm.DevShm, err)
		return true
	}
	return stat.Free >= size
}
