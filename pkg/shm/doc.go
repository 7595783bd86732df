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

// Package shm maps regions of shared memory and hands out naturally aligned
// atomic locations inside them for use with package pr.
//
// A region is either named, backed by a file under /dev/shm and visible to
// every process that opens the same name, or anonymous, shared only with
// children created after the mapping. Regions are instrumented with
// OpenTelemetry spans and counters when Config carries a Meter and Tracer.
//
// Example usage:
//
//	r, err := shm.Open(ctx, shm.Config{Name: "counters", Size: 4096, Create: true})
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	hits, err := r.Uint64(0)
//	if err != nil {
//		return err
//	}
//	pr.Inc64(hits)
package shm
