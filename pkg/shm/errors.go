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

	internalshm "github.com/srediag/shmatomic/internal/shm"
)

var (
	// ErrMisaligned is returned for a location that is not naturally aligned.
	ErrMisaligned = internalshm.ErrMisaligned
	// ErrOutOfRange is returned for a location that does not fit the region.
	ErrOutOfRange = internalshm.ErrOutOfRange
	// ErrUnsupportedPlatform is returned for named regions off Linux.
	ErrUnsupportedPlatform = internalshm.ErrUnsupported
	// ErrNotEnoughSpace is returned when /dev/shm cannot hold a new region
	// or a slot pool is exhausted.
	ErrNotEnoughSpace = errors.New("shm: not enough space")
	// ErrClosed is returned by operations on a closed region.
	ErrClosed = errors.New("shm: region closed")
	// ErrNotAllocated is returned when freeing a slot that is not in use.
	ErrNotAllocated = errors.New("shm: slot not allocated")
	// ErrInvalidSize is returned for a non-positive region or slot size.
	ErrInvalidSize = errors.New("shm: invalid size")
	// ErrInvalidName is returned when a named region has no name, or when a
	// region without a name is used where one is required.
	ErrInvalidName = errors.New("shm: invalid name")
)
