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

// Package shm maps the memory that shared atomic locations live in and
// resolves typed locations inside it.
package shm

import "errors"

// DevShm is where named regions are created.
const DevShm = "/dev/shm"

var (
	// ErrUnsupported is returned for mappings this platform cannot provide.
	ErrUnsupported = errors.New("shm: unsupported on this platform")
	// ErrOutOfRange is returned when a location does not fit in the mapping.
	ErrOutOfRange = errors.New("shm: location out of range")
	// ErrMisaligned is returned when a location is not naturally aligned.
	ErrMisaligned = errors.New("shm: location misaligned")
)

// MappedRegion is a mapping of shared memory.
type MappedRegion struct {
	Addr []byte
	// Fd is the descriptor behind a named mapping, -1 otherwise.
	Fd int
	// Path is the file backing a named mapping.
	Path string
	// Created records that this process created the backing file and is
	// responsible for unlinking it.
	Created bool
}

// MapOptions defines options for mapping shared memory.
type MapOptions struct {
	Name   string
	Size   int
	Create bool
	// Anonymous maps memory shared with children only; Name is ignored.
	Anonymous bool
}
