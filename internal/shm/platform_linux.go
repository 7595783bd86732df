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

//go:build linux

package shm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// MapRegion maps or creates a shared memory region (Linux implementation).
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Anonymous {
		addr, err := unix.Mmap(-1, 0, opts.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANONYMOUS)
		if err != nil {
			return nil, fmt.Errorf("mmap anonymous: %w", err)
		}
		return &MappedRegion{Addr: addr, Fd: -1}, nil
	}

	flags := unix.O_RDWR | unix.O_CLOEXEC
	if opts.Create {
		flags |= unix.O_CREAT | unix.O_EXCL
	}
	shmPath := filepath.Join(DevShm, opts.Name)
	fd, err := unix.Open(shmPath, flags, 0600)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", shmPath, err)
	}
	if opts.Create {
		if err := unix.Ftruncate(fd, int64(opts.Size)); err != nil {
			_ = unix.Close(fd)
			_ = unix.Unlink(shmPath)
			return nil, fmt.Errorf("ftruncate: %w", err)
		}
	} else {
		var st unix.Stat_t
		if err := unix.Fstat(fd, &st); err != nil {
			_ = unix.Close(fd)
			return nil, fmt.Errorf("fstat: %w", err)
		}
		if st.Size < int64(opts.Size) {
			_ = unix.Close(fd)
			return nil, fmt.Errorf("%s holds %d bytes, want %d: %w", shmPath, st.Size, opts.Size, ErrOutOfRange)
		}
	}
	addr, err := unix.Mmap(fd, 0, opts.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		if opts.Create {
			_ = unix.Unlink(shmPath)
		}
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &MappedRegion{
		Addr:    addr,
		Fd:      fd,
		Path:    shmPath,
		Created: opts.Create,
	}, nil
}

// UnmapRegion unmaps the region, closes its descriptor and, if this process
// created it, removes the backing file.
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	var errs []error
	if err := unix.Munmap(region.Addr); err != nil {
		errs = append(errs, fmt.Errorf("munmap: %w", err))
	}
	region.Addr = nil
	if region.Fd >= 0 {
		if err := unix.Close(region.Fd); err != nil {
			errs = append(errs, fmt.Errorf("close: %w", err))
		}
		region.Fd = -1
	}
	if region.Created && region.Path != "" {
		if err := unix.Unlink(region.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("unlink: %w", err))
		}
	}
	return errors.Join(errs...)
}
