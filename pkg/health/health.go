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

// Package health turns a 64-bit counter in shared memory into a liveness
// check. A producer process beats the counter; a monitor in any process
// that maps the same word reports the producer dead when the counter stops
// moving.
package health

import (
	"errors"
	"fmt"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/srediag/shmatomic/internal/debug"
	"github.com/srediag/shmatomic/pkg/pr"
)

// ErrStale is returned by a check whose heartbeat has not moved within the
// window.
var ErrStale = errors.New("health: heartbeat stale")

const (
	defaultName   = "heartbeat"
	defaultWindow = 5 * time.Second
)

var logger = debug.New("health", nil)

// Heartbeat is a counter at a caller-owned, 8-byte aligned word, typically
// one obtained from shm.Region.Uint64.
type Heartbeat struct {
	word *uint64
}

func NewHeartbeat(word *uint64) *Heartbeat {
	return &Heartbeat{word: word}
}

// Beat advances the counter.
func (h *Heartbeat) Beat() {
	pr.Inc64(h.word)
}

// Count returns the current counter value.
func (h *Heartbeat) Count() uint64 {
	return pr.Load64(h.word)
}

// Config holds monitor parameters. Zero values select the defaults.
type Config struct {
	// Name identifies the check and labels the gauge.
	Name string
	// Window is how long the counter may stand still.
	Window time.Duration
	// Registerer receives the gauge; nil leaves it unregistered.
	Registerer prometheus.Registerer
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Monitor watches a Heartbeat. Its check is safe to run from several
// goroutines.
type Monitor struct {
	hb     *Heartbeat
	name   string
	window time.Duration
	now    func() time.Time
	gauge  prometheus.Gauge

	last    uint64
	changed uint64 // unix nanoseconds of the last observed change
}

func NewMonitor(hb *Heartbeat, cfg Config) (*Monitor, error) {
	if cfg.Name == "" {
		cfg.Name = defaultName
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	m := &Monitor{
		hb:     hb,
		name:   cfg.Name,
		window: cfg.Window,
		now:    cfg.Now,
		gauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "shmatomic",
			Subsystem:   "heartbeat",
			Name:        "count",
			Help:        "Last heartbeat counter value observed by the monitor.",
			ConstLabels: prometheus.Labels{"name": cfg.Name},
		}),
		last:    hb.Count(),
		changed: uint64(cfg.Now().UnixNano()),
	}
	if cfg.Registerer != nil {
		if err := cfg.Registerer.Register(m.gauge); err != nil {
			return nil, fmt.Errorf("register heartbeat gauge %s: %w", cfg.Name, err)
		}
	}
	return m, nil
}

// Check returns the liveness check.
func (m *Monitor) Check() healthcheck.Check {
	return m.check
}

// Register adds the check to h as a liveness check under the monitor name.
func (m *Monitor) Register(h healthcheck.Handler) {
	h.AddLivenessCheck(m.name, m.Check())
}

func (m *Monitor) check() error {
	cur := m.hb.Count()
	m.gauge.Set(float64(cur))
	now := m.now().UnixNano()
	// changed is written before last so that a check which finds last
	// already equal to cur also finds the time of that change.
	if prev := pr.Load64(&m.last); prev != cur {
		pr.Store64(&m.changed, uint64(now))
		pr.CAS64(&m.last, prev, cur)
		return nil
	}
	since := time.Duration(now - int64(pr.Load64(&m.changed)))
	if since > m.window {
		logger.Warnf("heartbeat %s stuck at %d for %s", m.name, cur, since)
		return fmt.Errorf("%w: %s stuck at %d for %s", ErrStale, m.name, cur, since)
	}
	return nil
}
