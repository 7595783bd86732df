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

// Package prmetrics instruments the retry policies handed to the
// compare-and-swap loops of package pr. A wrapped policy behaves exactly
// like the one it wraps and counts each retry it grants and each time it
// gives up.
package prmetrics

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/srediag/shmatomic/internal/debug"
)

const defaultName = "default"

var logger = debug.New("prmetrics", nil)

// Options configures Wrap.
type Options struct {
	// Name labels every series produced for this policy.
	Name string
	// Registerer receives the retry and stop counters. Nil keeps them
	// private to the returned policy.
	Registerer prometheus.Registerer
	// Meter records the same events as an OpenTelemetry counter. Nil
	// selects a no-op meter.
	Meter metric.Meter
}

// Policy is an instrumented backoff.BackOff.
type Policy struct {
	inner   backoff.BackOff
	retries prometheus.Counter
	stops   prometheus.Counter
	events  metric.Int64Counter
	retry   metric.MeasurementOption
	stop    metric.MeasurementOption
}

// Wrap returns b with instrumentation. A nil b retries forever without
// sleeping, the same as passing no policy to pr.
func Wrap(b backoff.BackOff, opts Options) *Policy {
	if b == nil {
		b = &backoff.ZeroBackOff{}
	}
	if opts.Name == "" {
		opts.Name = defaultName
	}
	if opts.Meter == nil {
		opts.Meter = noop.NewMeterProvider().Meter("shmatomic/prmetrics")
	}
	p := &Policy{
		inner:   b,
		retries: register(opts.Registerer, counterOpts(opts.Name, "retries_total", "Retries granted to a compare-and-swap loop.")),
		stops:   register(opts.Registerer, counterOpts(opts.Name, "stops_total", "Compare-and-swap loops abandoned by their policy.")),
		retry:   metric.WithAttributes(attribute.String("policy", opts.Name), attribute.String("outcome", "retry")),
		stop:    metric.WithAttributes(attribute.String("policy", opts.Name), attribute.String("outcome", "stop")),
	}
	events, err := opts.Meter.Int64Counter("pr.loop.backoff",
		metric.WithDescription("Retry decisions taken by compare-and-swap loop policies."))
	if err != nil {
		logger.Warnf("create otel counter for %s: %v", opts.Name, err)
		events, _ = noop.NewMeterProvider().Meter("").Int64Counter("pr.loop.backoff")
	}
	p.events = events
	return p
}

func counterOpts(name, metricName, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   "shmatomic",
		Subsystem:   "pr_loop",
		Name:        metricName,
		Help:        help,
		ConstLabels: prometheus.Labels{"policy": name},
	}
}

// register adds a counter to reg, reusing the collector already there when
// another policy with the same name registered first.
func register(reg prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
		logger.Warnf("register %s_%s_%s: %v", opts.Namespace, opts.Subsystem, opts.Name, err)
	}
	return c
}

// NextBackOff implements backoff.BackOff.
func (p *Policy) NextBackOff() time.Duration {
	d := p.inner.NextBackOff()
	if d == backoff.Stop {
		p.stops.Inc()
		p.events.Add(context.Background(), 1, p.stop)
		return d
	}
	p.retries.Inc()
	p.events.Add(context.Background(), 1, p.retry)
	return d
}

// Reset implements backoff.BackOff.
func (p *Policy) Reset() {
	p.inner.Reset()
}

// Retries returns the number of retries granted so far.
func (p *Policy) Retries() float64 {
	return value(p.retries)
}

// Stops returns the number of times the policy gave up.
func (p *Policy) Stops() float64 {
	return value(p.stops)
}
