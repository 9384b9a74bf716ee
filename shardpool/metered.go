// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// Prometheus-instrumented wrapper around Pool: MeteredPool adds an
// observability layer without altering the checkout/return contract.

package shardpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cbtreed"

// MeteredPool wraps a Pool and records checkout/return activity as
// Prometheus counters and gauges via the promauto.New* idiom.
type MeteredPool struct {
	pool *Pool

	checkouts prometheus.Counter
	returns   prometheus.Counter
	waitTime  prometheus.Histogram
	active    prometheus.Gauge
	shardSize *prometheus.GaugeVec
}

// NewMeteredPool wraps pool with Prometheus instrumentation.
func NewMeteredPool(pool *Pool) *MeteredPool {
	return &MeteredPool{
		pool: pool,
		checkouts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shard_checkouts_total",
			Help:      "number of shard checkouts",
		}),
		returns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shard_returns_total",
			Help:      "number of shard returns",
		}),
		waitTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "shard_checkout_wait_seconds",
			Help:      "time spent waiting for a shard to become available",
		}),
		active: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shard_active",
			Help:      "number of shards currently checked out",
		}),
		shardSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shard_records",
			Help:      "number of records held by a shard at last return",
		}, []string{"shard"}),
	}
}

// Checkout behaves like Pool.Checkout, additionally recording wait time and
// checkout counts.
func (m *MeteredPool) Checkout(name string) (*Shard, error) {
	start := time.Now()
	s, err := m.pool.Checkout(name)
	if err != nil {
		return nil, err
	}
	m.waitTime.Observe(time.Since(start).Seconds())
	m.checkouts.Inc()
	m.active.Set(float64(m.pool.Active()))
	return s, nil
}

// Return behaves like Pool.Return, additionally recording the shard's size
// and return counts.
func (m *MeteredPool) Return(s *Shard) error {
	if err := m.pool.Return(s); err != nil {
		return err
	}
	m.returns.Inc()
	m.active.Set(float64(m.pool.Active()))

	n := 0
	for r := s.Tree.First(); r != nil; r = s.Tree.Next(r) {
		n++
	}
	m.shardSize.WithLabelValues(s.Name).Set(float64(n))
	return nil
}

// Names delegates to the wrapped Pool.
func (m *MeteredPool) Names() []string { return m.pool.Names() }

// Active delegates to the wrapped Pool.
func (m *MeteredPool) Active() int { return m.pool.Active() }
