// SPDX-License-Identifier: MIT

// Package metrics exports storage-engine reshape activity to Prometheus.
//
// A Collector implements engine.Observer; attach it with engine.WithObserver.
// Engines sharing one Collector aggregate into the same series.
package metrics

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvengine/engine"
	"github.com/prometheus/client_golang/prometheus"
)

// Subsystem is the metric subsystem shared by every series of a Collector.
const Subsystem = "engine"

// Reshape modes (values of the "mode" label).
const (
	ModeInPlace = "in_place"
	ModeRealloc = "realloc"
)

// allocatedBuckets spans 1 cell to ~16M cells in powers of four.
var allocatedBuckets = prometheus.ExponentialBuckets(1, 4, 13)

// Collector counts reshapes and the cells they move, fill and allocate.
type Collector struct {
	reshapes    *prometheus.CounterVec
	reallocated prometheus.Counter
	filled      prometheus.Counter
	allocated   prometheus.Histogram
}

var _ engine.Observer = (*Collector)(nil)

// NewCollector creates and registers the reshape series under namespace.
// A nil reg selects prometheus.DefaultRegisterer. When a series is already
// registered (another Collector with the same namespace), the existing one is
// reused.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		reshapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: Subsystem,
			Name:      "reshapes_total",
			Help:      "Completed storage reshapes by mode (in_place, realloc)",
		}, []string{"mode"}),
		reallocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: Subsystem,
			Name:      "reallocated_elements_total",
			Help:      "Cells moved into new buffers by reallocating reshapes",
		}),
		filled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: Subsystem,
			Name:      "filled_elements_total",
			Help:      "Cells zero-filled by in-place reshapes",
		}),
		allocated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: Subsystem,
			Name:      "allocated_elements",
			Help:      "Buffer size in cells of each reallocation",
			Buckets:   allocatedBuckets,
		}),
	}

	var err error
	if c.reshapes, err = register(reg, c.reshapes); err != nil {
		return nil, err
	}
	if c.reallocated, err = register(reg, c.reallocated); err != nil {
		return nil, err
	}
	if c.filled, err = register(reg, c.filled); err != nil {
		return nil, err
	}
	if c.allocated, err = register(reg, c.allocated); err != nil {
		return nil, err
	}

	return c, nil
}

// register adds col to reg, returning the already registered collector of
// the same description when there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, col C) (C, error) {
	err := reg.Register(col)
	if err == nil {
		return col, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return col, fmt.Errorf("metrics.NewCollector: %w", err)
}

// OnReshape records one reshape event.
func (c *Collector) OnReshape(ev engine.ReshapeEvent) {
	if ev.Reallocated {
		c.reshapes.WithLabelValues(ModeRealloc).Inc()
		c.reallocated.Add(float64(ev.Moved))
		c.allocated.Observe(float64(ev.RowReach * ev.ColReach))

		return
	}
	c.reshapes.WithLabelValues(ModeInPlace).Inc()
	c.filled.Add(float64(ev.Filled))
}
