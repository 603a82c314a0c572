// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes the pool's counters, gauges and histograms.
// Meters are no-ops until InitializePrometheusMetrics is called, so packages
// declare them at init time with the LazyLoad helpers and resolve them on use.
package metrics

import (
	"net/http"
	"sync"
)

var metrics = defaultNoopMetrics()

// backend builds meters by name. The same name always yields the same meter.
type backend interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	GetOrCreateHandler() http.Handler
}

// HTTPHandler serves the scrape endpoint, nil while metrics are disabled.
func HTTPHandler() http.Handler {
	return metrics.GetOrCreateHandler()
}

var (
	// BucketHTTPReqs covers api request latency in milliseconds.
	BucketHTTPReqs = []int64{
		0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
		150, 200, 300, 400, 500, 750, 1000,
		1500, 2000, 3000, 4000, 5000, 10000,
	}
	// BucketLockDays covers the four lock periods.
	BucketLockDays = []int64{30, 90, 180, 365}
)

type HistogramMeter interface {
	Observe(int64)
}

type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// CountMeter only goes up.
type CountMeter interface {
	Add(int64)
}

type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeMeter tracks a value that moves both ways, like the staked total.
type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

// lazyLoad defers building a meter until first use, after the backend is chosen.
func lazyLoad[T any](f func() T) func() T {
	var (
		result T
		once   sync.Once
	)
	return func() T {
		once.Do(func() { result = f() })
		return result
	}
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return lazyLoad(func() HistogramMeter {
		return metrics.GetOrCreateHistogramMeter(name, buckets)
	})
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return lazyLoad(func() HistogramVecMeter {
		return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets)
	})
}

func LazyLoadCounter(name string) func() CountMeter {
	return lazyLoad(func() CountMeter {
		return metrics.GetOrCreateCountMeter(name)
	})
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return lazyLoad(func() CountVecMeter {
		return metrics.GetOrCreateCountVecMeter(name, labels)
	})
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return lazyLoad(func() GaugeMeter {
		return metrics.GetOrCreateGaugeMeter(name)
	})
}
