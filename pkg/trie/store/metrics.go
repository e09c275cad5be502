// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "triestore_scratch_cache"

var (
	cachedGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "cached_nodes",
		Help:      "number of trie nodes held in the scratch cache",
	})
	hitCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "hit_total",
		Help:      "total number of scratch cache hits",
	})
	missCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "miss_total",
		Help:      "total number of scratch cache misses read through the trie store",
	})
	putCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "put_total",
		Help:      "total number of dirty trie nodes put in the scratch cache",
	})
	flushedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "flushed_total",
		Help:      "total number of trie nodes written to the database",
	})
)
