/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package prometheus implements metrics.RegistryMetrics on top of the
// Prometheus client library.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/rtti/metrics"
)

// registryMetrics implements metrics.RegistryMetrics using Prometheus.
type registryMetrics struct {
	registered *prometheus.CounterVec
	duplicates *prometheus.CounterVec
	lookups    *prometheus.CounterVec
	types      prometheus.Gauge
}

// NewRegistryMetrics creates a Prometheus implementation of
// metrics.RegistryMetrics and registers its collectors with reg.
func NewRegistryMetrics(reg prometheus.Registerer) metrics.RegistryMetrics {
	m := &registryMetrics{
		registered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtti_types_registered_total",
			Help: "Total number of type descriptors registered",
		}, []string{"type"}),

		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtti_duplicate_registrations_total",
			Help: "Total number of registrations ignored because the name was taken",
		}, []string{"type"}),

		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtti_lookups_total",
			Help: "Total number of descriptor lookups",
		}, []string{"result"}),

		types: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rtti_types",
			Help: "Number of registered type descriptors",
		}),
	}

	reg.MustRegister(
		m.registered,
		m.duplicates,
		m.lookups,
		m.types,
	)

	return m
}

func (m *registryMetrics) TypeRegistered(name string) {
	m.registered.WithLabelValues(name).Inc()
}

func (m *registryMetrics) DuplicateSkipped(name string) {
	m.duplicates.WithLabelValues(name).Inc()
}

func (m *registryMetrics) Lookup(hit bool) {
	m.lookups.WithLabelValues(hitToStr(hit)).Inc()
}

func (m *registryMetrics) Types(count int) {
	m.types.Set(float64(count))
}

func hitToStr(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

var _ metrics.RegistryMetrics = (*registryMetrics)(nil)
