/*
Copyright 2026.

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

// Package metrics registers the model-operator's custom Prometheus
// collectors against controller-runtime's shared metrics registry, the same
// way SAP-component-operator-runtime and cloupeer-cloupeer expose operator
// metrics alongside the manager's built-in controller-runtime ones.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	// ReconcilesTotal counts every Reconcile invocation that found its
	// ModelDeployment still present (excludes not-found exits).
	ReconcilesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "model_operator_reconciles_total",
		Help: "Total number of ModelDeployment reconcile passes that ran past the initial get.",
	})

	// ApplyOutcomesTotal counts reconcileResource outcomes that wrote to the
	// cluster, labeled by the child kind ("service", "workload", "route") and
	// the outcome ("created", "updated"). NoOp outcomes are not counted.
	ApplyOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "model_operator_apply_outcomes_total",
		Help: "Total reconcileResource outcomes by child kind and outcome.",
	}, []string{"kind", "outcome"})
)

func init() {
	metrics.Registry.MustRegister(ReconcilesTotal, ApplyOutcomesTotal)
}
