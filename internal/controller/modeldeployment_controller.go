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

package controller

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	mlv1alpha1 "github.com/jedimindtricks/model-operator/api/v1alpha1"
	traefikv1alpha1 "github.com/jedimindtricks/model-operator/api/traefik/v1alpha1"
	"github.com/jedimindtricks/model-operator/internal/metrics"
)

// requeueAfter is the steady-state poll interval: a successful pass
// requeues after this regardless of whether anything changed, so that
// cluster drift not caught by watch events is still repaired (spec §4.6
// step 11).
const requeueAfter = 60 * time.Second

// ModelDeploymentReconciler reconciles a ModelDeployment object: it computes
// the desired fan-out of child resources from a single parent spec,
// converges each child idempotently via a content-addressed fingerprint,
// manages the finalizer lifecycle, aggregates child health into parent
// status, and emits observability events keyed to each step.
type ModelDeploymentReconciler struct {
	client.Client
	Scheme *runtime.Scheme

	// Recorder publishes events on the parent. Shared and safe for
	// concurrent use across all in-flight reconciles (spec §5).
	Recorder record.EventRecorder

	events *eventRecorder
}

// Needed to read and manage ModelDeployment resources and their status subresource.
// +kubebuilder:rbac:groups=ml.jedimindtricks.example,resources=modeldeployments,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=ml.jedimindtricks.example,resources=modeldeployments/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=ml.jedimindtricks.example,resources=modeldeployments/finalizers,verbs=update

// Needed to create and manage the live/shadow Deployment child resources.
// +kubebuilder:rbac:groups=apps,resources=deployments,verbs=get;list;watch;create;update;patch;delete

// Needed to create and manage the live/shadow Service child resources.
// +kubebuilder:rbac:groups=core,resources=services,verbs=get;list;watch;create;update;patch;delete

// Needed to create and manage the mirror route and ingress route.
// +kubebuilder:rbac:groups=traefik.containo.us,resources=traefikservices;ingressroutes,verbs=get;list;watch;create;update;patch;delete

// Needed to publish events on the parent.
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch

// Needed for leader election to work correctly in multi-replica deployments.
// +kubebuilder:rbac:groups=coordination.k8s.io,resources=leases,verbs=get;list;watch;create;update;patch;delete

// Reconcile implements the orchestrator sequence from spec §4.6: fetch
// parent, handle deletion, ensure the finalizer, converge each child in
// service-before-workload-before-route order, aggregate status, emit a
// terminal Reconciled event if anything changed, and requeue for steady
// state.
func (r *ModelDeploymentReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := logf.FromContext(ctx)
	if r.events == nil {
		r.events = newEventRecorder(r.Recorder)
	}

	md := &mlv1alpha1.ModelDeployment{}
	if err := r.Get(ctx, req.NamespacedName, md); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}
	metrics.ReconcilesTotal.Inc()

	if isDeleting(md) {
		return r.reconcileDeletion(ctx, md)
	}

	changed := false

	if outcome, err := withEvent(r.events, md, "finalizer added", "FinalizerCreated", "FinalizerFailed",
		func() (Outcome, error) { return ensureFinalizerPresent(ctx, r.Client, md) }); err != nil {
		return ctrl.Result{}, fmt.Errorf("ensuring finalizer: %w", err)
	} else if outcome != NoOp {
		changed = true
	}

	liveSvc, err := buildLiveService(md, r.Scheme)
	if err != nil {
		return ctrl.Result{}, err
	}
	if outcome, err := withEvent(r.events, md, "live service reconciled", "LiveSvcCreated", "LiveSvcFailed",
		func() (Outcome, error) { return reconcileResource(ctx, r.Client, liveSvc) }); err != nil {
		return ctrl.Result{}, fmt.Errorf("reconciling live service: %w", err)
	} else if outcome != NoOp {
		changed = true
		metrics.ApplyOutcomesTotal.WithLabelValues("service", outcomeLabel(outcome)).Inc()
	}

	if md.Spec.Shadow != nil {
		shadowSvc, err := buildShadowService(md, r.Scheme)
		if err != nil {
			return ctrl.Result{}, err
		}
		if outcome, err := withEvent(r.events, md, "shadow service reconciled", "ShadowSvcCreated", "ShadowSvcFailed",
			func() (Outcome, error) { return reconcileResource(ctx, r.Client, shadowSvc) }); err != nil {
			return ctrl.Result{}, fmt.Errorf("reconciling shadow service: %w", err)
		} else if outcome != NoOp {
			changed = true
			metrics.ApplyOutcomesTotal.WithLabelValues("service", outcomeLabel(outcome)).Inc()
		}
	}

	liveDep, err := buildLiveWorkload(md, r.Scheme)
	if err != nil {
		return ctrl.Result{}, err
	}
	if outcome, err := withEvent(r.events, md, "live deployment reconciled", "LiveDeploymentCreated", "LiveDeploymentFailed",
		func() (Outcome, error) { return reconcileResource(ctx, r.Client, liveDep) }); err != nil {
		return ctrl.Result{}, fmt.Errorf("reconciling live workload: %w", err)
	} else if outcome != NoOp {
		changed = true
		metrics.ApplyOutcomesTotal.WithLabelValues("workload", outcomeLabel(outcome)).Inc()
	}

	if md.Spec.Shadow != nil {
		shadowDep, err := buildShadowWorkload(md, r.Scheme)
		if err != nil {
			return ctrl.Result{}, err
		}
		if outcome, err := withEvent(r.events, md, "shadow deployment reconciled", "ShadowDeploymentCreated", "ShadowDeploymentFailed",
			func() (Outcome, error) { return reconcileResource(ctx, r.Client, shadowDep) }); err != nil {
			return ctrl.Result{}, fmt.Errorf("reconciling shadow workload: %w", err)
		} else if outcome != NoOp {
			changed = true
			metrics.ApplyOutcomesTotal.WithLabelValues("workload", outcomeLabel(outcome)).Inc()
		}
	}

	if md.Spec.TrafficMirror {
		mirror, err := buildMirrorRoute(md, r.Scheme)
		if err != nil {
			return ctrl.Result{}, err
		}
		if outcome, err := withEvent(r.events, md, "mirror route reconciled", "TraefikServiceCreated", "TraefikServiceFailed",
			func() (Outcome, error) { return reconcileResource(ctx, r.Client, mirror) }); err != nil {
			return ctrl.Result{}, fmt.Errorf("reconciling mirror route: %w", err)
		} else if outcome != NoOp {
			changed = true
			metrics.ApplyOutcomesTotal.WithLabelValues("route", outcomeLabel(outcome)).Inc()
		}

		ingress, err := buildIngressRoute(md, r.Scheme)
		if err != nil {
			return ctrl.Result{}, err
		}
		if outcome, err := withEvent(r.events, md, "ingress route reconciled", "IngressRouteCreated", "IngressRouteFailed",
			func() (Outcome, error) { return reconcileResource(ctx, r.Client, ingress) }); err != nil {
			return ctrl.Result{}, fmt.Errorf("reconciling ingress route: %w", err)
		} else if outcome != NoOp {
			changed = true
			metrics.ApplyOutcomesTotal.WithLabelValues("route", outcomeLabel(outcome)).Inc()
		}
	}

	if err := aggregateStatus(ctx, r.Client, md); err != nil {
		return ctrl.Result{}, fmt.Errorf("aggregating status: %w", err)
	}

	if changed {
		emitReconciled(r.events, md)
	}

	log.Info("reconciliation complete", "name", md.Name, "phase", md.Status.Phase, "changed", changed)
	return ctrl.Result{RequeueAfter: requeueAfter}, nil
}

// reconcileDeletion implements the deletion branch of spec §4.6 step 2:
// while the sentinel is present, run (logging-only) cleanup and remove it;
// once removed, or if it was already absent, stop — the API server
// cascades child deletion via owner references once the parent itself is
// removed.
func (r *ModelDeploymentReconciler) reconcileDeletion(ctx context.Context, md *mlv1alpha1.ModelDeployment) (ctrl.Result, error) {
	log := logf.FromContext(ctx)

	hasFinalizer := false
	for _, f := range md.Finalizers {
		if f == modelDeploymentFinalizer {
			hasFinalizer = true
			break
		}
	}
	if !hasFinalizer {
		return ctrl.Result{}, nil
	}

	r.events.event(md, corev1.EventTypeNormal, "Finalizing", "running finalizer cleanup before deletion")
	log.Info("running finalizer cleanup", "name", md.Name)

	if _, err := withEvent(r.events, md, "finalizer removed", "Finalized", "FinalizingFailed",
		func() (Outcome, error) { return removeFinalizer(ctx, r.Client, md) }); err != nil {
		return ctrl.Result{}, fmt.Errorf("removing finalizer: %w", err)
	}
	return ctrl.Result{}, nil
}

func outcomeLabel(o Outcome) string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "noop"
	}
}

// SetupWithManager sets up the controller with the Manager. It watches
// ModelDeployment resources and the owned Service/Deployment/route children
// so that external changes to any of them trigger reconciliation.
func (r *ModelDeploymentReconciler) SetupWithManager(mgr ctrl.Manager) error {
	r.events = newEventRecorder(r.Recorder)
	return ctrl.NewControllerManagedBy(mgr).
		For(&mlv1alpha1.ModelDeployment{}).
		Owns(&appsv1.Deployment{}).
		Owns(&corev1.Service{}).
		Owns(&traefikv1alpha1.TraefikService{}).
		Owns(&traefikv1alpha1.IngressRoute{}).
		Named("modeldeployment").
		Complete(r)
}
