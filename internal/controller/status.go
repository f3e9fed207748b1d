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

	appsv1 "k8s.io/api/apps/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	mlv1alpha1 "github.com/jedimindtricks/model-operator/api/v1alpha1"
)

// observedWorkload is what the status aggregator needs from a workload; a
// missing workload (not yet created, or not desired) counts as all-zero
// (spec §4.5 "Absent child observations count as available=0").
type observedWorkload struct {
	availableReplicas int32
	updatedReplicas   int32
}

// computePhase implements the three-step phase rule from spec §4.5.
func computePhase(liveDesired, liveAvailable int32, shadowPresent bool, shadowDesired, shadowAvailable int32) string {
	liveSatisfied := liveAvailable == liveDesired
	shadowSatisfied := !shadowPresent || shadowAvailable == shadowDesired
	if liveSatisfied && shadowSatisfied {
		return mlv1alpha1.PhaseAvailable
	}
	if liveAvailable == 0 && liveDesired > 0 {
		return mlv1alpha1.PhaseDegraded
	}
	return mlv1alpha1.PhaseProgressing
}

// buildConditions always emits all three status conditions (spec §4.5),
// overwriting any prior values, so that Ready/Progressing/Degraded remain
// mutually consistent across every pass (spec §8 invariant 6).
func buildConditions(generation int64, phase string, liveDesired, liveAvailable, shadowDesired, shadowAvailable int32, shadowPresent bool) []metav1.Condition {
	ready := phase == mlv1alpha1.PhaseAvailable
	degraded := liveAvailable == 0 && liveDesired > 0

	readyStatus := metav1.ConditionFalse
	readyReason := "ReplicasNotReady"
	if ready {
		readyStatus = metav1.ConditionTrue
		readyReason = "AllReplicasAvailable"
	}
	readyMsg := fmt.Sprintf("live %d/%d shadow %d/%d available", liveAvailable, liveDesired, shadowAvailable, shadowDesired)
	if !shadowPresent {
		readyMsg = fmt.Sprintf("live %d/%d shadow 0/0 available", liveAvailable, liveDesired)
	}

	progressingStatus := metav1.ConditionFalse
	if !ready {
		progressingStatus = metav1.ConditionTrue
	}
	progressingMsg := "Deployment is rolling out or scaling."
	if ready {
		progressingMsg = "Reconciliation complete."
	}

	degradedStatus := metav1.ConditionFalse
	degradedReason := "NotDegraded"
	degradedMsg := "Live replicas are available or none are desired."
	if degraded {
		degradedStatus = metav1.ConditionTrue
		degradedReason = "NoAvailableReplicas"
		degradedMsg = "No live replicas are currently available."
	}

	conditions := []metav1.Condition{
		{
			Type:               mlv1alpha1.TypeReady,
			Status:             readyStatus,
			Reason:             readyReason,
			Message:            readyMsg,
			ObservedGeneration: generation,
		},
		{
			Type:               mlv1alpha1.TypeProgressing,
			Status:             progressingStatus,
			Reason:             "Reconciling",
			Message:            progressingMsg,
			ObservedGeneration: generation,
		},
		{
			Type:               mlv1alpha1.TypeDegraded,
			Status:             degradedStatus,
			Reason:             degradedReason,
			Message:            degradedMsg,
			ObservedGeneration: generation,
		},
	}
	return conditions
}

// getWorkloadStatus reads back a workload's observed replica counts. A
// not-found workload (not yet created by this pass, or not desired at all)
// returns the zero value rather than an error.
func getWorkloadStatus(ctx context.Context, c client.Client, namespace, name string) (observedWorkload, error) {
	dep := &appsv1.Deployment{}
	err := c.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, dep)
	if apierrors.IsNotFound(err) {
		return observedWorkload{}, nil
	}
	if err != nil {
		return observedWorkload{}, fmt.Errorf("getting workload %s/%s for status: %w", namespace, name, err)
	}
	return observedWorkload{
		availableReplicas: dep.Status.AvailableReplicas,
		updatedReplicas:   dep.Status.UpdatedReplicas,
	}, nil
}

// aggregateStatus computes and patches the full status payload (phase,
// three conditions, live/shadow child status blocks) onto md via the status
// subresource (spec §4.5).
func aggregateStatus(ctx context.Context, c client.Client, md *mlv1alpha1.ModelDeployment) error {
	live, err := getWorkloadStatus(ctx, c, md.Namespace, liveWorkloadName(md.Name))
	if err != nil {
		return err
	}

	shadowPresent := md.Spec.Shadow != nil
	var shadow observedWorkload
	var shadowDesired int32
	if shadowPresent {
		shadow, err = getWorkloadStatus(ctx, c, md.Namespace, shadowWorkloadName(md.Name))
		if err != nil {
			return err
		}
		shadowDesired = md.Spec.Shadow.Replicas
	}

	liveDesired := md.Spec.Live.Replicas
	phase := computePhase(liveDesired, live.availableReplicas, shadowPresent, shadowDesired, shadow.availableReplicas)
	conditions := buildConditions(md.Generation, phase, liveDesired, live.availableReplicas, shadowDesired, shadow.availableReplicas, shadowPresent)

	patch := client.MergeFrom(md.DeepCopy())
	md.Status.Phase = phase
	md.Status.LiveStatus = &mlv1alpha1.ChildStatus{
		AvailableReplicas: live.availableReplicas,
		UpdatedReplicas:   live.updatedReplicas,
	}
	if shadowPresent {
		md.Status.ShadowStatus = &mlv1alpha1.ChildStatus{
			AvailableReplicas: shadow.availableReplicas,
			UpdatedReplicas:   shadow.updatedReplicas,
		}
	} else {
		md.Status.ShadowStatus = nil
	}
	for _, c2 := range conditions {
		meta.SetStatusCondition(&md.Status.Conditions, c2)
	}

	if err := c.Status().Patch(ctx, md, patch); err != nil {
		return fmt.Errorf("patching status for %s/%s: %w", md.Namespace, md.Name, err)
	}
	return nil
}
