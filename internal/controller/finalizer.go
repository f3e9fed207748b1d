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

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	mlv1alpha1 "github.com/jedimindtricks/model-operator/api/v1alpha1"
)

// modelDeploymentFinalizer is the sentinel finalizer this operator places on
// every ModelDeployment it manages (spec §6). Its only purpose is to give
// cleanup a hook before the API server deletes the parent; this operator
// keeps no state outside the cluster, so the hook currently just logs.
const modelDeploymentFinalizer = "ml.jedimindtricks.example/finalizer"

// isDeleting reports whether the API server has recorded a deletion
// timestamp on md.
func isDeleting(md *mlv1alpha1.ModelDeployment) bool {
	return !md.DeletionTimestamp.IsZero()
}

// ensureFinalizerPresent adds the sentinel finalizer if absent, merge-
// patching only metadata.finalizers. Idempotent: returns NoOp if the
// sentinel is already present.
func ensureFinalizerPresent(ctx context.Context, c client.Client, md *mlv1alpha1.ModelDeployment) (Outcome, error) {
	if controllerutil.ContainsFinalizer(md, modelDeploymentFinalizer) {
		return NoOp, nil
	}
	patch := client.MergeFrom(md.DeepCopy())
	controllerutil.AddFinalizer(md, modelDeploymentFinalizer)
	if err := c.Patch(ctx, md, patch); err != nil {
		return NoOp, fmt.Errorf("adding finalizer to %s/%s: %w", md.Namespace, md.Name, err)
	}
	return Created, nil
}

// removeFinalizer strips the sentinel finalizer, merge-patching only
// metadata.finalizers. Idempotent against repeated delivery: removing an
// absent finalizer is a successful no-op write.
func removeFinalizer(ctx context.Context, c client.Client, md *mlv1alpha1.ModelDeployment) (Outcome, error) {
	patch := client.MergeFrom(md.DeepCopy())
	controllerutil.RemoveFinalizer(md, modelDeploymentFinalizer)
	if err := c.Patch(ctx, md, patch); err != nil {
		return NoOp, fmt.Errorf("removing finalizer from %s/%s: %w", md.Namespace, md.Name, err)
	}
	return Updated, nil
}
