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
	"encoding/json"
	"fmt"
	"reflect"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// fingerprintAnnotation is the annotation key carrying the hex SHA-256 of the
// canonical serialization of the last-applied desired spec for an object.
// This is recorded for observability only; reconcileResource's own
// create/no-op/update decision compares desired against the live object
// directly, so a live object mutated out of band is never mistaken for
// convergence just because the annotation still matches desired.
const fingerprintAnnotation = "ml.jedimindtricks.example/desired-fingerprint"

// fieldManager identifies this controller to the API server's server-side
// apply conflict resolution.
const fieldManager = "model-operator"

// Outcome reports what reconcileResource actually did against the cluster.
type Outcome int

const (
	// NoOp means the live object's content already matched desired; no
	// write was issued.
	NoOp Outcome = iota
	// Created means no prior object existed and one was created.
	Created
	// Updated means a prior object existed and differed, so it was applied.
	Updated
)

// reconcileResource converges one child object toward desired: it fetches
// the current object, compares a canonical fingerprint of desired against
// the same fingerprint recomputed from the live object, and only issues a
// server-side apply patch when they differ. Canonicalization strips fields
// the API server or a human operator can change without our involvement
// (resourceVersion, UID, generation, managedFields, creationTimestamp,
// status, our own annotation), so the comparison reflects actual drift in
// the fields this controller owns rather than trusting a potentially stale
// annotation. T must be a concrete client.Object pointer type (e.g.
// *appsv1.Deployment) so a same-typed empty instance can be fetched into.
func reconcileResource[T client.Object](ctx context.Context, c client.Client, desired T) (Outcome, error) {
	existing := newEmpty(desired)
	key := client.ObjectKeyFromObject(desired)
	err := c.Get(ctx, key, existing)
	notFound := apierrors.IsNotFound(err)
	if err != nil && !notFound {
		return NoOp, fmt.Errorf("getting %s %s: %w", key.Namespace, key.Name, err)
	}

	desiredFP, err := fingerprint(desired)
	if err != nil {
		return NoOp, fmt.Errorf("fingerprinting %s %s: %w", key.Namespace, key.Name, err)
	}

	if !notFound {
		existingFP, err := fingerprint(existing)
		if err != nil {
			return NoOp, fmt.Errorf("fingerprinting live %s %s: %w", key.Namespace, key.Name, err)
		}
		if existingFP == desiredFP {
			return NoOp, nil
		}
	}

	annotations := desired.GetAnnotations()
	if annotations == nil {
		annotations = make(map[string]string, 1)
	}
	annotations[fingerprintAnnotation] = desiredFP
	desired.SetAnnotations(annotations)

	if err := c.Patch(ctx, desired, client.Apply, client.ForceOwnership, client.FieldOwner(fieldManager)); err != nil {
		return NoOp, fmt.Errorf("applying %s %s: %w", key.Namespace, key.Name, err)
	}

	if notFound {
		return Created, nil
	}
	return Updated, nil
}

// fingerprint returns the hex SHA-256 of the canonical JSON serialization of
// obj, after canonicalize strips the fields that vary independently of this
// controller's intent. Go's encoding/json emits struct fields in a
// deterministic, declaration order, so this is stable across processes and
// invocations.
func fingerprint(obj client.Object) (string, error) {
	raw, err := json.Marshal(canonicalize(obj))
	if err != nil {
		return "", err
	}
	return sha256hex(raw), nil
}

// canonicalize deep-copies obj and zeroes every field that the API server,
// this controller's own bookkeeping, or an unrelated actor can set without
// reflecting a change to this controller's intent: TypeMeta (typed Get
// rarely round-trips it), resourceVersion, UID, generation,
// creationTimestamp, managedFields, the fingerprint annotation itself, and
// the object's Status field, if it has one.
func canonicalize(obj client.Object) client.Object {
	clone := obj.DeepCopyObject().(client.Object)
	clone.GetObjectKind().SetGroupVersionKind(schema.GroupVersionKind{})
	clone.SetResourceVersion("")
	clone.SetUID("")
	clone.SetGeneration(0)
	clone.SetCreationTimestamp(metav1.Time{})
	clone.SetManagedFields(nil)

	if annotations := clone.GetAnnotations(); annotations != nil {
		delete(annotations, fingerprintAnnotation)
		if len(annotations) == 0 {
			annotations = nil
		}
		clone.SetAnnotations(annotations)
	}

	zeroStatusField(clone)
	return clone
}

// zeroStatusField clears a top-level "Status" field via reflection, if the
// concrete type underlying obj has one. Types without a Status field (e.g.
// ConfigMap) are left untouched.
func zeroStatusField(obj client.Object) {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	f := v.FieldByName("Status")
	if f.IsValid() && f.CanSet() {
		f.Set(reflect.Zero(f.Type()))
	}
}

// newEmpty returns a zero-value instance of the same concrete pointer type
// as desired, for use as a Get target.
func newEmpty[T client.Object](desired T) T {
	t := reflect.TypeOf(desired).Elem()
	return reflect.New(t).Interface().(T)
}
