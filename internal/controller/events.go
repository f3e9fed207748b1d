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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// dedupWindow bounds how long an identical (object, reason, message) event
// is suppressed for. Kubernetes' own event-series machinery collapses
// byte-identical repeats server-side; this client-side window additionally
// protects against the steady-state poll (requeueAfter) re-emitting the same
// Warning every pass while a failure persists.
const dedupWindow = 5 * time.Minute

// eventRecorder wraps a client-go EventRecorder with a stable reporter
// identity and short-lived client-side deduplication, so a reconcile loop
// that polls every 60s does not spam identical events.
type eventRecorder struct {
	recorder record.EventRecorder

	mu   sync.Mutex
	seen map[string]seenEvent
}

type seenEvent struct {
	digest string
	at     time.Time
}

func newEventRecorder(recorder record.EventRecorder) *eventRecorder {
	return &eventRecorder{
		recorder: recorder,
		seen:     make(map[string]seenEvent),
	}
}

func (r *eventRecorder) event(obj client.Object, eventType, reason, message string) {
	uid := string(obj.GetUID())
	digest := eventDigest(eventType, reason, message)

	r.mu.Lock()
	now := time.Now()
	for k, v := range r.seen {
		if now.Sub(v.at) > dedupWindow {
			delete(r.seen, k)
		}
	}
	prior, ok := r.seen[uid]
	duplicate := ok && prior.digest == digest
	if !duplicate {
		r.seen[uid] = seenEvent{digest: digest, at: now}
	}
	r.mu.Unlock()

	if duplicate {
		return
	}
	r.recorder.Event(obj, eventType, reason, message)
}

func eventDigest(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// withEvent runs op and emits a best-effort event on obj describing the
// outcome (spec §4.4): Created/Updated emits a Normal successReason event
// carrying successMsg, NoOp emits nothing, and an error emits a Warning
// failReason event carrying the error's message before the error is
// propagated to the caller. Event publication never fails the surrounding
// operation.
func withEvent(recorder *eventRecorder, obj client.Object, successMsg, successReason, failReason string, op func() (Outcome, error)) (Outcome, error) {
	outcome, err := op()
	if err != nil {
		recorder.event(obj, corev1.EventTypeWarning, failReason, err.Error())
		return outcome, err
	}
	if outcome != NoOp {
		recorder.event(obj, corev1.EventTypeNormal, successReason, successMsg)
	}
	return outcome, nil
}

// emitReconciled records the terminal Reconciled event once a pass has
// completed with at least one non-NoOp step (spec §4.6 step 10).
func emitReconciled(recorder *eventRecorder, obj client.Object) {
	recorder.event(obj, corev1.EventTypeNormal, "Reconciled", fmt.Sprintf("reconciled %s", client.ObjectKeyFromObject(obj)))
}
