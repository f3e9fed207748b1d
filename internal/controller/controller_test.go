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

package controller_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	mlv1alpha1 "github.com/jedimindtricks/model-operator/api/v1alpha1"
	traefikv1alpha1 "github.com/jedimindtricks/model-operator/api/traefik/v1alpha1"
	"github.com/jedimindtricks/model-operator/internal/controller"
)

var _ = Describe("testing: ModelDeploymentReconciler.Reconcile()", func() {
	var (
		c          client.Client
		reconciler *controller.ModelDeploymentReconciler
		ctx        context.Context
		req        ctrl.Request
	)

	newModelDeployment := func() *mlv1alpha1.ModelDeployment {
		return &mlv1alpha1.ModelDeployment{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "demo",
				Namespace: "ns",
			},
			Spec: mlv1alpha1.ModelDeploymentSpec{
				Live: mlv1alpha1.ModelVariant{Image: "registry/model:1", Replicas: 2},
			},
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		md := newModelDeployment()
		c = fake.NewClientBuilder().
			WithScheme(testScheme()).
			WithObjects(md).
			WithStatusSubresource(md).
			Build()
		reconciler = &controller.ModelDeploymentReconciler{
			Client:   c,
			Scheme:   testScheme(),
			Recorder: record.NewFakeRecorder(64),
		}
		req = ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "ns", Name: "demo"}}
	})

	It("creates the live service and deployment on a fresh object and adds the finalizer", func() {
		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		svc := &corev1.Service{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo-live-svc"}, svc)).To(Succeed())

		dep := &appsv1.Deployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo-live"}, dep)).To(Succeed())
		Expect(*dep.Spec.Replicas).To(Equal(int32(2)))

		md := &mlv1alpha1.ModelDeployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo"}, md)).To(Succeed())
		Expect(md.Finalizers).To(ContainElement("ml.jedimindtricks.example/finalizer"))
	})

	It("reaches the Available phase once the live deployment reports its replicas ready", func() {
		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		dep := &appsv1.Deployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo-live"}, dep)).To(Succeed())
		dep.Status.AvailableReplicas = 2
		dep.Status.UpdatedReplicas = 2
		Expect(c.Status().Update(ctx, dep)).To(Succeed())

		_, err = reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		md := &mlv1alpha1.ModelDeployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo"}, md)).To(Succeed())
		Expect(md.Status.Phase).To(Equal(mlv1alpha1.PhaseAvailable))
	})

	It("adds a shadow service and deployment once the spec gains a shadow variant", func() {
		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		md := &mlv1alpha1.ModelDeployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo"}, md)).To(Succeed())
		md.Spec.Shadow = &mlv1alpha1.ModelVariant{Image: "registry/model:2", Replicas: 1}
		Expect(c.Update(ctx, md)).To(Succeed())

		_, err = reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		shadowSvc := &corev1.Service{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo-shadow-svc"}, shadowSvc)).To(Succeed())
		shadowDep := &appsv1.Deployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo-shadow"}, shadowDep)).To(Succeed())
	})

	It("creates the mirror and ingress routes once traffic mirroring is enabled", func() {
		md := &mlv1alpha1.ModelDeployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo"}, md)).To(Succeed())
		md.Spec.Shadow = &mlv1alpha1.ModelVariant{Image: "registry/model:2", Replicas: 1}
		md.Spec.TrafficMirror = true
		Expect(c.Update(ctx, md)).To(Succeed())

		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		mirror := &traefikv1alpha1.TraefikService{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo"}, mirror)).To(Succeed())
		Expect(mirror.Spec.Mirroring.Mirrors[0].Percent).To(Equal(int32(100)))

		route := &traefikv1alpha1.IngressRoute{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo"}, route)).To(Succeed())
	})

	It("repairs drift when a child is mutated out of band", func() {
		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		dep := &appsv1.Deployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo-live"}, dep)).To(Succeed())
		drifted := int32(99)
		dep.Spec.Replicas = &drifted
		Expect(c.Update(ctx, dep)).To(Succeed())

		_, err = reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		repaired := &appsv1.Deployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo-live"}, repaired)).To(Succeed())
		Expect(*repaired.Spec.Replicas).To(Equal(int32(2)))
	})

	It("removes the finalizer once a deletion timestamp is set, leaving cascade to owner references", func() {
		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		md := &mlv1alpha1.ModelDeployment{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo"}, md)).To(Succeed())
		Expect(c.Delete(ctx, md)).To(Succeed())

		_, err = reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		gone := &mlv1alpha1.ModelDeployment{}
		err = c.Get(ctx, types.NamespacedName{Namespace: "ns", Name: "demo"}, gone)
		Expect(err).To(HaveOccurred())
	})
})
