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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	mlv1alpha1 "github.com/jedimindtricks/model-operator/api/v1alpha1"
)

var _ = Describe("testing: status.go", func() {
	newScheme := func() *runtime.Scheme {
		s := runtime.NewScheme()
		Expect(scheme.AddToScheme(s)).To(Succeed())
		Expect(mlv1alpha1.AddToScheme(s)).To(Succeed())
		return s
	}

	Context("testing: computePhase()", func() {
		It("is Available when live and shadow both satisfy their desired replicas", func() {
			Expect(computePhase(2, 2, true, 1, 1)).To(Equal(mlv1alpha1.PhaseAvailable))
		})

		It("is Available with no shadow when live alone satisfies desired replicas", func() {
			Expect(computePhase(2, 2, false, 0, 0)).To(Equal(mlv1alpha1.PhaseAvailable))
		})

		It("is Available when zero live replicas are desired and zero are available", func() {
			Expect(computePhase(0, 0, false, 0, 0)).To(Equal(mlv1alpha1.PhaseAvailable))
		})

		It("is Degraded when live replicas are desired but none are available", func() {
			Expect(computePhase(3, 0, false, 0, 0)).To(Equal(mlv1alpha1.PhaseDegraded))
		})

		It("is Progressing when live is partially available and not degraded", func() {
			Expect(computePhase(3, 1, false, 0, 0)).To(Equal(mlv1alpha1.PhaseProgressing))
		})

		It("is Progressing when live is satisfied but shadow is not yet", func() {
			Expect(computePhase(2, 2, true, 2, 1)).To(Equal(mlv1alpha1.PhaseProgressing))
		})
	})

	Context("testing: buildConditions()", func() {
		It("keeps Ready, Progressing and Degraded mutually consistent when Available", func() {
			conditions := buildConditions(1, mlv1alpha1.PhaseAvailable, 2, 2, 0, 0, false)
			byType := map[string]metav1.Condition{}
			for _, c := range conditions {
				byType[c.Type] = c
			}
			Expect(byType[mlv1alpha1.TypeReady].Status).To(Equal(metav1.ConditionTrue))
			Expect(byType[mlv1alpha1.TypeProgressing].Status).To(Equal(metav1.ConditionFalse))
			Expect(byType[mlv1alpha1.TypeDegraded].Status).To(Equal(metav1.ConditionFalse))
		})

		It("sets Degraded true only when desired live replicas exist and none are available", func() {
			conditions := buildConditions(1, mlv1alpha1.PhaseDegraded, 3, 0, 0, 0, false)
			var degraded metav1.Condition
			for _, c := range conditions {
				if c.Type == mlv1alpha1.TypeDegraded {
					degraded = c
				}
			}
			Expect(degraded.Status).To(Equal(metav1.ConditionTrue))
			Expect(degraded.Reason).To(Equal("NoAvailableReplicas"))
		})

		It("stamps every condition with the given observed generation", func() {
			conditions := buildConditions(7, mlv1alpha1.PhaseProgressing, 2, 1, 0, 0, false)
			for _, c := range conditions {
				Expect(c.ObservedGeneration).To(Equal(int64(7)))
			}
		})
	})

	Context("testing: aggregateStatus()", func() {
		It("treats an absent shadow workload as available=0 rather than failing", func() {
			md := &mlv1alpha1.ModelDeployment{
				ObjectMeta: metav1.ObjectMeta{Name: "demo", Namespace: "ns", Generation: 1},
				Spec: mlv1alpha1.ModelDeploymentSpec{
					Live:   mlv1alpha1.ModelVariant{Image: "m:1", Replicas: 1},
					Shadow: &mlv1alpha1.ModelVariant{Image: "m:2", Replicas: 1},
				},
			}
			liveDep := &appsv1.Deployment{
				ObjectMeta: metav1.ObjectMeta{Name: liveWorkloadName(md.Name), Namespace: md.Namespace},
				Status:     appsv1.DeploymentStatus{AvailableReplicas: 1, UpdatedReplicas: 1},
			}
			c := fake.NewClientBuilder().WithScheme(newScheme()).
				WithObjects(md, liveDep).
				WithStatusSubresource(md).
				Build()

			Expect(aggregateStatus(context.Background(), c, md)).To(Succeed())
			Expect(md.Status.Phase).To(Equal(mlv1alpha1.PhaseProgressing))
			Expect(md.Status.ShadowStatus.AvailableReplicas).To(Equal(int32(0)))
		})
	})
})
