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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/scheme"

	mlv1alpha1 "github.com/jedimindtricks/model-operator/api/v1alpha1"
)

var _ = Describe("testing: builders.go", func() {
	newScheme := func() *runtime.Scheme {
		s := runtime.NewScheme()
		Expect(scheme.AddToScheme(s)).To(Succeed())
		Expect(mlv1alpha1.AddToScheme(s)).To(Succeed())
		return s
	}

	newParent := func() *mlv1alpha1.ModelDeployment {
		return &mlv1alpha1.ModelDeployment{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "demo",
				Namespace: "ns",
				UID:       "parent-uid",
			},
			Spec: mlv1alpha1.ModelDeploymentSpec{
				Live: mlv1alpha1.ModelVariant{Image: "m:1", Replicas: 2},
			},
		}
	}

	Context("testing: buildLiveService()", func() {
		It("names, labels and owns the live service", func() {
			md := newParent()
			svc, err := buildLiveService(md, newScheme())
			Expect(err).NotTo(HaveOccurred())
			Expect(svc.Name).To(Equal("demo-live-svc"))
			Expect(svc.Namespace).To(Equal("ns"))
			Expect(svc.Labels).To(Equal(map[string]string{"app": "demo", "role": "live"}))
			Expect(svc.Spec.Selector).To(Equal(svc.Labels))
			Expect(svc.Spec.Ports).To(HaveLen(1))
			Expect(svc.Spec.Ports[0].Port).To(Equal(int32(servicePort)))
			Expect(svc.OwnerReferences).To(HaveLen(1))
			Expect(svc.OwnerReferences[0].Controller).NotTo(BeNil())
			Expect(*svc.OwnerReferences[0].Controller).To(BeTrue())
		})
	})

	Context("testing: buildLiveWorkload()", func() {
		It("uses a RollingUpdate strategy and matches the service selector", func() {
			md := newParent()
			svc, err := buildLiveService(md, newScheme())
			Expect(err).NotTo(HaveOccurred())
			dep, err := buildLiveWorkload(md, newScheme())
			Expect(err).NotTo(HaveOccurred())

			Expect(dep.Name).To(Equal("demo-live"))
			Expect(*dep.Spec.Replicas).To(Equal(int32(2)))
			Expect(dep.Spec.Strategy.Type.String()).To(Equal("RollingUpdate"))
			Expect(dep.Spec.Selector.MatchLabels).To(Equal(svc.Spec.Selector))
			Expect(dep.Spec.Template.Spec.Containers).To(HaveLen(1))
			Expect(dep.Spec.Template.Spec.Containers[0].Image).To(Equal("m:1"))
			Expect(dep.Spec.Template.Spec.Containers[0].Ports[0].ContainerPort).To(Equal(int32(servicePort)))
		})
	})

	Context("testing: buildShadowService()/buildShadowWorkload()", func() {
		It("uses role=shadow labels and the shadow variant's image and replicas", func() {
			md := newParent()
			md.Spec.Shadow = &mlv1alpha1.ModelVariant{Image: "m:2", Replicas: 1}

			svc, err := buildShadowService(md, newScheme())
			Expect(err).NotTo(HaveOccurred())
			Expect(svc.Name).To(Equal("demo-shadow-svc"))
			Expect(svc.Labels["role"]).To(Equal("shadow"))

			dep, err := buildShadowWorkload(md, newScheme())
			Expect(err).NotTo(HaveOccurred())
			Expect(dep.Name).To(Equal("demo-shadow"))
			Expect(*dep.Spec.Replicas).To(Equal(int32(1)))
			Expect(dep.Spec.Template.Spec.Containers[0].Image).To(Equal("m:2"))
		})
	})

	Context("testing: buildMirrorRoute()/buildIngressRoute()", func() {
		It("points the mirror route at the live and shadow services with a 100% mirror", func() {
			md := newParent()
			mirror, err := buildMirrorRoute(md, newScheme())
			Expect(err).NotTo(HaveOccurred())
			Expect(mirror.Name).To(Equal("demo"))
			Expect(mirror.Spec.Mirroring.Service.Name).To(Equal("demo-live-svc"))
			Expect(mirror.Spec.Mirroring.Mirrors).To(HaveLen(1))
			Expect(mirror.Spec.Mirroring.Mirrors[0].Name).To(Equal("demo-shadow-svc"))
			Expect(mirror.Spec.Mirroring.Mirrors[0].Percent).To(Equal(int32(100)))
		})

		It("matches Host(`<name>.local`) on entry point web", func() {
			md := newParent()
			route, err := buildIngressRoute(md, newScheme())
			Expect(err).NotTo(HaveOccurred())
			Expect(route.Name).To(Equal("demo"))
			Expect(route.Spec.EntryPoints).To(Equal([]string{"web"}))
			Expect(route.Spec.Routes).To(HaveLen(1))
			Expect(route.Spec.Routes[0].Match).To(Equal("Host(`demo.local`)"))
			Expect(route.Spec.Routes[0].Services[0].Name).To(Equal("demo"))
		})
	})

	Context("round-trip law: fingerprint(build(spec)) is stable", func() {
		It("produces an identical fingerprint for two independently-built desired objects", func() {
			md := newParent()
			dep1, err := buildLiveWorkload(md, newScheme())
			Expect(err).NotTo(HaveOccurred())
			dep2, err := buildLiveWorkload(md, newScheme())
			Expect(err).NotTo(HaveOccurred())

			fp1, err := fingerprint(dep1)
			Expect(err).NotTo(HaveOccurred())
			fp2, err := fingerprint(dep2)
			Expect(err).NotTo(HaveOccurred())
			Expect(fp1).To(Equal(fp2))
		})
	})
})
