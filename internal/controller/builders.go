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
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/intstr"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	mlv1alpha1 "github.com/jedimindtricks/model-operator/api/v1alpha1"
	traefikv1alpha1 "github.com/jedimindtricks/model-operator/api/traefik/v1alpha1"
)

// This file contains the child-object builders: pure, side-effect-free
// mappings from a ModelDeployment spec to fully-formed desired child
// objects. Builders never touch the cluster; reconcileResource does.

// liveServiceName, shadowServiceName, liveWorkloadName and
// shadowWorkloadName derive every child's name deterministically from the
// parent's name, per spec §6.
func liveServiceName(parent string) string   { return parent + "-live-svc" }
func shadowServiceName(parent string) string { return parent + "-shadow-svc" }
func liveWorkloadName(parent string) string  { return parent + "-live" }
func shadowWorkloadName(parent string) string { return parent + "-shadow" }

func buildService(md *mlv1alpha1.ModelDeployment, scheme *runtime.Scheme, name string, role string) (*corev1.Service, error) {
	svc := &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: md.Namespace,
			Labels:    labelsFor(md.Name, role),
		},
		Spec: corev1.ServiceSpec{
			Selector: labelsFor(md.Name, role),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       servicePort,
					TargetPort: intstr.FromInt32(servicePort),
					Protocol:   corev1.ProtocolTCP,
				},
			},
			Type: corev1.ServiceTypeClusterIP,
		},
	}
	if err := controllerutil.SetControllerReference(md, svc, scheme); err != nil {
		return nil, fmt.Errorf("setting owner reference on service %s: %w", name, err)
	}
	return svc, nil
}

func buildLiveService(md *mlv1alpha1.ModelDeployment, scheme *runtime.Scheme) (*corev1.Service, error) {
	return buildService(md, scheme, liveServiceName(md.Name), roleLive)
}

func buildShadowService(md *mlv1alpha1.ModelDeployment, scheme *runtime.Scheme) (*corev1.Service, error) {
	return buildService(md, scheme, shadowServiceName(md.Name), roleShadow)
}

// buildWorkload renders the Deployment for one model variant (live or
// shadow), always using a RollingUpdate strategy (spec §4.2).
func buildWorkload(md *mlv1alpha1.ModelDeployment, scheme *runtime.Scheme, name string, role string, variant mlv1alpha1.ModelVariant) (*appsv1.Deployment, error) {
	replicas := variant.Replicas
	labels := labelsFor(md.Name, role)

	container := corev1.Container{
		Name:  role,
		Image: variant.Image,
		Ports: []corev1.ContainerPort{
			{
				ContainerPort: servicePort,
				Protocol:      corev1.ProtocolTCP,
			},
		},
	}
	applyResources(&container, md.Spec.Resources)
	applyProbes(&container, md.Spec.Probes)

	dep := &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: md.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{
				MatchLabels: labels,
			},
			Strategy: appsv1.DeploymentStrategy{
				Type: appsv1.RollingUpdateDeploymentStrategyType,
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{container},
				},
			},
		},
	}
	if err := controllerutil.SetControllerReference(md, dep, scheme); err != nil {
		return nil, fmt.Errorf("setting owner reference on deployment %s: %w", name, err)
	}
	return dep, nil
}

func buildLiveWorkload(md *mlv1alpha1.ModelDeployment, scheme *runtime.Scheme) (*appsv1.Deployment, error) {
	return buildWorkload(md, scheme, liveWorkloadName(md.Name), roleLive, md.Spec.Live)
}

func buildShadowWorkload(md *mlv1alpha1.ModelDeployment, scheme *runtime.Scheme) (*appsv1.Deployment, error) {
	return buildWorkload(md, scheme, shadowWorkloadName(md.Name), roleShadow, *md.Spec.Shadow)
}

// applyResources copies the spec's pass-through resource block onto the
// container, if set. The core never interprets these values.
func applyResources(container *corev1.Container, spec *mlv1alpha1.ResourceSpec) {
	if spec == nil {
		return
	}
	if spec.Limits != nil {
		container.Resources.Limits = resourceListFrom(spec.Limits)
	}
	if spec.Requests != nil {
		container.Resources.Requests = resourceListFrom(spec.Requests)
	}
}

func resourceListFrom(list *mlv1alpha1.ResourceList) corev1.ResourceList {
	out := corev1.ResourceList{}
	if list.CPU != nil {
		if q, err := parseQuantity(*list.CPU); err == nil {
			out[corev1.ResourceCPU] = q
		}
	}
	if list.Memory != nil {
		if q, err := parseQuantity(*list.Memory); err == nil {
			out[corev1.ResourceMemory] = q
		}
	}
	return out
}

// applyProbes copies the spec's pass-through liveness/readiness paths onto
// the container as HTTPGet probes against the fixed service port.
func applyProbes(container *corev1.Container, spec *mlv1alpha1.ProbeSpec) {
	if spec == nil {
		return
	}
	if spec.LivenessPath != "" {
		container.LivenessProbe = &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				HTTPGet: &corev1.HTTPGetAction{
					Path: spec.LivenessPath,
					Port: intstr.FromInt32(servicePort),
				},
			},
		}
	}
	if spec.ReadinessPath != "" {
		container.ReadinessProbe = &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				HTTPGet: &corev1.HTTPGetAction{
					Path: spec.ReadinessPath,
					Port: intstr.FromInt32(servicePort),
				},
			},
		}
	}
}

// buildMirrorRoute renders the TraefikService that mirrors 100% of live
// traffic to the shadow service (spec §4.2, §6). Named after the parent.
func buildMirrorRoute(md *mlv1alpha1.ModelDeployment, scheme *runtime.Scheme) (*traefikv1alpha1.TraefikService, error) {
	svc := &traefikv1alpha1.TraefikService{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "traefik.containo.us/v1alpha1",
			Kind:       "TraefikService",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      md.Name,
			Namespace: md.Namespace,
		},
		Spec: traefikv1alpha1.TraefikServiceSpec{
			Mirroring: &traefikv1alpha1.MirroringSpec{
				Service: traefikv1alpha1.Service{
					LoadBalancerSpec: traefikv1alpha1.LoadBalancerSpec{
						Kind: "Service",
						Name: liveServiceName(md.Name),
						Port: servicePort,
					},
				},
				Mirrors: []traefikv1alpha1.MirrorSpec{
					{
						LoadBalancerSpec: traefikv1alpha1.LoadBalancerSpec{
							Kind: "Service",
							Name: shadowServiceName(md.Name),
							Port: servicePort,
						},
						Percent: 100,
					},
				},
			},
		},
	}
	if err := controllerutil.SetControllerReference(md, svc, scheme); err != nil {
		return nil, fmt.Errorf("setting owner reference on mirror route %s: %w", md.Name, err)
	}
	return svc, nil
}

// buildIngressRoute renders the IngressRoute exposing the mirror route at
// Host(`<name>.local`) on entry point "web" (spec §4.2, §6).
func buildIngressRoute(md *mlv1alpha1.ModelDeployment, scheme *runtime.Scheme) (*traefikv1alpha1.IngressRoute, error) {
	route := &traefikv1alpha1.IngressRoute{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "traefik.containo.us/v1alpha1",
			Kind:       "IngressRoute",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      md.Name,
			Namespace: md.Namespace,
		},
		Spec: traefikv1alpha1.IngressRouteSpec{
			EntryPoints: []string{"web"},
			Routes: []traefikv1alpha1.RouteSpec{
				{
					Kind:  "Rule",
					Match: fmt.Sprintf("Host(`%s.local`)", md.Name),
					Services: []traefikv1alpha1.RouteServiceEntry{
						{
							Kind: "TraefikService",
							Name: md.Name,
						},
					},
				},
			},
		},
	}
	if err := controllerutil.SetControllerReference(md, route, scheme); err != nil {
		return nil, fmt.Errorf("setting owner reference on ingress route %s: %w", md.Name, err)
	}
	return route, nil
}
