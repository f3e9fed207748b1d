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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// LoadBalancerSpec identifies one backend a TraefikService points at: a
// Kubernetes Service by kind/name/port. MirrorSpec adds the mirror weight.
type LoadBalancerSpec struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Port int32  `json:"port"`
}

// MirrorSpec is a LoadBalancerSpec plus the percentage of requests to
// duplicate onto it.
type MirrorSpec struct {
	LoadBalancerSpec `json:",inline"`
	Percent          int32 `json:"percent"`
}

// MirroringSpec forwards all traffic to Service and additionally copies it
// to each entry in Mirrors, discarding their responses.
type MirroringSpec struct {
	Service `json:",inline"`
	Mirrors []MirrorSpec `json:"mirrors,omitempty"`
}

// Service is the primary backend of a mirroring TraefikService.
type Service struct {
	LoadBalancerSpec `json:",inline"`
}

// TraefikServiceSpec wraps the single mirroring configuration this operator
// generates. Traefik's CRD supports other service types; they are out of
// scope here.
type TraefikServiceSpec struct {
	Mirroring *MirroringSpec `json:"mirroring,omitempty"`
}

// +kubebuilder:object:root=true

// TraefikService is the Traefik CRD kind used here as the mirror-route
// primitive: a primary backend plus one or more mirrored backends.
type TraefikService struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec TraefikServiceSpec `json:"spec,omitempty"`
}

// +kubebuilder:object:root=true

// TraefikServiceList contains a list of TraefikService.
type TraefikServiceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []TraefikService `json:"items"`
}

// RouteSpec is a single Traefik routing rule.
type RouteSpec struct {
	Kind     string              `json:"kind"`
	Match    string              `json:"match"`
	Services []RouteServiceEntry `json:"services"`
}

// RouteServiceEntry names the backend a RouteSpec dispatches to. Kind
// "TraefikService" is used to point at a mirroring TraefikService rather
// than a plain core/v1 Service.
type RouteServiceEntry struct {
	Kind string `json:"kind,omitempty"`
	Name string `json:"name"`
	Port int32  `json:"port,omitempty"`
}

// IngressRouteSpec configures the entry points and routing rules for an
// IngressRoute.
type IngressRouteSpec struct {
	EntryPoints []string    `json:"entryPoints,omitempty"`
	Routes      []RouteSpec `json:"routes"`
}

// +kubebuilder:object:root=true

// IngressRoute is the Traefik CRD kind exposing a set of routes at one or
// more entry points.
type IngressRoute struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec IngressRouteSpec `json:"spec,omitempty"`
}

// +kubebuilder:object:root=true

// IngressRouteList contains a list of IngressRoute.
type IngressRouteList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []IngressRoute `json:"items"`
}

func init() {
	SchemeBuilder.Register(&TraefikService{}, &TraefikServiceList{}, &IngressRoute{}, &IngressRouteList{})
}
