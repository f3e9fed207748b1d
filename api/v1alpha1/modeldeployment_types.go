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

// ModelVariant describes one inference workload variant (live or shadow):
// a container image and the replica count it should run at.
type ModelVariant struct {
	// Image is the container image to run, including tag.
	// Example: "registry.example.com/models/recommender:v3"
	// +kubebuilder:validation:Required
	Image string `json:"image"`

	// Replicas is the desired number of running pod replicas.
	// Defaults to 1 if not specified.
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:default=1
	// +optional
	Replicas int32 `json:"replicas,omitempty"`
}

// ResourceList holds CPU and memory quantities as free-form strings, passed
// through to the generated workload's container resource requirements.
type ResourceList struct {
	// +optional
	CPU *string `json:"cpu,omitempty"`
	// +optional
	Memory *string `json:"memory,omitempty"`
}

// ResourceSpec is a pass-through resource requirements block. The core does
// not interpret these fields beyond copying them onto the built workload.
type ResourceSpec struct {
	// +optional
	Limits *ResourceList `json:"limits,omitempty"`
	// +optional
	Requests *ResourceList `json:"requests,omitempty"`
}

// AutoscalingSpec is persisted verbatim; the core never creates or drives an
// HorizontalPodAutoscaler from it. See spec Non-goals.
type AutoscalingSpec struct {
	// +optional
	Enabled bool `json:"enabled,omitempty"`
	// +optional
	MinReplicas *int32 `json:"minReplicas,omitempty"`
	// +optional
	MaxReplicas *int32 `json:"maxReplicas,omitempty"`
	// +optional
	TargetCPUUtilizationPercentage *int32 `json:"targetCPUUtilizationPercentage,omitempty"`
}

// ProbeSpec is a pass-through liveness/readiness path block.
type ProbeSpec struct {
	// +kubebuilder:default="/health"
	// +optional
	LivenessPath string `json:"livenessPath,omitempty"`
	// +kubebuilder:default="/ready"
	// +optional
	ReadinessPath string `json:"readinessPath,omitempty"`
}

// ModelDeploymentSpec defines the desired state of ModelDeployment.
// All fields represent intent — the operator reconciles the cluster toward
// this state.
type ModelDeploymentSpec struct {
	// Live is the primary model variant. Always reconciled.
	// +kubebuilder:validation:Required
	Live ModelVariant `json:"live"`

	// Shadow is an optional secondary model variant. When set, a second
	// Service and workload are reconciled alongside Live, labeled role=shadow.
	// +optional
	Shadow *ModelVariant `json:"shadow,omitempty"`

	// TrafficMirror, when true, additionally reconciles a mirror route that
	// forwards 100% of live traffic to Shadow for comparison, and an ingress
	// route exposing the mirror route at "<name>.local".
	// +optional
	TrafficMirror bool `json:"trafficMirror,omitempty"`

	// RolloutStrategy names the rollout strategy for the generated workloads.
	// Only "rolling" is currently implemented; the field is persisted so that
	// future strategies can be added without a schema change.
	// +kubebuilder:default="rolling"
	// +optional
	RolloutStrategy string `json:"rolloutStrategy,omitempty"`

	// Resources is a pass-through resource requirements block applied to
	// both Live and Shadow containers.
	// +optional
	Resources *ResourceSpec `json:"resources,omitempty"`

	// Autoscaling is persisted but not acted on by the core.
	// +optional
	Autoscaling *AutoscalingSpec `json:"autoscaling,omitempty"`

	// Probes is a pass-through liveness/readiness configuration.
	// +optional
	Probes *ProbeSpec `json:"probes,omitempty"`

	// ConfigRef names an external configuration object. Persisted only;
	// the core does not resolve or mount it.
	// +optional
	ConfigRef *string `json:"configRef,omitempty"`
}

// ChildStatus mirrors a workload's observed replica counts.
type ChildStatus struct {
	// +optional
	AvailableReplicas int32 `json:"availableReplicas"`
	// +optional
	UpdatedReplicas int32 `json:"updatedReplicas"`
}

// ModelDeploymentStatus defines the observed state of ModelDeployment.
// All fields represent runtime observations — never set these from Spec.
type ModelDeploymentStatus struct {
	// Phase summarizes reconciliation state.
	// +kubebuilder:validation:Enum=Available;Progressing;Degraded
	// +optional
	Phase string `json:"phase,omitempty"`

	// LiveStatus reports the observed state of the live workload.
	// +optional
	LiveStatus *ChildStatus `json:"liveStatus,omitempty"`

	// ShadowStatus reports the observed state of the shadow workload, if any.
	// +optional
	ShadowStatus *ChildStatus `json:"shadowStatus,omitempty"`

	// Conditions holds Ready, Progressing and Degraded, always all three,
	// refreshed on every successful reconcile pass.
	// +optional
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// Phase constants for ModelDeployment status.
const (
	PhaseAvailable   = "Available"
	PhaseProgressing = "Progressing"
	PhaseDegraded    = "Degraded"
)

// Condition type constants for ModelDeployment status.
const (
	TypeReady       = "Ready"
	TypeProgressing = "Progressing"
	TypeDegraded    = "Degraded"
)

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=md
// +kubebuilder:printcolumn:name="Phase",type="string",JSONPath=".status.phase",description="Reconciled phase"
// +kubebuilder:printcolumn:name="Image",type="string",JSONPath=".spec.live.image",description="Live image"
// +kubebuilder:printcolumn:name="Replicas",type="integer",JSONPath=".spec.live.replicas",description="Desired live replicas"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// ModelDeployment is the Schema for the modeldeployments API.
// It represents an inference workload — a live model, an optional
// traffic-mirrored shadow model, and the routing between them — managed by
// the model-operator.
type ModelDeployment struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ModelDeploymentSpec   `json:"spec,omitempty"`
	Status ModelDeploymentStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ModelDeploymentList contains a list of ModelDeployment.
type ModelDeploymentList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ModelDeployment `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ModelDeployment{}, &ModelDeploymentList{})
}
