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

	"k8s.io/apimachinery/pkg/api/resource"
)

func sha256hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// parseQuantity parses a pass-through resource quantity string (e.g. "500m",
// "256Mi"). Invalid values are the caller's responsibility to surface; the
// builders silently drop them rather than fail the whole reconcile, since
// admission validation is expected to catch this earlier in a real cluster.
func parseQuantity(s string) (resource.Quantity, error) {
	return resource.ParseQuantity(s)
}

// labelsFor returns the standard {app, role} label pair shared by every
// Service and workload this operator manages for a given ModelDeployment.
func labelsFor(name string, role string) map[string]string {
	return map[string]string{
		"app":  name,
		"role": role,
	}
}

const (
	roleLive   = "live"
	roleShadow = "shadow"

	// servicePort is the fixed container and service port mandated by the
	// application contract (spec §4.2).
	servicePort = 8000
)
