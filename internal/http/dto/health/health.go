// Package health contiene los DTOs de liveness/readiness.
package health

import "time"

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse: Status es "ok" o "unavailable".
type HealthResponse struct {
	Status      string                  `json:"status"`
	Components  map[string]HealthStatus `json:"components,omitempty"`
	ActiveKeyID string                  `json:"active_kid,omitempty"`
	Timestamp   time.Time               `json:"timestamp"`
}
