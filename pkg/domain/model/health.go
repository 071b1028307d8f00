package model

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	Workflow string `json:"workflow,omitempty"` // Workflow filter of the webhook trigger, empty for all
}
