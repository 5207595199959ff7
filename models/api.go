package models

// APIResponse is a generic structure for all API responses
type APIResponse struct {
	Status  string      `json:"status"`            // "success" or "error"
	Code    int         `json:"code"`              // HTTP status code (200, 400, 500, etc.)
	Message string      `json:"message,omitempty"` // Human-readable message
	Data    interface{} `json:"data,omitempty"`    // Any response data (can be map, struct, list, etc.)
	Error   *APIError   `json:"error,omitempty"`   // Detailed error info (nil if success)
}

// APIError holds detailed error information
type APIError struct {
	Type    string   `json:"type,omitempty"`    // e.g., "ValidationError", "DatabaseError"
	Details string   `json:"details,omitempty"` // More context about the error
	Field   string   `json:"field,omitempty"`   // For validation errors (which field failed)
	Invalid []string `json:"invalid,omitempty"` // Offending values, e.g. unknown technician emails
}

// HealthStatus is returned by the health endpoint
type HealthStatus struct {
	Status  string `json:"status"`
	Ts      int64  `json:"ts"`
	Version string `json:"version"`
	Service string `json:"service"`
	Store   string `json:"store"`
	// Sweep is set only while the maintenance worker runs in this process
	Sweep *SweepStatus `json:"sweep,omitempty"`
}
