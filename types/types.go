package types

// ApiError is the body of every non-2xx JSON response.
type ApiError struct {
	Message string            `json:"message" description:"Human readable error message"`
	Context map[string]string `json:"context,omitempty" description:"Per-field error details, if any"`
}

// Health is returned by the health endpoint.
type Health struct {
	Status string `json:"status" description:"Always ok when the service is up"`
	App    string `json:"app" description:"Service name"`
}
