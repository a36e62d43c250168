package models

// VerifyRequest carries everything the verdict engine needs from one upload
type VerifyRequest struct {
	RequestID      string
	Images         []UploadedImage
	Labels         map[string]ViewLabel
	DeclaredSerial string
}

// ErrorResponse represents an error response for routes that do not return a verdict
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by the liveness and health routes
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time,omitempty"`
}
