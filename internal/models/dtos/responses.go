package dtos

// APIResponse is the envelope of every JSON response. Error responses carry
// success=false and the message in Error.
type APIResponse struct {
	Status       string `json:"status"`
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}
