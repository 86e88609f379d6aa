package types

// SuccessEnvelope is the wire shape of every 2xx JSON response.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorEnvelope is the wire shape of every error JSON response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
