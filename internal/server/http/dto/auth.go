package dto

// LoginResponse returns the shared admin bearer token after a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// ErrorResponse carries a human readable failure description.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}
