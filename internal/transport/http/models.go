package http

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret123"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret123"`
}

// ForgotPasswordRequest is the payload for POST /forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

// ResetPasswordRequest is the payload for POST /reset-password/{token}.
type ResetPasswordRequest struct {
	Password string `json:"password" example:"newsecret456"`
}

// WatchHistoryRequest is the payload for POST /watch_history. Progress is
// accepted as any JSON number; the service coerces it to a non-negative
// integer.
type WatchHistoryRequest struct {
	ContentID string   `json:"content_id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Progress  *float64 `json:"progress,omitempty" example:"1345"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Message string `json:"message" example:"invalid credentials"`
}
