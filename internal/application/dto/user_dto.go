package dto

// LoginRequest credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the issued JWT.
type TokenResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	ProfileID string `json:"profileId,omitempty"`
	Role      string `json:"role"`
}
