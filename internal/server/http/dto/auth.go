package dto

// RegisterRequest describes the signup payload.
type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// TokenResponse carries the issued auth token.
type TokenResponse struct {
	Token string `json:"token"`
}
