package dto

// RegisterRequest represents the API request for creating an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse represents the API response after registration
type RegisterResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// LoginRequest represents the API request for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token issued on successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
