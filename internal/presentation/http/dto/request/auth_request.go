package request

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"max=100"`
	Password string `json:"password" binding:"max=72"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"max=100"`
	Password string `json:"password" binding:"max=72"`
}
