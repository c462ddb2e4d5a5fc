// Request and response payloads for the auth endpoints.
package auth

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required" example:"Jane"`
	LastName  string `json:"last_name" validate:"required" example:"Doe"`
	Email     string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password  string `json:"password" validate:"required" example:"strongpassword123"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// AuthResponse is returned on successful registration or login: a summary of
// the user plus a signed bearer token.
type AuthResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
