package models

// Tokens is the credential pair issued by login and registration.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session is everything persisted for a signed-in user. Its three parts are
// written and removed together.
type Session struct {
	Tokens Tokens
	User   User
}

// AuthResponse is the body returned by login and registration.
type AuthResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	User    *User   `json:"user"`
	Tokens  *Tokens `json:"tokens"`
}

// UserResponse is the body returned by token verification and profile updates.
type UserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user"`
}
