package domain

import "time"

// User is an account known to the session layer. Its role is embedded into
// issued tokens and threaded into every core call by the handlers.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
