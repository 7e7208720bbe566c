package entity

import (
	"time"
)

// User is the aggregate root for identity.
// Password holds a bcrypt hash and is never serialized.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username" validate:"required,username"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-" validate:"required"`
	Role      Role      `json:"role" validate:"required,oneof=user moderator admin"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSummary is the author reference embedded in deals and comments.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
}
