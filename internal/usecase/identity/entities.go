package identity

import "time"

type CreateUserInput struct {
	UserID    string `validate:"required,userid"`
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"required,email,max=254"`
	Phone     string `validate:"omitempty,phone"`
	// bcrypt refuses more than 72 bytes; max counts runes
	Password string `validate:"required,min=8,bcryptlen"`
}

type UserDTO struct {
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
