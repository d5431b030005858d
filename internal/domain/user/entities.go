package user

import (
	"time"

	"loan-ledger/internal/domain/apperr"
)

var (
	ErrNotFound       = apperr.NotFound("user_id", "user not found")
	ErrUserIDTaken    = apperr.Conflict("user_id", "user id already registered")
	ErrEmailTaken     = apperr.Conflict("email", "email already registered")
	ErrBadCredentials = apperr.Authorization("invalid user id or password")
)

// Table: users. UserID is chosen by the registrant and is the identity
// every other table references; ID is storage-internal only.
type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID       string    `gorm:"column:user_id;size:50;not null;uniqueIndex:ux_users_user_id" json:"user_id"`
	FirstName    string    `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName     string    `gorm:"column:last_name;size:100;not null" json:"last_name"`
	Email        string    `gorm:"column:email;size:254;not null;uniqueIndex:ux_users_email" json:"email"`
	Phone        string    `gorm:"column:phone;size:15" json:"phone"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
