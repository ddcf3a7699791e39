package entity

import (
	"time"
)

// User is the aggregate root for the account domain
// Passwords are stored as bcrypt hashes in PasswordHash.
//
// Saved products are not part of the aggregate; they are read through the
// favorites repository.
type User struct {
	ID           string
	Username     string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
