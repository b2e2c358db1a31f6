package model

import (
	"time"
)

// Roles for User.Role
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a marketplace account. The same account acts as tenant or
// landlord depending on which side of a rental it is on; a single
// operator account carries RoleAdmin.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     string    `json:"full_name"`
	IDNumber     string    `json:"id_number"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role" gorm:"default:user"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileComplete reports whether the user filled the details a rental
// request requires.
func (u *User) ProfileComplete() bool {
	return u.FullName != "" && u.IDNumber != "" && u.Phone != ""
}
