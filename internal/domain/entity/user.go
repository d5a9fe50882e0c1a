package entity

import (
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the minimum length of a plain text password at registration.
const MinPasswordLength = 8

// UserType is the role a user acts under.
type UserType string

const (
	UserTypeAdmin   UserType = "ADMIN"
	UserTypeCreator UserType = "CREATOR"
	UserTypeReader  UserType = "READER"
)

// Valid reports whether t is a known role.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdmin, UserTypeCreator, UserTypeReader:
		return true
	}
	return false
}

// User is a registered account. PasswordHash holds an bcrypt hash.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	UserType     UserType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateRegistration checks the fields supplied when registering a user.
func ValidateRegistration(username, email, password string, userType UserType) error {
	if strings.TrimSpace(username) == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if len(username) > maxNameLength {
		return &ValidationError{Field: "username", Message: "username is too long"}
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "password is too short"}
	}
	if !userType.Valid() {
		return &ValidationError{Field: "userType", Message: "userType must be one of ADMIN, CREATOR, READER"}
	}
	return nil
}

// ValidateEmail checks that email is a bare address.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "email is invalid"}
	}
	return nil
}
