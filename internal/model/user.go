package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of account kinds. Every user is exactly one of them.
type Role string

const (
	RoleStudent Role = "student"
	RoleWarden  Role = "warden"
)

// ParseRole maps a raw string onto a Role, rejecting anything outside the set.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleWarden:
		return RoleWarden, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}

// User represents a row in the users table
type User struct {
	ID           int    `json:"user_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"` // Do not expose password hash in JSON responses
	Role         Role   `json:"role"`
}

// RegisterRequest carries everything needed to create a user and its role row.
// BlockID, USN and Room are only consulted for the roles that need them.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"type"`
	BlockID  *int   `json:"block_id"`
	USN      string `json:"usn"`
	Room     string `json:"room"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDetails is the profile view returned to the authenticated user.
type UserDetails struct {
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	USN       *string `json:"usn,omitempty"`
	BlockID   int     `json:"block_id"`
	BlockName string  `json:"block_name"`
	Room      *string `json:"room,omitempty"`
}
