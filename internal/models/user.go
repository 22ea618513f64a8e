package models

import "time"

// Role is the coarse admin role used by the permission matrix.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleOperations Role = "operations"
	RoleViewer     Role = "viewer"
)

// User represents an admin-portal user. Investors do not log in through this
// model; the investor portal authenticates upstream.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `json:"name"`
	Role        Role       `gorm:"not null;default:'viewer'" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
