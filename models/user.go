package models

import "time"

// Role type for user roles
type Role string

const (
	RoleGuest   Role = "guest"
	RoleClient  Role = "client"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleClient, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents users table
type User struct {
	UserID       uint      `gorm:"primaryKey;column:user_id" json:"user_id"`
	Login        string    `gorm:"type:varchar(50);not null;unique" json:"login"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string    `gorm:"type:varchar(200);not null" json:"full_name"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
