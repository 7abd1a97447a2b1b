package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID              int64     `json:"id" db:"id"`
	Role            RoleType  `json:"role" db:"role"`
	Email           string    `json:"email" db:"email"`
	FullName        string    `json:"fullname" db:"fullname"`
	Password        string    `json:"-" db:"password"` // hashed, excluded from JSON
	ThemePreference *string   `json:"themePreference,omitempty" db:"theme_preference"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
