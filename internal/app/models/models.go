// Package models contains the domain types stored in the database.
package models

// RoleType defines the user role
type RoleType string

const (
	RoleTeacher RoleType = "teacher"
	RoleStudent RoleType = "student"
)

// Valid reports whether the role is one of the known role variants.
func (r RoleType) Valid() bool {
	switch r {
	case RoleTeacher, RoleStudent:
		return true
	}
	return false
}
