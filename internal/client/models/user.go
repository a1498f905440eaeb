// Package models contains the wire types exchanged with the transcribeThis API.
package models

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	GoogleID string `json:"google_id,omitempty"`

	// CurrentPlan is populated on some payloads (OAuth completion), absent on others.
	CurrentPlan *Plan `json:"current_plan,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
