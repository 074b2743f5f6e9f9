package models

import "time"

// User roles.
const (
	RoleFounder  = "founder"
	RoleInvestor = "investor"
	RoleAdmin    = "admin"
)

// User is the minimal identity row backing post ownership and the admin gate.
// Credential handling lives outside this service.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"not null;default:founder" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user may drive the moderation workflow.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
