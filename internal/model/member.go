package model

// Role is a family member's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// FamilyMember is a person in the household.
type FamilyMember struct {
	ID     string `json:"id" yaml:"id" validate:"required"`
	Name   string `json:"name" yaml:"name" validate:"required"`
	Email  string `json:"email" yaml:"email" validate:"omitempty,email"`
	Role   Role   `json:"role" yaml:"role" validate:"oneof=admin member"`
	Avatar string `json:"avatar" yaml:"avatar"` // initials
	Color  string `json:"color" yaml:"color"`   // CSS colour for the avatar
}

// EntityID implements Entity.
func (m FamilyMember) EntityID() string { return m.ID }
