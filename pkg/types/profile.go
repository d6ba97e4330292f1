package types

import "time"

type ProfileRole string

const (
	ProfileRoleMember ProfileRole = "member"
	ProfileRoleAdmin  ProfileRole = "admin"
)

type Profile struct {
	UserID      string      `db:"user_id"`
	DisplayName *string     `db:"display_name"`
	Bio         *string     `db:"bio"`
	Role        ProfileRole `db:"role"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == ProfileRoleAdmin
}
