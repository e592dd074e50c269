package models

import "net/url"

const (
	StaffRoleHousekeeper = "Housekeeper"
	StaffRoleSupervisor  = "Supervisor"
)

type StaffMember struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	Avatar          string `json:"avatar"`
	BlockAssignment string `json:"block_assignment"`
}

// DefaultAvatarURL returns a generated initials avatar for name.
func DefaultAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
