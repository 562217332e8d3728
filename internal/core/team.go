package core

// Role is a team member's position, chosen from a fixed list.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleManager    Role = "Manager"
	RoleAccountant Role = "Accountant"
	RoleSales      Role = "Sales Representative"
	RoleWarehouse  Role = "Warehouse Staff"
)

var Roles = []Role{RoleAdmin, RoleManager, RoleAccountant, RoleSales, RoleWarehouse}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

type MemberStatus string

const (
	StatusActive    MemberStatus = "Active"
	StatusSuspended MemberStatus = "Suspended"
)

var MemberStatuses = []MemberStatus{StatusActive, StatusSuspended}

func (s MemberStatus) Valid() bool {
	return s == StatusActive || s == StatusSuspended
}

// TeamMemberDraft holds the team form fields as typed.
type TeamMemberDraft struct {
	ID       string
	Name     string
	Phone    string
	Role     string
	Location string
	Status   string
	Avatar   string
}

// NewTeamMemberDraft returns an empty draft with the default status.
func NewTeamMemberDraft() TeamMemberDraft {
	return TeamMemberDraft{Status: string(StatusActive)}
}

type TeamMember struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Phone    string       `json:"phone"`
	Role     Role         `json:"role"`
	Location string       `json:"location"`
	Status   MemberStatus `json:"status"`
	Avatar   string       `json:"avatar"`
}

// Draft converts the member back into form fields for editing.
func (m TeamMember) Draft() TeamMemberDraft {
	status := string(m.Status)
	if status == "" {
		status = string(StatusActive)
	}
	return TeamMemberDraft{
		ID:       m.ID,
		Name:     m.Name,
		Phone:    m.Phone,
		Role:     string(m.Role),
		Location: m.Location,
		Status:   status,
		Avatar:   m.Avatar,
	}
}
