package forms

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/avatar"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

// Team form field names.
const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldRole     = "role"
	FieldLocation = "location"
	FieldStatus   = "status"
	FieldAvatar   = "avatar"
)

// phonePattern is "+<country code> dddd-dddddd", e.g. "+880 1234-567890".
var phonePattern = regexp.MustCompile(`^\+\d+ \d{4}-\d{6}$`)

// ValidTeamPhone reports whether s matches the phone pattern.
func ValidTeamPhone(s string) bool { return phonePattern.MatchString(s) }

// ValidateTeamMember checks every team field and reports all failures.
func ValidateTeamMember(d core.TeamMemberDraft) core.FieldErrors {
	errs := core.FieldErrors{}
	if strings.TrimSpace(d.Name) == "" {
		errs.Add(FieldName, core.RequiredField, "Name is required")
	}
	switch phone := strings.TrimSpace(d.Phone); {
	case phone == "":
		errs.Add(FieldPhone, core.RequiredField, "Phone number is required")
	case !ValidTeamPhone(phone):
		errs.Add(FieldPhone, core.InvalidFormat, "Phone must look like +880 1234-567890")
	}
	if !core.Role(strings.TrimSpace(d.Role)).Valid() {
		errs.Add(FieldRole, core.RequiredField, "Please select a role")
	}
	if strings.TrimSpace(d.Location) == "" {
		errs.Add(FieldLocation, core.RequiredField, "Location is required")
	}
	if s := strings.TrimSpace(d.Status); s != "" && !core.MemberStatus(s).Valid() {
		errs.Add(FieldStatus, core.InvalidFormat, "Status must be Active or Suspended")
	}
	return errs
}

// NormalizeTeamMember builds the record from a valid draft. It keeps the ID
// of an existing member and assigns a new one otherwise. A blank avatar is
// replaced with avatarURL(name).
func NormalizeTeamMember(d core.TeamMemberDraft, existing *core.TeamMember, avatarURL func(string) string) core.TeamMember {
	if avatarURL == nil {
		avatarURL = avatar.URLFor
	}
	m := core.TeamMember{
		Name:     strings.TrimSpace(d.Name),
		Phone:    strings.TrimSpace(d.Phone),
		Role:     core.Role(strings.TrimSpace(d.Role)),
		Location: strings.TrimSpace(d.Location),
		Status:   core.MemberStatus(strings.TrimSpace(d.Status)),
		Avatar:   strings.TrimSpace(d.Avatar),
	}
	if existing != nil && existing.ID != "" {
		m.ID = existing.ID
	} else {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = core.StatusActive
	}
	if m.Avatar == "" {
		m.Avatar = avatarURL(m.Name)
	}
	return m
}

// TeamMemberDefinition wires the team rules into a Definition.
func TeamMemberDefinition(avatarURL func(string) string) Definition[core.TeamMemberDraft, core.TeamMember] {
	return Definition[core.TeamMemberDraft, core.TeamMember]{
		Empty:    core.NewTeamMemberDraft,
		Prefill:  core.TeamMember.Draft,
		Validate: ValidateTeamMember,
		Normalize: func(d core.TeamMemberDraft, existing *core.TeamMember) core.TeamMember {
			return NormalizeTeamMember(d, existing, avatarURL)
		},
	}
}

// TeamMemberForm is the add/edit team member dialog.
type TeamMemberForm = Form[core.TeamMemberDraft, core.TeamMember]

func NewTeamMemberForm(avatarURL func(string) string, onSubmitted func(core.TeamMember), onClose func()) *TeamMemberForm {
	return New(TeamMemberDefinition(avatarURL), onSubmitted, onClose)
}
