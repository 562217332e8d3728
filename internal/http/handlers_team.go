package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/forms"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
)

type teamFormView struct {
	Draft    core.TeamMemberDraft
	Errors   core.FieldErrors
	IsEdit   bool
	Roles    []core.Role
	Statuses []core.MemberStatus
}

func newTeamFormView(f *forms.TeamMemberForm) teamFormView {
	return teamFormView{
		Draft:    f.Draft(),
		Errors:   f.Errors(),
		IsEdit:   f.IsEdit(),
		Roles:    core.Roles,
		Statuses: core.MemberStatuses,
	}
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	page, err := s.records.Team(r.Context(), ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		s.writeError(w, r, applog.ComponentTeam, err)
		return
	}
	name := "team.html"
	if isHTMX(r) {
		name = "team_rows"
	}
	s.writePage(w, r, http.StatusOK, name, page)
}

func (s *Server) handleNewTeamMember(w http.ResponseWriter, r *http.Request) {
	f := forms.NewTeamMemberForm(s.avatars.URLFor, nil, nil)
	_ = f.Open(nil)
	s.writePage(w, r, http.StatusOK, "team_form", newTeamFormView(f))
}

func (s *Server) handleEditTeamMember(w http.ResponseWriter, r *http.Request) {
	existing, err := s.records.TeamMember(r.Context(), strings.TrimSpace(r.URL.Query().Get("id")))
	if err != nil {
		s.writeError(w, r, applog.ComponentTeam, err)
		return
	}
	f := forms.NewTeamMemberForm(s.avatars.URLFor, nil, nil)
	_ = f.Open(&existing)
	s.writePage(w, r, http.StatusOK, "team_form", newTeamFormView(f))
}

// handleSubmitTeamMember drives one add or edit through the team form.
func (s *Server) handleSubmitTeamMember(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	var existing *core.TeamMember
	if id := p.Get("id"); id != "" {
		m, err := s.records.TeamMember(r.Context(), id)
		if err != nil {
			s.writeError(w, r, applog.ComponentTeam, err)
			return
		}
		existing = &m
	}

	var saveErr error
	closed := false
	f := forms.NewTeamMemberForm(s.avatars.URLFor,
		func(m core.TeamMember) { saveErr = s.records.SubmitTeamMember(r.Context(), m) },
		func() { closed = true },
	)
	_ = f.Open(existing)
	_ = f.Edit(func(d *core.TeamMemberDraft) { TeamMemberDraftFrom(p, d) })

	m, err := f.Submit()
	if errors.Is(err, core.ErrValidation) {
		body, rerr := s.render(r, "team_form", newTeamFormView(f))
		if rerr != nil {
			InternalServerError("Unable to render form").Write(w)
			return
		}
		NewHTMXResponse().Status(http.StatusUnprocessableEntity).BodyHTML(body).Write(w)
		return
	}
	if err == nil {
		err = saveErr
	}
	if err != nil {
		s.writeError(w, r, applog.ComponentTeam, err)
		return
	}

	logSubmitted(r.Context(), applog.ComponentTeam, ports.KindTeamMember, m.ID)
	if !isHTMX(r) {
		http.Redirect(w, r, "/team", http.StatusSeeOther)
		return
	}
	resp := NewHTMXResponse().
		TriggerRecordSubmitted(string(ports.KindTeamMember), m.ID).
		TriggerSuccessNotification(m.Name + " saved")
	if closed {
		resp.TriggerCloseModal()
	}
	resp.Write(w)
}
