package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campus-events-backend/models"
)

// Memory is an in-memory Store with the same transition semantics as
// Postgres. It backs the test suite and local development without a
// database; every state change happens under one mutex so concurrent
// transitions observe the same check-and-set failures as the conditional
// SQL updates.
type Memory struct {
	mu sync.Mutex

	users         map[int64]*models.User
	events        map[int64]*models.Event
	announcements map[int64]*models.Announcement
	requests      map[int64]*models.EventRequest
	recruitments  map[int64]*models.Recruitment

	nextID int64
}

func NewMemory() *Memory {
	return &Memory{
		users:         map[int64]*models.User{},
		events:        map[int64]*models.Event{},
		announcements: map[int64]*models.Announcement{},
		requests:      map[int64]*models.EventRequest{},
		recruitments:  map[int64]*models.Recruitment{},
	}
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

// ---------- users ----------

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicateEmail
		}
	}
	u.ID = m.id()
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) UserByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) UpdateUserRole(_ context.Context, id int64, role models.UserRole) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (m *Memory) UpdateUserBranch(_ context.Context, id int64, branch *string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Branch = branch
	cp := *u
	return &cp, nil
}

func (m *Memory) DeleteUser(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.users, id)
	return u, nil
}

// ---------- events ----------

func (m *Memory) CreateEvent(_ context.Context, e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createEventLocked(e)
	return nil
}

func (m *Memory) createEventLocked(e *models.Event) {
	e.ID = m.id()
	e.CreatedAt = time.Now()
	if e.Status == "" {
		e.Status = models.EventUpcoming
	}
	if e.Volunteers == nil {
		e.Volunteers = []int64{}
	}
	cp := *e
	cp.Volunteers = append([]int64{}, e.Volunteers...)
	m.events[e.ID] = &cp
}

func copyEvent(e *models.Event) *models.Event {
	cp := *e
	cp.Volunteers = append([]int64{}, e.Volunteers...)
	return &cp
}

func (m *Memory) ListEvents(_ context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Event{}
	for _, e := range m.events {
		out = append(out, *copyEvent(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) EventByID(_ context.Context, id int64) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyEvent(e), nil
}

func (m *Memory) UpdateEvent(_ context.Context, id int64, b *models.UpdateEventBody) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if b.Title != nil {
		e.Title = *b.Title
	}
	if b.Description != nil {
		e.Description = *b.Description
	}
	if b.Date != nil {
		e.Date = *b.Date
	}
	if b.Venue != nil {
		e.Venue = *b.Venue
	}
	if b.Branch != nil {
		e.Branch = *b.Branch
	}
	if b.Status != nil {
		e.Status = *b.Status
	}
	if b.Image != nil {
		e.Image = *b.Image
	}
	return copyEvent(e), nil
}

func (m *Memory) DeleteEvent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *Memory) AddVolunteer(_ context.Context, eventID, studentID int64) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, v := range e.Volunteers {
		if v == studentID {
			return nil, ErrAlreadyVolunteer
		}
	}
	e.Volunteers = append(e.Volunteers, studentID)
	return copyEvent(e), nil
}

// ---------- announcements ----------

func (m *Memory) enrichAnnouncementLocked(a models.Announcement) models.Announcement {
	if u, ok := m.users[a.CreatedBy]; ok {
		name := u.Name
		role := u.Role
		a.CreatedByName = &name
		a.CreatedByRole = &role
	}
	return a
}

func (m *Memory) CreateAnnouncement(_ context.Context, a *models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.id()
	a.CreatedAt = time.Now()
	cp := *a
	m.announcements[a.ID] = &cp
	return nil
}

func (m *Memory) ListAnnouncements(_ context.Context) ([]models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Announcement{}
	for _, a := range m.announcements {
		out = append(out, m.enrichAnnouncementLocked(*a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) AnnouncementByID(_ context.Context, id int64) (*models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.announcements[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := m.enrichAnnouncementLocked(*a)
	return &cp, nil
}

func (m *Memory) UpdateAnnouncement(_ context.Context, id int64, b *models.UpdateAnnouncementBody) (*models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.announcements[id]
	if !ok {
		return nil, ErrNotFound
	}
	if b.Title != nil {
		a.Title = *b.Title
	}
	if b.Message != nil {
		a.Message = *b.Message
	}
	if b.Branch != nil {
		a.Branch = *b.Branch
	}
	cp := m.enrichAnnouncementLocked(*a)
	return &cp, nil
}

func (m *Memory) DeleteAnnouncement(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.announcements[id]; !ok {
		return ErrNotFound
	}
	delete(m.announcements, id)
	return nil
}

// ---------- event requests ----------

func (m *Memory) enrichRequestLocked(r models.EventRequest) models.EventRequest {
	if u, ok := m.users[r.RequestedBy]; ok {
		r.RequestedByName = u.Name
		r.RequestedByEmail = u.Email
		r.RequestedByBranch = u.Branch
	}
	if r.ReviewedBy != nil {
		if u, ok := m.users[*r.ReviewedBy]; ok {
			name := u.Name
			role := u.Role
			r.ReviewedByName = &name
			r.ReviewedByRole = &role
		}
	}
	return r
}

func (m *Memory) CreateRequest(_ context.Context, r *models.EventRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	r.Status = models.RequestPending
	r.CreatedAt = time.Now()
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

func (m *Memory) RequestByID(_ context.Context, id int64) (*models.EventRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := m.enrichRequestLocked(*r)
	return &cp, nil
}

func (m *Memory) RequestsByStudent(_ context.Context, studentID int64) ([]models.EventRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.EventRequest{}
	for _, r := range m.requests {
		if r.RequestedBy == studentID {
			out = append(out, m.enrichRequestLocked(*r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) ListRequests(_ context.Context, f RequestFilter) ([]models.EventRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.EventRequest{}
	if f.Scope.None {
		return out, nil
	}
	for _, r := range m.requests {
		if !f.Scope.All && r.Branch != f.Scope.Branch {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, m.enrichRequestLocked(*r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) ApproveRequest(_ context.Context, id, reviewerID int64, comment string) (*models.EventRequest, *models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	if r.Status != models.RequestPending {
		return nil, nil, ErrNotPending
	}

	ev := &models.Event{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Venue:       r.Venue,
		Branch:      r.Branch,
		CreatedBy:   reviewerID,
	}
	m.createEventLocked(ev)

	r.Status = models.RequestApproved
	r.ReviewedBy = &reviewerID
	r.ReviewComment = comment
	r.EventID = &ev.ID

	cp := m.enrichRequestLocked(*r)
	return &cp, copyEvent(ev), nil
}

func (m *Memory) RejectRequest(_ context.Context, id, reviewerID int64, comment string) (*models.EventRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.Status != models.RequestPending {
		return nil, ErrNotPending
	}
	r.Status = models.RequestRejected
	r.ReviewedBy = &reviewerID
	r.ReviewComment = comment
	cp := m.enrichRequestLocked(*r)
	return &cp, nil
}

// ---------- recruitments ----------

func copyRecruitment(r *models.Recruitment) *models.Recruitment {
	cp := *r
	cp.Applicants = append([]models.Applicant{}, r.Applicants...)
	return &cp
}

func (m *Memory) enrichRecruitmentLocked(r *models.Recruitment) *models.Recruitment {
	cp := copyRecruitment(r)
	if e, ok := m.events[r.EventID]; ok {
		cp.EventTitle = e.Title
	}
	if u, ok := m.users[r.CreatedBy]; ok {
		name := u.Name
		cp.CreatedByName = &name
	}
	return cp
}

func (m *Memory) CreateRecruitment(_ context.Context, r *models.Recruitment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	r.Status = models.RecruitmentOpen
	r.CreatedAt = time.Now()
	if r.Applicants == nil {
		r.Applicants = []models.Applicant{}
	}
	cp := *copyRecruitment(r)
	m.recruitments[r.ID] = &cp
	return nil
}

func (m *Memory) ListRecruitments(_ context.Context, openOnly bool) ([]models.Recruitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Recruitment{}
	for _, r := range m.recruitments {
		if openOnly && r.Status != models.RecruitmentOpen {
			continue
		}
		out = append(out, *m.enrichRecruitmentLocked(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) RecruitmentByID(_ context.Context, id int64) (*models.Recruitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recruitments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.enrichRecruitmentLocked(r), nil
}

func (m *Memory) UpdateRecruitment(_ context.Context, id int64, b *models.UpdateRecruitmentBody) (*models.Recruitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recruitments[id]
	if !ok {
		return nil, ErrNotFound
	}
	if b.Title != nil {
		r.Title = *b.Title
	}
	if b.RoleType != nil {
		r.RoleType = *b.RoleType
	}
	if b.Description != nil {
		r.Description = *b.Description
	}
	if b.Branch != nil {
		r.Branch = *b.Branch
	}
	if b.Status != nil {
		r.Status = *b.Status
	}
	return m.enrichRecruitmentLocked(r), nil
}

func (m *Memory) DeleteRecruitment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recruitments[id]; !ok {
		return ErrNotFound
	}
	delete(m.recruitments, id)
	return nil
}

func (m *Memory) AddApplicant(_ context.Context, recruitmentID int64, app models.Applicant) (*models.Recruitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recruitments[recruitmentID]
	if !ok {
		return nil, ErrNotFound
	}
	if r.Status != models.RecruitmentOpen {
		return nil, ErrRecruitmentClosed
	}
	for _, a := range r.Applicants {
		if a.Student == app.Student {
			return nil, ErrAlreadyApplied
		}
	}
	if app.Status == "" {
		app.Status = models.ApplicantApplied
	}
	app.AppliedAt = time.Now()
	r.Applicants = append(r.Applicants, app)
	return m.enrichRecruitmentLocked(r), nil
}

func (m *Memory) Applicants(_ context.Context, recruitmentID int64) (*models.Recruitment, []models.ApplicantDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recruitments[recruitmentID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	details := []models.ApplicantDetail{}
	for _, a := range r.Applicants {
		d := models.ApplicantDetail{
			Student:   models.ApplicantStudent{ID: a.Student},
			Note:      a.Note,
			Status:    a.Status,
			AppliedAt: a.AppliedAt,
		}
		if u, ok := m.users[a.Student]; ok {
			d.Student.Name = u.Name
			d.Student.Email = u.Email
			d.Student.Branch = u.Branch
		}
		details = append(details, d)
	}
	return m.enrichRecruitmentLocked(r), details, nil
}
