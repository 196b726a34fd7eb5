// Package store defines the persistence interfaces for the service and two
// implementations: Postgres (production) and Memory (tests, local dev).
package store

import (
	"context"
	"errors"

	"campus-events-backend/authz"
	"campus-events-backend/models"
)

var (
	// ErrNotFound means the id was well-formed but no record exists.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when creating a user with a taken email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotPending means an approve/reject raced a finished transition.
	ErrNotPending = errors.New("request is no longer pending")
	// ErrRecruitmentClosed means an apply hit a closed recruitment.
	ErrRecruitmentClosed = errors.New("recruitment is closed")
	// ErrAlreadyApplied means the student already has an applicant entry.
	ErrAlreadyApplied = errors.New("already applied")
	// ErrAlreadyVolunteer means the student already joined the event.
	ErrAlreadyVolunteer = errors.New("already registered as volunteer")
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id int64, role models.UserRole) (*models.User, error)
	UpdateUserBranch(ctx context.Context, id int64, branch *string) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (*models.User, error)
}

type EventStore interface {
	CreateEvent(ctx context.Context, e *models.Event) error
	ListEvents(ctx context.Context) ([]models.Event, error)
	EventByID(ctx context.Context, id int64) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int64, b *models.UpdateEventBody) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	AddVolunteer(ctx context.Context, eventID, studentID int64) (*models.Event, error)
}

type AnnouncementStore interface {
	CreateAnnouncement(ctx context.Context, a *models.Announcement) error
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	AnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, b *models.UpdateAnnouncementBody) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
}

// RequestFilter narrows ListRequests. Status empty means no status filter.
type RequestFilter struct {
	Scope  authz.RequestScope
	Status models.RequestStatus
}

type RequestStore interface {
	CreateRequest(ctx context.Context, r *models.EventRequest) error
	RequestByID(ctx context.Context, id int64) (*models.EventRequest, error)
	RequestsByStudent(ctx context.Context, studentID int64) ([]models.EventRequest, error)
	ListRequests(ctx context.Context, f RequestFilter) ([]models.EventRequest, error)

	// ApproveRequest atomically creates the event and marks the request
	// approved, conditional on the request still being pending. Returns
	// ErrNotPending when a concurrent review won.
	ApproveRequest(ctx context.Context, id, reviewerID int64, comment string) (*models.EventRequest, *models.Event, error)
	// RejectRequest marks the request rejected under the same condition.
	RejectRequest(ctx context.Context, id, reviewerID int64, comment string) (*models.EventRequest, error)
}

type RecruitmentStore interface {
	CreateRecruitment(ctx context.Context, r *models.Recruitment) error
	ListRecruitments(ctx context.Context, openOnly bool) ([]models.Recruitment, error)
	RecruitmentByID(ctx context.Context, id int64) (*models.Recruitment, error)
	UpdateRecruitment(ctx context.Context, id int64, b *models.UpdateRecruitmentBody) (*models.Recruitment, error)
	DeleteRecruitment(ctx context.Context, id int64) error

	// AddApplicant appends an applicant entry, conditional on the
	// recruitment being open and the student not already present.
	AddApplicant(ctx context.Context, recruitmentID int64, app models.Applicant) (*models.Recruitment, error)
	// Applicants returns the recruitment plus its applicants with student
	// identity resolved.
	Applicants(ctx context.Context, recruitmentID int64) (*models.Recruitment, []models.ApplicantDetail, error)
}

// Store aggregates every entity store; both Postgres and Memory satisfy it.
type Store interface {
	UserStore
	EventStore
	AnnouncementStore
	RequestStore
	RecruitmentStore
}
