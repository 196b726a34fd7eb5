package models

import "time"

// UserRole enum (canonical type; authorization switches over it exhaustively).
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleFaculty UserRole = "faculty"
	UserRoleAdmin   UserRole = "admin"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleStudent, UserRoleFaculty, UserRoleAdmin:
		return true
	}
	return false
}

type EventStatus string

const (
	EventUpcoming EventStatus = "upcoming"
	EventOngoing  EventStatus = "ongoing"
	EventPrevious EventStatus = "previous"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

type RecruitmentStatus string

const (
	RecruitmentOpen   RecruitmentStatus = "open"
	RecruitmentClosed RecruitmentStatus = "closed"
)

type RecruitmentRole string

const (
	RecruitVolunteer   RecruitmentRole = "volunteer"
	RecruitAnchor      RecruitmentRole = "anchor"
	RecruitCoordinator RecruitmentRole = "coordinator"
	RecruitTechnical   RecruitmentRole = "technical"
	RecruitOther       RecruitmentRole = "other"
)

type ApplicantStatus string

const (
	ApplicantApplied  ApplicantStatus = "applied"
	ApplicantSelected ApplicantStatus = "selected"
	ApplicantRejected ApplicantStatus = "rejected"
)

// Main Models

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Role         UserRole  `json:"role"`
	Branch       *string   `json:"branch"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Event struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Venue       string      `json:"venue"`
	Branch      string      `json:"branch"`
	Status      EventStatus `json:"status"`
	Image       string      `json:"image"`
	CreatedBy   int64       `json:"created_by"`
	Volunteers  []int64     `json:"volunteers"`
	CreatedAt   time.Time   `json:"created_at"`
}

type EventRequest struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Date          time.Time     `json:"date"`
	Venue         string        `json:"venue"`
	Branch        string        `json:"branch"`
	RequestedBy   int64         `json:"requested_by"`
	Status        RequestStatus `json:"status"`
	ReviewComment string        `json:"review_comment"`
	ReviewedBy    *int64        `json:"reviewed_by"`
	EventID       *int64        `json:"event_id"`
	CreatedAt     time.Time     `json:"created_at"`

	// Enriched fields for responses
	RequestedByName   string    `json:"requested_by_name,omitempty"`
	RequestedByEmail  string    `json:"requested_by_email,omitempty"`
	RequestedByBranch *string   `json:"requested_by_branch,omitempty"`
	ReviewedByName    *string   `json:"reviewed_by_name,omitempty"`
	ReviewedByRole    *UserRole `json:"reviewed_by_role,omitempty"`
}

type Recruitment struct {
	ID          int64             `json:"id"`
	EventID     int64             `json:"event_id"`
	Title       string            `json:"title"`
	RoleType    RecruitmentRole   `json:"role_type"`
	Description string            `json:"description"`
	Branch      string            `json:"branch"`
	CreatedBy   int64             `json:"created_by"`
	Status      RecruitmentStatus `json:"status"`
	Applicants  []Applicant       `json:"applicants"`
	CreatedAt   time.Time         `json:"created_at"`

	// Enriched fields for responses
	EventTitle    string  `json:"event_title,omitempty"`
	CreatedByName *string `json:"created_by_name,omitempty"`
}

type Applicant struct {
	Student   int64           `json:"student"`
	Note      string          `json:"note"`
	Status    ApplicantStatus `json:"status"`
	AppliedAt time.Time       `json:"applied_at"`
}

// ApplicantDetail is an applicant with the student identity resolved.
type ApplicantDetail struct {
	Student   ApplicantStudent `json:"student"`
	Note      string           `json:"note"`
	Status    ApplicantStatus  `json:"status"`
	AppliedAt time.Time        `json:"applied_at"`
}

type ApplicantStudent struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Branch *string `json:"branch"`
}

type Announcement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Branch    string    `json:"branch"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Enriched fields for responses
	CreatedByName *string   `json:"created_by_name,omitempty"`
	CreatedByRole *UserRole `json:"created_by_role,omitempty"`
}

// Request DTOs (Data Transfer Objects)

type RegisterRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     *UserRole `json:"role"`
	Phone    *string   `json:"phone"`
	Branch   *string   `json:"branch"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type UpdateUserRoleRequest struct {
	Role UserRole `json:"role"`
}

type UpdateUserBranchRequest struct {
	Branch *string `json:"branch"`
}

type CreateEventRequestBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Venue       string     `json:"venue"`
	Branch      *string    `json:"branch"`
}

type ReviewRequestBody struct {
	ReviewComment *string `json:"review_comment"`
}

type CreateEventBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Venue       string     `json:"venue"`
	Branch      *string    `json:"branch"`
	Image       *string    `json:"image"`
}

type UpdateEventBody struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Date        *time.Time   `json:"date"`
	Venue       *string      `json:"venue"`
	Branch      *string      `json:"branch"`
	Status      *EventStatus `json:"status"`
	Image       *string      `json:"image"`
}

type CreateAnnouncementBody struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Branch  *string `json:"branch"`
}

type UpdateAnnouncementBody struct {
	Title   *string `json:"title"`
	Message *string `json:"message"`
	Branch  *string `json:"branch"`
}

type CreateRecruitmentBody struct {
	EventID     *int64           `json:"event_id"`
	Title       string           `json:"title"`
	RoleType    *RecruitmentRole `json:"role_type"`
	Description string           `json:"description"`
	Branch      *string          `json:"branch"`
}

type UpdateRecruitmentBody struct {
	Title       *string            `json:"title"`
	RoleType    *RecruitmentRole   `json:"role_type"`
	Description *string            `json:"description"`
	Branch      *string            `json:"branch"`
	Status      *RecruitmentStatus `json:"status"`
}

type ApplyRecruitmentBody struct {
	Note *string `json:"note"`
}

// ApplicantsResponse is the payload of GET /recruitments/:id/applicants.
type ApplicantsResponse struct {
	Recruitment RecruitmentSummary `json:"recruitment"`
	Applicants  []ApplicantDetail  `json:"applicants"`
}

type RecruitmentSummary struct {
	ID       int64             `json:"id"`
	Title    string            `json:"title"`
	RoleType RecruitmentRole   `json:"role_type"`
	Status   RecruitmentStatus `json:"status"`
}

// ApproveResponse is the payload of PATCH /event-requests/:id/approve.
type ApproveResponse struct {
	Request      *EventRequest `json:"request"`
	CreatedEvent *Event        `json:"createdEvent"`
}
