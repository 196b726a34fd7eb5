package store

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campus-events-backend/models"
)

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// ---------- users ----------

func (p *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	err := p.pool.QueryRow(ctx, `
		INSERT INTO users(name, email, phone, password_hash, role, branch)
		VALUES ($1, $2, $3, $4, $5::user_role, $6)
		RETURNING id, created_at
	`, u.Name, u.Email, u.Phone, u.PasswordHash, string(u.Role), u.Branch).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

const userCols = `id, name, email, phone, password_hash, role::text, branch, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &role, &u.Branch, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Role = models.UserRole(role)
	return &u, nil
}

func (p *Postgres) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE lower(email)=lower($1)`, email))
}

func (p *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &role, &u.Branch, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = models.UserRole(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (p *Postgres) UpdateUserRole(ctx context.Context, id int64, role models.UserRole) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx, `
		UPDATE users SET role=$2::user_role WHERE id=$1
		RETURNING `+userCols, id, string(role)))
}

func (p *Postgres) UpdateUserBranch(ctx context.Context, id int64, branch *string) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx, `
		UPDATE users SET branch=$2 WHERE id=$1
		RETURNING `+userCols, id, branch))
}

func (p *Postgres) DeleteUser(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx,
		`DELETE FROM users WHERE id=$1 RETURNING `+userCols, id))
}

// ---------- events ----------

func (p *Postgres) CreateEvent(ctx context.Context, e *models.Event) error {
	err := p.pool.QueryRow(ctx, `
		INSERT INTO events(title, description, date, venue, branch, image, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status::text, created_at
	`, e.Title, e.Description, e.Date, e.Venue, e.Branch, e.Image, e.CreatedBy).
		Scan(&e.ID, (*string)(&e.Status), &e.CreatedAt)
	if err != nil {
		return err
	}
	if e.Volunteers == nil {
		e.Volunteers = []int64{}
	}
	return nil
}

const eventQuery = `
	SELECT e.id, e.title, e.description, e.date, e.venue, e.branch,
	       e.status::text, e.image, e.created_by, e.created_at,
	       COALESCE(array_agg(v.user_id ORDER BY v.added_at) FILTER (WHERE v.user_id IS NOT NULL), '{}')
	FROM events e
	LEFT JOIN event_volunteers v ON v.event_id = e.id
`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var status string
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Venue, &e.Branch,
		&status, &e.Image, &e.CreatedBy, &e.CreatedAt, &e.Volunteers); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e.Status = models.EventStatus(status)
	return &e, nil
}

func (p *Postgres) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := p.pool.Query(ctx, eventQuery+` GROUP BY e.id ORDER BY e.date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (p *Postgres) EventByID(ctx context.Context, id int64) (*models.Event, error) {
	return scanEvent(p.pool.QueryRow(ctx, eventQuery+` WHERE e.id=$1 GROUP BY e.id`, id))
}

func (p *Postgres) UpdateEvent(ctx context.Context, id int64, b *models.UpdateEventBody) (*models.Event, error) {
	sets := []string{}
	args := []any{id}
	i := 2
	add := func(col string, v any) {
		sets = append(sets, col+"=$"+strconv.Itoa(i))
		args = append(args, v)
		i++
	}
	if b.Title != nil {
		add("title", *b.Title)
	}
	if b.Description != nil {
		add("description", *b.Description)
	}
	if b.Date != nil {
		add("date", *b.Date)
	}
	if b.Venue != nil {
		add("venue", *b.Venue)
	}
	if b.Branch != nil {
		add("branch", *b.Branch)
	}
	if b.Status != nil {
		sets = append(sets, "status=$"+strconv.Itoa(i)+"::event_status")
		args = append(args, string(*b.Status))
		i++
	}
	if b.Image != nil {
		add("image", *b.Image)
	}

	cmd, err := p.pool.Exec(ctx,
		`UPDATE events SET `+strings.Join(sets, ", ")+` WHERE id=$1`, args...)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.EventByID(ctx, id)
}

func (p *Postgres) DeleteEvent(ctx context.Context, id int64) error {
	cmd, err := p.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) AddVolunteer(ctx context.Context, eventID, studentID int64) (*models.Event, error) {
	cmd, err := p.pool.Exec(ctx, `
		INSERT INTO event_volunteers(event_id, user_id)
		SELECT $1, $2 WHERE EXISTS (SELECT 1 FROM events WHERE id=$1)
	`, eventID, studentID)
	if err != nil {
		if strings.Contains(err.Error(), "event_volunteers_event_id_user_id_key") {
			return nil, ErrAlreadyVolunteer
		}
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.EventByID(ctx, eventID)
}

// ---------- announcements ----------

func (p *Postgres) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	return p.pool.QueryRow(ctx, `
		INSERT INTO announcements(title, message, branch, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.Title, a.Message, a.Branch, a.CreatedBy).Scan(&a.ID, &a.CreatedAt)
}

const announcementQuery = `
	SELECT a.id, a.title, a.message, a.branch, a.created_by, a.created_at,
	       u.name, u.role::text
	FROM announcements a
	LEFT JOIN users u ON u.id = a.created_by
`

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var a models.Announcement
	var role *string
	if err := row.Scan(&a.ID, &a.Title, &a.Message, &a.Branch, &a.CreatedBy, &a.CreatedAt,
		&a.CreatedByName, &role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role != nil {
		r := models.UserRole(*role)
		a.CreatedByRole = &r
	}
	return &a, nil
}

func (p *Postgres) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	rows, err := p.pool.Query(ctx, announcementQuery+` ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (p *Postgres) AnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	return scanAnnouncement(p.pool.QueryRow(ctx, announcementQuery+` WHERE a.id=$1`, id))
}

func (p *Postgres) UpdateAnnouncement(ctx context.Context, id int64, b *models.UpdateAnnouncementBody) (*models.Announcement, error) {
	sets := []string{}
	args := []any{id}
	i := 2
	add := func(col string, v any) {
		sets = append(sets, col+"=$"+strconv.Itoa(i))
		args = append(args, v)
		i++
	}
	if b.Title != nil {
		add("title", *b.Title)
	}
	if b.Message != nil {
		add("message", *b.Message)
	}
	if b.Branch != nil {
		add("branch", *b.Branch)
	}

	cmd, err := p.pool.Exec(ctx,
		`UPDATE announcements SET `+strings.Join(sets, ", ")+` WHERE id=$1`, args...)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.AnnouncementByID(ctx, id)
}

func (p *Postgres) DeleteAnnouncement(ctx context.Context, id int64) error {
	cmd, err := p.pool.Exec(ctx, `DELETE FROM announcements WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------- event requests ----------

func (p *Postgres) CreateRequest(ctx context.Context, r *models.EventRequest) error {
	err := p.pool.QueryRow(ctx, `
		INSERT INTO event_requests(title, description, date, venue, branch, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status::text, review_comment, created_at
	`, r.Title, r.Description, r.Date, r.Venue, r.Branch, r.RequestedBy).
		Scan(&r.ID, (*string)(&r.Status), &r.ReviewComment, &r.CreatedAt)
	return err
}

const requestQuery = `
	SELECT r.id, r.title, r.description, r.date, r.venue, r.branch,
	       r.requested_by, r.status::text, r.review_comment, r.reviewed_by,
	       r.event_id, r.created_at,
	       COALESCE(ru.name, ''), COALESCE(ru.email, ''), ru.branch,
	       rv.name, rv.role::text
	FROM event_requests r
	LEFT JOIN users ru ON ru.id = r.requested_by
	LEFT JOIN users rv ON rv.id = r.reviewed_by
`

func scanRequest(row pgx.Row) (*models.EventRequest, error) {
	var r models.EventRequest
	var status string
	var reviewerRole *string
	if err := row.Scan(&r.ID, &r.Title, &r.Description, &r.Date, &r.Venue, &r.Branch,
		&r.RequestedBy, &status, &r.ReviewComment, &r.ReviewedBy,
		&r.EventID, &r.CreatedAt,
		&r.RequestedByName, &r.RequestedByEmail, &r.RequestedByBranch,
		&r.ReviewedByName, &reviewerRole); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.Status = models.RequestStatus(status)
	if reviewerRole != nil {
		role := models.UserRole(*reviewerRole)
		r.ReviewedByRole = &role
	}
	return &r, nil
}

func (p *Postgres) RequestByID(ctx context.Context, id int64) (*models.EventRequest, error) {
	return scanRequest(p.pool.QueryRow(ctx, requestQuery+` WHERE r.id=$1`, id))
}

func (p *Postgres) requestRows(ctx context.Context, where string, args ...any) ([]models.EventRequest, error) {
	rows, err := p.pool.Query(ctx, requestQuery+where+` ORDER BY r.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.EventRequest{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (p *Postgres) RequestsByStudent(ctx context.Context, studentID int64) ([]models.EventRequest, error) {
	return p.requestRows(ctx, ` WHERE r.requested_by=$1`, studentID)
}

func (p *Postgres) ListRequests(ctx context.Context, f RequestFilter) ([]models.EventRequest, error) {
	if f.Scope.None {
		return []models.EventRequest{}, nil
	}
	where := []string{}
	args := []any{}
	if !f.Scope.All {
		args = append(args, f.Scope.Branch)
		where = append(where, "r.branch=$"+strconv.Itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, "r.status=$"+strconv.Itoa(len(args))+"::request_status")
	}
	clause := ""
	if len(where) > 0 {
		clause = ` WHERE ` + strings.Join(where, " AND ")
	}
	return p.requestRows(ctx, clause, args...)
}

// classifyNotPending decides between ErrNotFound and ErrNotPending after a
// conditional update claimed zero rows.
func classifyNotPending(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, id int64) error {
	var status string
	err := q.QueryRow(ctx, `SELECT status::text FROM event_requests WHERE id=$1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrNotPending
}

func (p *Postgres) ApproveRequest(ctx context.Context, id, reviewerID int64, comment string) (*models.EventRequest, *models.Event, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	// Claim the request; the status predicate is the concurrency guard.
	ev := &models.Event{CreatedBy: reviewerID, Volunteers: []int64{}}
	err = tx.QueryRow(ctx, `
		UPDATE event_requests
		SET status='approved', reviewed_by=$2, review_comment=$3
		WHERE id=$1 AND status='pending'
		RETURNING title, description, date, venue, branch
	`, id, reviewerID, comment).
		Scan(&ev.Title, &ev.Description, &ev.Date, &ev.Venue, &ev.Branch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, classifyNotPending(ctx, tx, id)
		}
		return nil, nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO events(title, description, date, venue, branch, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status::text, image, created_at
	`, ev.Title, ev.Description, ev.Date, ev.Venue, ev.Branch, reviewerID).
		Scan(&ev.ID, (*string)(&ev.Status), &ev.Image, &ev.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE event_requests SET event_id=$2 WHERE id=$1`, id, ev.ID); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	req, err := p.RequestByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return req, ev, nil
}

func (p *Postgres) RejectRequest(ctx context.Context, id, reviewerID int64, comment string) (*models.EventRequest, error) {
	cmd, err := p.pool.Exec(ctx, `
		UPDATE event_requests
		SET status='rejected', reviewed_by=$2, review_comment=$3
		WHERE id=$1 AND status='pending'
	`, id, reviewerID, comment)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, classifyNotPending(ctx, p.pool, id)
	}
	return p.RequestByID(ctx, id)
}

// ---------- recruitments ----------

func (p *Postgres) CreateRecruitment(ctx context.Context, r *models.Recruitment) error {
	err := p.pool.QueryRow(ctx, `
		INSERT INTO recruitments(event_id, title, role_type, description, branch, created_by)
		VALUES ($1, $2, $3::recruitment_role, $4, $5, $6)
		RETURNING id, status::text, created_at
	`, r.EventID, r.Title, string(r.RoleType), r.Description, r.Branch, r.CreatedBy).
		Scan(&r.ID, (*string)(&r.Status), &r.CreatedAt)
	if err != nil {
		return err
	}
	r.Applicants = []models.Applicant{}
	return nil
}

const recruitmentQuery = `
	SELECT r.id, r.event_id, r.title, r.role_type::text, r.description, r.branch,
	       r.created_by, r.status::text, r.created_at,
	       COALESCE(e.title, ''), u.name
	FROM recruitments r
	LEFT JOIN events e ON e.id = r.event_id
	LEFT JOIN users u ON u.id = r.created_by
`

func scanRecruitment(row pgx.Row) (*models.Recruitment, error) {
	var r models.Recruitment
	var roleType, status string
	if err := row.Scan(&r.ID, &r.EventID, &r.Title, &roleType, &r.Description, &r.Branch,
		&r.CreatedBy, &status, &r.CreatedAt, &r.EventTitle, &r.CreatedByName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.RoleType = models.RecruitmentRole(roleType)
	r.Status = models.RecruitmentStatus(status)
	r.Applicants = []models.Applicant{}
	return &r, nil
}

// attachApplicants loads applicant rows for each recruitment in rs, ordered
// by insertion.
func (p *Postgres) attachApplicants(ctx context.Context, rs []*models.Recruitment) error {
	if len(rs) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(rs))
	byID := map[int64]*models.Recruitment{}
	for _, r := range rs {
		ids = append(ids, r.ID)
		byID[r.ID] = r
	}

	rows, err := p.pool.Query(ctx, `
		SELECT recruitment_id, student_id, note, status::text, applied_at
		FROM recruitment_applicants
		WHERE recruitment_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rid int64
		var a models.Applicant
		var status string
		if err := rows.Scan(&rid, &a.Student, &a.Note, &status, &a.AppliedAt); err != nil {
			return err
		}
		a.Status = models.ApplicantStatus(status)
		if r := byID[rid]; r != nil {
			r.Applicants = append(r.Applicants, a)
		}
	}
	return rows.Err()
}

func (p *Postgres) ListRecruitments(ctx context.Context, openOnly bool) ([]models.Recruitment, error) {
	where := ""
	if openOnly {
		where = ` WHERE r.status='open'`
	}
	rows, err := p.pool.Query(ctx, recruitmentQuery+where+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ptrs := []*models.Recruitment{}
	for rows.Next() {
		r, err := scanRecruitment(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := p.attachApplicants(ctx, ptrs); err != nil {
		return nil, err
	}
	out := make([]models.Recruitment, 0, len(ptrs))
	for _, r := range ptrs {
		out = append(out, *r)
	}
	return out, nil
}

func (p *Postgres) RecruitmentByID(ctx context.Context, id int64) (*models.Recruitment, error) {
	r, err := scanRecruitment(p.pool.QueryRow(ctx, recruitmentQuery+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, err
	}
	if err := p.attachApplicants(ctx, []*models.Recruitment{r}); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *Postgres) UpdateRecruitment(ctx context.Context, id int64, b *models.UpdateRecruitmentBody) (*models.Recruitment, error) {
	sets := []string{}
	args := []any{id}
	i := 2
	if b.Title != nil {
		sets = append(sets, "title=$"+strconv.Itoa(i))
		args = append(args, *b.Title)
		i++
	}
	if b.RoleType != nil {
		sets = append(sets, "role_type=$"+strconv.Itoa(i)+"::recruitment_role")
		args = append(args, string(*b.RoleType))
		i++
	}
	if b.Description != nil {
		sets = append(sets, "description=$"+strconv.Itoa(i))
		args = append(args, *b.Description)
		i++
	}
	if b.Branch != nil {
		sets = append(sets, "branch=$"+strconv.Itoa(i))
		args = append(args, *b.Branch)
		i++
	}
	if b.Status != nil {
		sets = append(sets, "status=$"+strconv.Itoa(i)+"::recruitment_status")
		args = append(args, string(*b.Status))
		i++
	}

	cmd, err := p.pool.Exec(ctx,
		`UPDATE recruitments SET `+strings.Join(sets, ", ")+` WHERE id=$1`, args...)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.RecruitmentByID(ctx, id)
}

func (p *Postgres) DeleteRecruitment(ctx context.Context, id int64) error {
	cmd, err := p.pool.Exec(ctx, `DELETE FROM recruitments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) AddApplicant(ctx context.Context, recruitmentID int64, app models.Applicant) (*models.Recruitment, error) {
	// The open-status predicate and the unique constraint make this a
	// single atomic check-and-append.
	cmd, err := p.pool.Exec(ctx, `
		INSERT INTO recruitment_applicants(recruitment_id, student_id, note)
		SELECT $1, $2, $3
		WHERE EXISTS (SELECT 1 FROM recruitments WHERE id=$1 AND status='open')
	`, recruitmentID, app.Student, app.Note)
	if err != nil {
		if strings.Contains(err.Error(), "recruitment_applicants_recruitment_id_student_id_key") {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		var status string
		err := p.pool.QueryRow(ctx,
			`SELECT status::text FROM recruitments WHERE id=$1`, recruitmentID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrRecruitmentClosed
	}
	return p.RecruitmentByID(ctx, recruitmentID)
}

func (p *Postgres) Applicants(ctx context.Context, recruitmentID int64) (*models.Recruitment, []models.ApplicantDetail, error) {
	r, err := scanRecruitment(p.pool.QueryRow(ctx, recruitmentQuery+` WHERE r.id=$1`, recruitmentID))
	if err != nil {
		return nil, nil, err
	}

	rows, err := p.pool.Query(ctx, `
		SELECT a.student_id, COALESCE(u.name, ''), COALESCE(u.email, ''), u.branch,
		       a.note, a.status::text, a.applied_at
		FROM recruitment_applicants a
		LEFT JOIN users u ON u.id = a.student_id
		WHERE a.recruitment_id=$1
		ORDER BY a.id
	`, recruitmentID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	out := []models.ApplicantDetail{}
	for rows.Next() {
		var d models.ApplicantDetail
		var status string
		if err := rows.Scan(&d.Student.ID, &d.Student.Name, &d.Student.Email, &d.Student.Branch,
			&d.Note, &status, &d.AppliedAt); err != nil {
			return nil, nil, err
		}
		d.Status = models.ApplicantStatus(status)
		out = append(out, d)
	}
	return r, out, rows.Err()
}
