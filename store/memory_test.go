package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-events-backend/models"
	"campus-events-backend/store"
)

func seedRequest(t *testing.T, st *store.Memory, branch string) *models.EventRequest {
	t.Helper()
	req := &models.EventRequest{
		Title:       "Tech Talk",
		Description: "An afternoon of lightning talks",
		Date:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Venue:       "Hall A",
		Branch:      branch,
		RequestedBy: 42,
	}
	require.NoError(t, st.CreateRequest(context.Background(), req))
	return req
}

func TestApproveRequestCreatesEventAndFinalizes(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	req := seedRequest(t, st, "CS")

	updated, event, err := st.ApproveRequest(ctx, req.ID, 7, "looks good")
	require.NoError(t, err)

	assert.Equal(t, models.RequestApproved, updated.Status)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, int64(7), *updated.ReviewedBy)
	assert.Equal(t, "looks good", updated.ReviewComment)
	require.NotNil(t, updated.EventID)
	assert.Equal(t, event.ID, *updated.EventID)

	// The event copies the request fields at approval time.
	assert.Equal(t, req.Title, event.Title)
	assert.Equal(t, req.Description, event.Description)
	assert.Equal(t, req.Date, event.Date)
	assert.Equal(t, req.Venue, event.Venue)
	assert.Equal(t, "CS", event.Branch)
	assert.Equal(t, int64(7), event.CreatedBy)
	assert.Equal(t, models.EventUpcoming, event.Status)
}

func TestTerminalStatesAreFinal(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	approved := seedRequest(t, st, "all")
	_, _, err := st.ApproveRequest(ctx, approved.ID, 7, "")
	require.NoError(t, err)

	_, _, err = st.ApproveRequest(ctx, approved.ID, 8, "")
	assert.ErrorIs(t, err, store.ErrNotPending)
	_, err = st.RejectRequest(ctx, approved.ID, 8, "")
	assert.ErrorIs(t, err, store.ErrNotPending)

	rejected := seedRequest(t, st, "all")
	_, err = st.RejectRequest(ctx, rejected.ID, 7, "not this term")
	require.NoError(t, err)

	_, _, err = st.ApproveRequest(ctx, rejected.ID, 8, "")
	assert.ErrorIs(t, err, store.ErrNotPending)

	// Rejection never touches the event reference.
	got, err := st.RequestByID(ctx, rejected.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EventID)
}

func TestConcurrentApproveSingleWinner(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	req := seedRequest(t, st, "CS")

	const reviewers = 8
	var wg sync.WaitGroup
	errs := make([]error, reviewers)
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = st.ApproveRequest(ctx, req.ID, int64(100+i), "")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, store.ErrNotPending)
		}
	}
	assert.Equal(t, 1, wins)

	events, err := st.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestAddApplicantDedupAndClosed(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	ev := &models.Event{Title: "Fest", Description: "d", Date: time.Now(), Venue: "Quad", Branch: "all", CreatedBy: 1}
	require.NoError(t, st.CreateEvent(ctx, ev))
	rec := &models.Recruitment{EventID: ev.ID, Title: "Anchors", RoleType: models.RecruitAnchor, Description: "d", Branch: "all", CreatedBy: 1}
	require.NoError(t, st.CreateRecruitment(ctx, rec))

	got, err := st.AddApplicant(ctx, rec.ID, models.Applicant{Student: 5, Note: "have experience", Status: models.ApplicantApplied})
	require.NoError(t, err)
	assert.Len(t, got.Applicants, 1)

	_, err = st.AddApplicant(ctx, rec.ID, models.Applicant{Student: 5, Status: models.ApplicantApplied})
	assert.ErrorIs(t, err, store.ErrAlreadyApplied)

	got, err = st.RecruitmentByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Len(t, got.Applicants, 1)

	closed := models.RecruitmentClosed
	_, err = st.UpdateRecruitment(ctx, rec.ID, &models.UpdateRecruitmentBody{Status: &closed})
	require.NoError(t, err)

	_, err = st.AddApplicant(ctx, rec.ID, models.Applicant{Student: 6, Status: models.ApplicantApplied})
	assert.ErrorIs(t, err, store.ErrRecruitmentClosed)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	u := &models.User{Name: "A", Email: "a@example.com", PasswordHash: "x", Role: models.UserRoleStudent}
	require.NoError(t, st.CreateUser(ctx, u))

	dup := &models.User{Name: "B", Email: "A@Example.com", PasswordHash: "x", Role: models.UserRoleStudent}
	assert.ErrorIs(t, st.CreateUser(ctx, dup), store.ErrDuplicateEmail)
}
