package requests

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"campus-events-backend/api"
	"campus-events-backend/authz"
	"campus-events-backend/middleware"
	"campus-events-backend/models"
	"campus-events-backend/store"
)

// Register mounts event-request routes under /event-requests.
func Register(g fiber.Router, st store.Store, authn, requireStudent, requireStaff fiber.Handler) {
	g.Post("/", authn, requireStudent, create(st))
	g.Get("/my", authn, requireStudent, listMine(st))
	g.Get("/", authn, requireStaff, listAll(st))
	g.Get("/:id", authn, requireStaff, get(st))
	g.Patch("/:id/approve", authn, requireStaff, approve(st))
	g.Patch("/:id/reject", authn, requireStaff, reject(st))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, api.NewError(fiber.StatusBadRequest, "Invalid event request id")
	}
	return id, nil
}

// ---------- POST /event-requests ----------
func create(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}
		var b models.CreateEventRequestBody
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}
		if b.Title == "" || b.Description == "" || b.Date == nil || b.Venue == "" {
			return api.ValidationError("title, description, date and venue are required", fiber.Map{
				"title":       b.Title == "",
				"description": b.Description == "",
				"date":        b.Date == nil,
				"venue":       b.Venue == "",
			})
		}

		// Branch resolution: explicit value, then the student's own branch,
		// then college-wide.
		branch := "all"
		switch {
		case b.Branch != nil && *b.Branch != "":
			branch = *b.Branch
		case user.Branch != nil:
			branch = *user.Branch
		}

		req := &models.EventRequest{
			Title:       b.Title,
			Description: b.Description,
			Date:        *b.Date,
			Venue:       b.Venue,
			Branch:      branch,
			RequestedBy: user.ID,
		}
		if err := st.CreateRequest(c.Context(), req); err != nil {
			return err
		}
		return api.Success(c, fiber.StatusCreated, "Event request submitted successfully", req)
	}
}

// ---------- GET /event-requests/my ----------
func listMine(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}
		out, err := st.RequestsByStudent(c.Context(), user.ID)
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return api.Success(c, fiber.StatusOK, "You have not submitted any event requests yet", out)
		}
		return api.Success(c, fiber.StatusOK, "Your event requests fetched successfully", out)
	}
}

// ---------- GET /event-requests?status= ----------
func listAll(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}

		filter := store.RequestFilter{Scope: authz.ScopeFor(user)}
		switch status := c.Query("status"); status {
		case "", "all":
			// no status filter
		case string(models.RequestPending), string(models.RequestApproved), string(models.RequestRejected):
			filter.Status = models.RequestStatus(status)
		default:
			return api.NewError(fiber.StatusBadRequest, "Invalid status filter")
		}

		out, err := st.ListRequests(c.Context(), filter)
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return api.Success(c, fiber.StatusOK, "No event requests found", out)
		}
		return api.Success(c, fiber.StatusOK, "Event requests fetched successfully", out)
	}
}

// ---------- GET /event-requests/:id ----------
func get(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		req, err := st.RequestByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Event request not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Event request fetched successfully", req)
	}
}

// reviewGate runs the shared approve/reject checks and returns the pending
// request. alreadyApproved/alreadyRejected carry the action-specific wording.
func reviewGate(c *fiber.Ctx, st store.Store, verb, alreadyApproved, alreadyRejected string) (*models.EventRequest, *models.User, string, error) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return nil, nil, "", err
	}
	id, err := parseID(c)
	if err != nil {
		return nil, nil, "", err
	}

	req, err := st.RequestByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, "", api.NewError(fiber.StatusNotFound, "Event request not found")
		}
		return nil, nil, "", err
	}

	if !authz.CanReviewBranch(user, req.Branch) {
		return nil, nil, "", api.NewError(fiber.StatusForbidden,
			"You can only "+verb+" requests for your own branch")
	}
	switch req.Status {
	case models.RequestApproved:
		return nil, nil, "", api.NewError(fiber.StatusBadRequest, alreadyApproved)
	case models.RequestRejected:
		return nil, nil, "", api.NewError(fiber.StatusBadRequest, alreadyRejected)
	}

	var b models.ReviewRequestBody
	// Review comment is optional; an empty body is fine.
	_ = c.BodyParser(&b)
	comment := ""
	if b.ReviewComment != nil {
		comment = *b.ReviewComment
	}
	return req, user, comment, nil
}

// ---------- PATCH /event-requests/:id/approve ----------
func approve(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, user, comment, err := reviewGate(c, st, "approve",
			"Request is already approved",
			"Request is already rejected")
		if err != nil {
			return err
		}

		updated, event, err := st.ApproveRequest(c.Context(), req.ID, user.ID, comment)
		if err != nil {
			if errors.Is(err, store.ErrNotPending) {
				// A concurrent review finished between the gate and the
				// conditional update.
				return api.NewError(fiber.StatusBadRequest, "Request is no longer pending")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Event request approved and event created",
			models.ApproveResponse{Request: updated, CreatedEvent: event})
	}
}

// ---------- PATCH /event-requests/:id/reject ----------
func reject(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, user, comment, err := reviewGate(c, st, "reject",
			"Request is already approved, cannot reject now",
			"Request is already rejected")
		if err != nil {
			return err
		}

		updated, err := st.RejectRequest(c.Context(), req.ID, user.ID, comment)
		if err != nil {
			if errors.Is(err, store.ErrNotPending) {
				return api.NewError(fiber.StatusBadRequest, "Request is no longer pending")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Event request rejected successfully", updated)
	}
}
