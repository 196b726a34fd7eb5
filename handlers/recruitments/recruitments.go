package recruitments

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"campus-events-backend/api"
	"campus-events-backend/middleware"
	"campus-events-backend/models"
	"campus-events-backend/store"
)

// Register mounts recruitment routes under /recruitments.
func Register(g fiber.Router, st store.Store, authn, requireStudent, requireStaff, requireAdmin fiber.Handler) {
	// Public reads
	g.Get("/", list(st))

	// Student application
	g.Post("/:id/apply", authn, requireStudent, apply(st))

	// Faculty/admin
	g.Get("/:id/applicants", authn, requireStaff, applicants(st))
	g.Post("/", authn, requireStaff, create(st))
	g.Put("/:id", authn, requireStaff, update(st))
	g.Delete("/:id", authn, requireAdmin, del(st))

	// Parameter route last so the static paths above win.
	g.Get("/:id", get(st))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, api.NewError(fiber.StatusBadRequest, "Invalid recruitment id")
	}
	return id, nil
}

func validRoleType(r models.RecruitmentRole) bool {
	switch r {
	case models.RecruitVolunteer, models.RecruitAnchor, models.RecruitCoordinator,
		models.RecruitTechnical, models.RecruitOther:
		return true
	}
	return false
}

// ---------- POST /recruitments ----------
func create(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}
		var b models.CreateRecruitmentBody
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}
		if b.Title == "" || b.Description == "" || b.EventID == nil {
			return api.ValidationError("title, description and event_id are required", fiber.Map{
				"title":       b.Title == "",
				"description": b.Description == "",
				"event_id":    b.EventID == nil,
			})
		}
		if *b.EventID <= 0 {
			return api.NewError(fiber.StatusBadRequest, "Invalid event_id format")
		}

		roleType := models.RecruitVolunteer
		if b.RoleType != nil {
			if !validRoleType(*b.RoleType) {
				return api.NewError(fiber.StatusBadRequest, "Invalid role_type value")
			}
			roleType = *b.RoleType
		}
		branch := "all"
		if b.Branch != nil && *b.Branch != "" {
			branch = *b.Branch
		}

		// Recruitments must hang off an existing event.
		if _, err := st.EventByID(c.Context(), *b.EventID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Event not found")
			}
			return err
		}

		rec := &models.Recruitment{
			EventID:     *b.EventID,
			Title:       b.Title,
			RoleType:    roleType,
			Description: b.Description,
			Branch:      branch,
			CreatedBy:   user.ID,
		}
		if err := st.CreateRecruitment(c.Context(), rec); err != nil {
			return err
		}
		return api.Success(c, fiber.StatusCreated, "Recruitment created successfully", rec)
	}
}

// ---------- GET /recruitments?status=all ----------
func list(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		openOnly := c.Query("status") != "all"
		out, err := st.ListRecruitments(c.Context(), openOnly)
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return api.Success(c, fiber.StatusOK, "No recruitment posts right now", out)
		}
		return api.Success(c, fiber.StatusOK, "Recruitments fetched successfully", out)
	}
}

// ---------- GET /recruitments/:id ----------
func get(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		rec, err := st.RecruitmentByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Recruitment not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Recruitment fetched successfully", rec)
	}
}

// ---------- POST /recruitments/:id/apply ----------
func apply(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var b models.ApplyRecruitmentBody
		_ = c.BodyParser(&b)
		note := ""
		if b.Note != nil {
			note = *b.Note
		}

		rec, err := st.AddApplicant(c.Context(), id, models.Applicant{
			Student: user.ID,
			Note:    note,
			Status:  models.ApplicantApplied,
		})
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				return api.NewError(fiber.StatusNotFound, "Recruitment not found")
			case errors.Is(err, store.ErrRecruitmentClosed):
				return api.NewError(fiber.StatusBadRequest, "Recruitment is closed")
			case errors.Is(err, store.ErrAlreadyApplied):
				return api.NewError(fiber.StatusBadRequest, "You have already applied")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Applied successfully", rec)
	}
}

// ---------- GET /recruitments/:id/applicants ----------
func applicants(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		rec, details, err := st.Applicants(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Recruitment not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Applicants fetched successfully",
			models.ApplicantsResponse{
				Recruitment: models.RecruitmentSummary{
					ID:       rec.ID,
					Title:    rec.Title,
					RoleType: rec.RoleType,
					Status:   rec.Status,
				},
				Applicants: details,
			})
	}
}

// ---------- PUT /recruitments/:id ----------
func update(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var b models.UpdateRecruitmentBody
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}
		if b.Title == nil && b.RoleType == nil && b.Description == nil &&
			b.Branch == nil && b.Status == nil {
			return api.NewError(fiber.StatusBadRequest, "No fields to update")
		}
		if b.RoleType != nil && !validRoleType(*b.RoleType) {
			return api.NewError(fiber.StatusBadRequest, "Invalid role_type value")
		}
		if b.Status != nil && *b.Status != models.RecruitmentOpen && *b.Status != models.RecruitmentClosed {
			return api.NewError(fiber.StatusBadRequest, "Invalid status value")
		}
		rec, err := st.UpdateRecruitment(c.Context(), id, &b)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Recruitment not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Recruitment updated successfully", rec)
	}
}

// ---------- DELETE /recruitments/:id ----------
func del(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := st.DeleteRecruitment(c.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Recruitment not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Recruitment deleted successfully", nil)
	}
}
