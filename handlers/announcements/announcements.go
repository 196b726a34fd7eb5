package announcements

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"campus-events-backend/api"
	"campus-events-backend/middleware"
	"campus-events-backend/models"
	"campus-events-backend/store"
)

// Register mounts announcement routes under /announcements.
func Register(g fiber.Router, st store.Store, authn, requireStaff, requireAdmin fiber.Handler) {
	// Public reads
	g.Get("/", list(st))
	g.Get("/:id", get(st))

	// Faculty/admin writes, admin delete
	g.Post("/", authn, requireStaff, create(st))
	g.Put("/:id", authn, requireStaff, update(st))
	g.Delete("/:id", authn, requireAdmin, del(st))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, api.NewError(fiber.StatusBadRequest, "Invalid announcement id")
	}
	return id, nil
}

// ---------- POST /announcements ----------
func create(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}
		var b models.CreateAnnouncementBody
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}
		if b.Title == "" || b.Message == "" {
			return api.ValidationError("Title and message are required", fiber.Map{
				"title":   b.Title == "",
				"message": b.Message == "",
			})
		}

		branch := "all"
		if b.Branch != nil && *b.Branch != "" {
			branch = *b.Branch
		}

		a := &models.Announcement{
			Title:     b.Title,
			Message:   b.Message,
			Branch:    branch,
			CreatedBy: user.ID,
		}
		if err := st.CreateAnnouncement(c.Context(), a); err != nil {
			return err
		}
		return api.Success(c, fiber.StatusCreated, "Announcement created successfully", a)
	}
}

// ---------- GET /announcements ----------
func list(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := st.ListAnnouncements(c.Context())
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return api.Success(c, fiber.StatusOK, "No announcements right now", out)
		}
		return api.Success(c, fiber.StatusOK, "Announcements fetched successfully", out)
	}
}

// ---------- GET /announcements/:id ----------
func get(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		a, err := st.AnnouncementByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Announcement not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Announcement fetched successfully", a)
	}
}

// ---------- PUT /announcements/:id ----------
func update(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var b models.UpdateAnnouncementBody
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}
		if b.Title == nil && b.Message == nil && b.Branch == nil {
			return api.NewError(fiber.StatusBadRequest, "No fields to update")
		}
		a, err := st.UpdateAnnouncement(c.Context(), id, &b)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Announcement not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Announcement updated successfully", a)
	}
}

// ---------- DELETE /announcements/:id ----------
func del(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := st.DeleteAnnouncement(c.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Announcement not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Announcement deleted successfully", nil)
	}
}
