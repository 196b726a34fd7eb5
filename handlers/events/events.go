package events

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"campus-events-backend/api"
	"campus-events-backend/middleware"
	"campus-events-backend/models"
	"campus-events-backend/store"
)

// Register mounts event routes under /events.
func Register(g fiber.Router, st store.Store, authn, requireStaff, requireAdmin, requireStudent fiber.Handler) {
	// Public reads
	g.Get("/", list(st))
	g.Get("/:id", get(st))

	// Student volunteer sign-up
	g.Post("/:id/volunteers", authn, requireStudent, addVolunteer(st))

	// Faculty/admin writes
	g.Post("/", authn, requireStaff, create(st))
	g.Put("/:id", authn, requireStaff, update(st))
	g.Delete("/:id", authn, requireAdmin, del(st))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, api.NewError(fiber.StatusBadRequest, "Invalid event id")
	}
	return id, nil
}

// ---------- POST /events ----------
func create(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}
		var b models.CreateEventBody
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

		branch := "all"
		if b.Branch != nil && *b.Branch != "" {
			branch = *b.Branch
		}
		image := ""
		if b.Image != nil {
			image = *b.Image
		}

		event := &models.Event{
			Title:       b.Title,
			Description: b.Description,
			Date:        *b.Date,
			Venue:       b.Venue,
			Branch:      branch,
			Image:       image,
			CreatedBy:   user.ID,
		}
		if err := st.CreateEvent(c.Context(), event); err != nil {
			return err
		}
		return api.Success(c, fiber.StatusCreated, "Event created successfully", event)
	}
}

// ---------- GET /events ----------
func list(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := st.ListEvents(c.Context())
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return api.Success(c, fiber.StatusOK, "No events right now", events)
		}
		return api.Success(c, fiber.StatusOK, "Events fetched successfully", events)
	}
}

// ---------- GET /events/:id ----------
func get(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		event, err := st.EventByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Event not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Event fetched successfully", event)
	}
}

// ---------- PUT /events/:id ----------
func update(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var b models.UpdateEventBody
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}
		if b.Title == nil && b.Description == nil && b.Date == nil && b.Venue == nil &&
			b.Branch == nil && b.Status == nil && b.Image == nil {
			return api.NewError(fiber.StatusBadRequest, "No fields to update")
		}
		if b.Status != nil {
			switch *b.Status {
			case models.EventUpcoming, models.EventOngoing, models.EventPrevious:
			default:
				return api.NewError(fiber.StatusBadRequest, "Invalid status value")
			}
		}
		event, err := st.UpdateEvent(c.Context(), id, &b)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Event not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Event updated successfully", event)
	}
}

// ---------- DELETE /events/:id ----------
func del(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := st.DeleteEvent(c.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "Event not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Event deleted successfully", nil)
	}
}

// ---------- POST /events/:id/volunteers ----------
func addVolunteer(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return err
		}
		event, err := st.AddVolunteer(c.Context(), id, user.ID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				return api.NewError(fiber.StatusNotFound, "Event not found")
			case errors.Is(err, store.ErrAlreadyVolunteer):
				return api.NewError(fiber.StatusConflict, "Already registered as a volunteer for this event")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "Registered as volunteer successfully", event)
	}
}
