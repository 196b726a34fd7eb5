package users

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"campus-events-backend/api"
	"campus-events-backend/middleware"
	"campus-events-backend/models"
	"campus-events-backend/store"
)

// Register mounts profile routes under /users.
func Register(g fiber.Router, authn fiber.Handler) {
	g.Get("/me", authn, me())
}

// RegisterAdmin mounts user management routes under /admin/users.
func RegisterAdmin(g fiber.Router, st store.Store, authn fiber.Handler, requireAdmin fiber.Handler) {
	g.Use(authn, requireAdmin)
	g.Get("/", list(st))
	g.Get("/:id", get(st))
	g.Patch("/:id/role", updateRole(st))
	g.Patch("/:id/branch", updateBranch(st))
	g.Delete("/:id", del(st))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, api.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	return id, nil
}

// ---------- GET /users/me ----------
func me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}
		return api.Success(c, fiber.StatusOK, "User profile fetched successfully", user)
	}
}

// ---------- GET /admin/users ----------
func list(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := st.ListUsers(c.Context())
		if err != nil {
			return err
		}
		return api.Success(c, fiber.StatusOK, "Users fetched successfully", users)
	}
}

// ---------- GET /admin/users/:id ----------
func get(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		user, err := st.UserByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "User not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "User fetched successfully", user)
	}
}

// ---------- PATCH /admin/users/:id/role ----------
func updateRole(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var b models.UpdateUserRoleRequest
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}
		if !models.ValidRole(b.Role) {
			return api.NewError(fiber.StatusBadRequest, "Invalid role value")
		}
		user, err := st.UpdateUserRole(c.Context(), id, b.Role)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "User not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "User role updated successfully", user)
	}
}

// ---------- PATCH /admin/users/:id/branch ----------
func updateBranch(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var b models.UpdateUserBranchRequest
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}
		user, err := st.UpdateUserBranch(c.Context(), id, b.Branch)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "User not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "User branch updated successfully", user)
	}
}

// ---------- DELETE /admin/users/:id ----------
func del(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		user, err := st.DeleteUser(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusNotFound, "User not found")
			}
			return err
		}
		return api.Success(c, fiber.StatusOK, "User deleted successfully",
			fiber.Map{"name": user.Name})
	}
}
