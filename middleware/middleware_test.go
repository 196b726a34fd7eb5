package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-events-backend/api"
	"campus-events-backend/middleware"
	"campus-events-backend/models"
	"campus-events-backend/store"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// newApp exposes one route per guard combination so each middleware path can
// be hit directly.
func newApp(t *testing.T) (*fiber.App, *store.Memory) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	st := store.NewMemory()
	app := fiber.New(fiber.Config{ErrorHandler: api.ErrorHandler})
	authn := middleware.Authenticate(st)

	app.Get("/whoami", authn, func(c *fiber.Ctx) error {
		user, err := middleware.CurrentUser(c)
		if err != nil {
			return err
		}
		return api.Success(c, fiber.StatusOK, "ok", fiber.Map{"id": user.ID, "role": user.Role})
	})
	app.Get("/staff-only", authn,
		middleware.RequireRole(models.UserRoleFaculty, models.UserRoleAdmin),
		func(c *fiber.Ctx) error { return api.Success(c, fiber.StatusOK, "ok", nil) })
	return app, st
}

func get(t *testing.T, app *fiber.App, path, bearer string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func seedUser(t *testing.T, st *store.Memory, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{Name: "Asha", Email: string(role) + "@example.com", Role: role, PasswordHash: "x"}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func TestAuthenticate(t *testing.T) {
	app, st := newApp(t)
	u := seedUser(t, st, models.UserRoleStudent)

	tok, err := middleware.BuildAccessToken(u, time.Hour)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		code, env := get(t, app, "/whoami", "Bearer "+tok)
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, env.Success)
	})

	t.Run("missing header", func(t *testing.T) {
		code, env := get(t, app, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "No token provided, authorization denied", env.Message)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		code, env := get(t, app, "/whoami", "Basic "+tok)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "No token provided, authorization denied", env.Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		code, env := get(t, app, "/whoami", "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Invalid or expired token", env.Message)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := middleware.BuildAccessToken(u, -time.Minute)
		require.NoError(t, err)
		code, env := get(t, app, "/whoami", "Bearer "+expired)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Invalid or expired token", env.Message)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost := seedUser(t, st, models.UserRoleFaculty)
		ghostTok, err := middleware.BuildAccessToken(ghost, time.Hour)
		require.NoError(t, err)
		_, err = st.DeleteUser(context.Background(), ghost.ID)
		require.NoError(t, err)

		code, env := get(t, app, "/whoami", "Bearer "+ghostTok)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "User not found, authorization denied", env.Message)
	})
}

func TestRequireRole(t *testing.T) {
	app, st := newApp(t)
	student := seedUser(t, st, models.UserRoleStudent)
	faculty := seedUser(t, st, models.UserRoleFaculty)

	studentTok, err := middleware.BuildAccessToken(student, time.Hour)
	require.NoError(t, err)
	facultyTok, err := middleware.BuildAccessToken(faculty, time.Hour)
	require.NoError(t, err)

	code, env := get(t, app, "/staff-only", "Bearer "+studentTok)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied: insufficient permissions", env.Message)

	code, _ = get(t, app, "/staff-only", "Bearer "+facultyTok)
	assert.Equal(t, http.StatusOK, code)
}

// Role changes are picked up on the next request because the user is
// re-resolved from the store, not read from the token.
func TestRoleChangeTakesEffectImmediately(t *testing.T) {
	app, st := newApp(t)
	u := seedUser(t, st, models.UserRoleStudent)
	tok, err := middleware.BuildAccessToken(u, time.Hour)
	require.NoError(t, err)

	code, _ := get(t, app, "/staff-only", "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, code)

	_, err = st.UpdateUserRole(context.Background(), u.ID, models.UserRoleFaculty)
	require.NoError(t, err)

	code, _ = get(t, app, "/staff-only", "Bearer "+tok)
	assert.Equal(t, http.StatusOK, code)
}

func TestTokenTTL(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	assert.Equal(t, 7*24*time.Hour, middleware.TokenTTL())

	t.Setenv("JWT_TTL", "12h")
	assert.Equal(t, 12*time.Hour, middleware.TokenTTL())

	t.Setenv("JWT_TTL", "soon")
	assert.Equal(t, 7*24*time.Hour, middleware.TokenTTL())
}
