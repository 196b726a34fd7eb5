package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-events-backend/api"
	"campus-events-backend/handlers/auth"
	"campus-events-backend/models"
	"campus-events-backend/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newApp(t *testing.T) (*fiber.App, *store.Memory) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	st := store.NewMemory()
	app := fiber.New(fiber.Config{ErrorHandler: api.ErrorHandler})
	auth.Register(app.Group("/api/auth"), st)
	return app, st
}

func post(t *testing.T, app *fiber.App, path string, body any) (int, envelope) {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.BcryptHash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, auth.BcryptVerify(hash, "secret123"))
	assert.False(t, auth.BcryptVerify(hash, "wrong"))

	_, err = auth.BcryptHash("")
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	app, _ := newApp(t)

	code, env := post(t, app, "/api/auth/register", fiber.Map{
		"name": "Asha", "email": "Asha@Example.com", "password": "secret123", "branch": "CS",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User registered successfully", env.Message)

	var out models.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotNil(t, out.User)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, models.UserRoleStudent, out.User.Role)
	// Emails are normalized to lowercase on the way in.
	assert.Equal(t, "asha@example.com", out.User.Email)

	t.Run("duplicate email regardless of case", func(t *testing.T) {
		code, env := post(t, app, "/api/auth/register", fiber.Map{
			"name": "Asha Again", "email": "ASHA@example.com", "password": "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "User with this email already exists", env.Message)
	})
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newApp(t)

	tests := []struct {
		name string
		body fiber.Map
		msg  string
	}{
		{"missing fields", fiber.Map{"email": "a@example.com"}, "Name, email and password are required"},
		{"bad email", fiber.Map{"name": "A", "email": "not-an-email", "password": "secret123"}, "Please provide a valid email"},
		{"short password", fiber.Map{"name": "A", "email": "a@example.com", "password": "abc"}, "Password must be at least 6 characters"},
		{"bad phone", fiber.Map{"name": "A", "email": "a@example.com", "password": "secret123", "phone": "12345"}, "Phone must be 10 digits"},
		{"bad role", fiber.Map{"name": "A", "email": "a@example.com", "password": "secret123", "role": "dean"}, "Invalid role value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := post(t, app, "/api/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.msg, env.Message)
		})
	}
}

func TestLogin(t *testing.T) {
	app, _ := newApp(t)

	code, _ := post(t, app, "/api/auth/register", fiber.Map{
		"name": "Asha", "email": "asha@example.com", "password": "secret123", "role": "faculty",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := post(t, app, "/api/auth/login", fiber.Map{
		"email": "Asha@Example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", env.Message)

	var out models.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, models.UserRoleFaculty, out.User.Role)

	t.Run("wrong password", func(t *testing.T) {
		code, env := post(t, app, "/api/auth/login", fiber.Map{
			"email": "asha@example.com", "password": "nope-nope",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid email or password", env.Message)
	})

	t.Run("unknown email gets the same message", func(t *testing.T) {
		code, env := post(t, app, "/api/auth/login", fiber.Map{
			"email": "ghost@example.com", "password": "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid email or password", env.Message)
	})

	t.Run("missing credentials", func(t *testing.T) {
		code, env := post(t, app, "/api/auth/login", fiber.Map{"email": "asha@example.com"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Please enter email and password", env.Message)
	})
}

func TestPasswordNeverSerialized(t *testing.T) {
	app, _ := newApp(t)

	_, env := post(t, app, "/api/auth/register", fiber.Map{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &raw))
	var user map[string]any
	require.NoError(t, json.Unmarshal(raw["user"], &user))
	_, exposed := user["password_hash"]
	assert.False(t, exposed)
	assert.NotContains(t, string(raw["user"]), "secret123")
}
