package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"campus-events-backend/api"
	"campus-events-backend/middleware"
	"campus-events-backend/models"
	"campus-events-backend/store"
)

var (
	emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// Register mounts auth routes under /auth.
func Register(g fiber.Router, st store.Store) {
	g.Post("/register", register(st))
	g.Post("/login", login(st))
}

// BcryptHash hashes a plain text password.
func BcryptHash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password cannot be empty")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// BcryptVerify compares a hashed password with a plain text password.
func BcryptVerify(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ---------- POST /auth/register ----------
func register(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var b models.RegisterRequest
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}

		name := strings.TrimSpace(b.Name)
		email := strings.ToLower(strings.TrimSpace(b.Email))
		if name == "" || email == "" || b.Password == "" {
			return api.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}
		if !emailRe.MatchString(email) {
			return api.NewError(fiber.StatusBadRequest, "Please provide a valid email")
		}
		if len(b.Password) < 6 {
			return api.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters")
		}
		if b.Phone != nil && !phoneRe.MatchString(*b.Phone) {
			return api.NewError(fiber.StatusBadRequest, "Phone must be 10 digits")
		}

		role := models.UserRoleStudent
		if b.Role != nil {
			if !models.ValidRole(*b.Role) {
				return api.NewError(fiber.StatusBadRequest, "Invalid role value")
			}
			role = *b.Role
		}

		hash, err := BcryptHash(b.Password)
		if err != nil {
			return err
		}

		user := &models.User{
			Name:         name,
			Email:        email,
			Phone:        b.Phone,
			Role:         role,
			Branch:       b.Branch,
			PasswordHash: hash,
		}
		if err := st.CreateUser(c.Context(), user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				return api.NewError(fiber.StatusBadRequest, "User with this email already exists")
			}
			return err
		}

		token, err := middleware.BuildAccessToken(user, middleware.TokenTTL())
		if err != nil {
			return err
		}
		return api.Success(c, fiber.StatusCreated, "User registered successfully",
			models.AuthResponse{User: user, Token: token})
	}
}

// ---------- POST /auth/login ----------
func login(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var b models.LoginRequest
		if err := c.BodyParser(&b); err != nil {
			return api.NewError(fiber.StatusBadRequest, "Bad JSON")
		}
		email := strings.ToLower(strings.TrimSpace(b.Email))
		if email == "" || b.Password == "" {
			return api.NewError(fiber.StatusBadRequest, "Please enter email and password")
		}

		user, err := st.UserByEmail(c.Context(), email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.NewError(fiber.StatusBadRequest, "Invalid email or password")
			}
			return err
		}
		if !BcryptVerify(user.PasswordHash, b.Password) {
			return api.NewError(fiber.StatusBadRequest, "Invalid email or password")
		}

		token, err := middleware.BuildAccessToken(user, middleware.TokenTTL())
		if err != nil {
			return err
		}
		return api.Success(c, fiber.StatusOK, "Login successful",
			models.AuthResponse{User: user, Token: token})
	}
}
