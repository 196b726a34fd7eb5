package middleware

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"campus-events-backend/models"
	"campus-events-backend/store"
)

// Claims structure for JWT
type Claims struct {
	Sub  int64           `json:"sub"`
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

const localsUserKey = "user"

// Authenticate validates the bearer token and re-resolves the user from the
// store on every call, so role/branch changes and deletions take effect
// immediately instead of waiting for token expiry.
func Authenticate(users store.UserStore) fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET not configured")
		}
	}

	return func(c *fiber.Ctx) error {
		h := c.Get("Authorization")
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "No token provided, authorization denied")
		}
		tkn, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !tkn.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}
		cls := tkn.Claims.(*Claims)

		user, err := users.UserByID(c.Context(), cls.Sub)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "User not found, authorization denied")
			}
			return err
		}
		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// RequireRole allows only users with one of the given roles. Must run after
// Authenticate.
func RequireRole(roles ...models.UserRole) fiber.Handler {
	allowed := map[models.UserRole]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(localsUserKey).(*models.User)
		if !ok || user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}
		if _, ok := allowed[user.Role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Access denied: insufficient permissions")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user placed by Authenticate.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(localsUserKey).(*models.User)
	if !ok || user == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
	}
	return user, nil
}

// BuildAccessToken builds a signed JWT for the user.
func BuildAccessToken(u *models.User, ttl time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET environment variable is not set")
	}

	now := time.Now()
	claims := &Claims{
		Sub:  u.ID,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// TokenTTL reads the access-token lifetime from JWT_TTL, defaulting to 7 days.
func TokenTTL() time.Duration {
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 7 * 24 * time.Hour
}
