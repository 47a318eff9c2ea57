package jwt

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobreviews/pkg/auth"
)

const identityKey = "identity"

// Verifier decodes a bearer token into an identity.
type Verifier interface {
	Verify(token string) (auth.Identity, error)
}

// NewAuthMiddleware returns a Fiber middleware that requires "Authorization: Bearer <token>".
// A missing or malformed header is 401, a token that fails verification is 403.
// On success the identity is stored in c.Locals and read back with IdentityFrom.
func NewAuthMiddleware(v Verifier, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "access token required"})
		}
		id, err := v.Verify(tokenStr)
		if err != nil {
			log.DebugContext(c.UserContext(), "token rejected",
				"path", c.Path(),
				"reason", reason(err),
				"error", err,
			)
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		c.Locals(identityKey, id)
		return c.Next()
	}
}

// IdentityFrom returns the identity attached by the auth middleware, or nil.
func IdentityFrom(c *fiber.Ctx) *auth.Identity {
	id, ok := c.Locals(identityKey).(auth.Identity)
	if !ok {
		return nil
	}
	return &id
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenSignature):
		return "signature"
	default:
		return "malformed"
	}
}
