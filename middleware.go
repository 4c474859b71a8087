package calendarx

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CredentialsDetail is the uniform body every gate rejection carries. The
// caller cannot tell which validation step failed.
const CredentialsDetail = "Could not validate credentials"

// Protected returns the session gate middleware. Per request it extracts
// the bearer token, validates it, coerces the subject into a numeric id,
// and resolves the identity against the store. Success injects the user
// into fiber locals and the request context; every failure exits through
// the same 401.
//
// The gate is a pure function of (token, store state, clock): no state is
// cached across requests.
func Protected(auther Authenticator, cfg Config, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}

	contextKey := cfg.GetContextKey()
	if contextKey == "" {
		contextKey = "current_user"
	}

	authScheme := cfg.GetAuthScheme()
	if authScheme == "" {
		authScheme = "Bearer"
	}

	return func(c *fiber.Ctx) error {
		raw, err := tokenFromHeader(c.Get(fiber.HeaderAuthorization), authScheme)
		if err != nil {
			return Unauthorized(c)
		}

		session, err := auther.SessionFromToken(raw)
		if err != nil {
			logger.Debug("session gate token validation failed", "error", err)
			return Unauthorized(c)
		}

		user, err := auther.IdentityFromSession(c.UserContext(), session)
		if err != nil {
			logger.Debug("session gate identity resolution failed", "error", err)
			return Unauthorized(c)
		}

		c.Locals(contextKey, user)
		c.SetUserContext(WithContext(c.UserContext(), user))

		return c.Next()
	}
}

// Unauthorized writes the uniform gate rejection: a 401 with a bearer
// challenge and a body that does not reveal which check failed.
func Unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": CredentialsDetail,
	})
}

// CurrentUser pulls the authenticated user the gate stored in locals
func CurrentUser(c *fiber.Ctx, key string) (*User, bool) {
	if key == "" {
		key = "current_user"
	}
	user, ok := c.Locals(key).(*User)
	return user, ok
}

// tokenFromHeader extracts the raw token from an Authorization header
// value. A missing header and a malformed scheme are the same failure.
func tokenFromHeader(header, authScheme string) (string, error) {
	l := len(authScheme)
	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		return strings.TrimSpace(header[l:]), nil
	}
	return "", ErrUnableToDecodeSession
}
