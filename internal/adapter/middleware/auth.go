package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	callerIDKey    = "auth.caller_id"
	callerTokenKey = "auth.token"
)

// The fixed 401 body. Emitted uniformly for every way a protected request
// can fail to authenticate; callers learn nothing about the cause.
const unauthenticatedMessage = "Unauthenticated. Please log in to access this resource."

// Authenticator resolves request credentials to a stable user id.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (uint64, error)
}

// Auth guards protected routes. Identity is resolved once here and handed
// to handlers via the echo context; nothing downstream touches the token.
func Auth(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request())
			if !ok {
				return unauthenticated(c)
			}
			userID, err := a.Authenticate(c.Request().Context(), raw)
			if err != nil {
				return unauthenticated(c)
			}
			WithCaller(c, userID, raw)
			return next(c)
		}
	}
}

// WithCaller stamps an authenticated caller onto the request context. Auth
// is the only production caller; handler tests use it to fake identity.
func WithCaller(c echo.Context, userID uint64, token string) {
	c.Set(callerIDKey, userID)
	c.Set(callerTokenKey, token)
}

// CallerID returns the authenticated user id set by Auth; zero when the
// route is not behind the middleware.
func CallerID(c echo.Context) uint64 {
	if v, ok := c.Get(callerIDKey).(uint64); ok {
		return v
	}
	return 0
}

// CallerToken returns the raw bearer token set by Auth.
func CallerToken(c echo.Context) string {
	v, _ := c.Get(callerTokenKey).(string)
	return v
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"status":  "error",
		"message": unauthenticatedMessage,
		"data":    nil,
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}
