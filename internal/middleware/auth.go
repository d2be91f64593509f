package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"electronics-store/internal/auth"
	"electronics-store/internal/repository"
)

const (
	ContextUserID     = "user_id"
	ContextSessionKey = "session_key"
)

// RequireSession validates the bearer session token and stores the user id
// and session key on the request context.
func RequireSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			session, err := auth.ParseToken(secret, tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(ContextUserID, session.UserID)
			c.Set(ContextSessionKey, session.SessionKey)
			return next(c)
		}
	}
}

// RequireStaff only passes requests whose authenticated user is staff.
// It must be chained after RequireSession.
func RequireStaff(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(ContextUserID).(uint)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || !user.IsStaff {
				return echo.NewHTTPError(http.StatusNotFound, "not found")
			}

			return next(c)
		}
	}
}

// UserID reads the authenticated user id placed by RequireSession.
func UserID(c echo.Context) uint {
	userID, _ := c.Get(ContextUserID).(uint)
	return userID
}

// SessionKey reads the session key placed by RequireSession.
func SessionKey(c echo.Context) string {
	sessionKey, _ := c.Get(ContextSessionKey).(string)
	return sessionKey
}
