package middleware

// identity.go holds the context keys set by Identity and the accessors
// shared by handlers and the rate limiter.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// UserID returns the signed-in user's id, if the request carried a valid
// token.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(userIDKey).(uint64)
	return id, ok
}

// Username returns the signed-in user's name, or "" for guests.
func Username(c echo.Context) string {
	s, _ := c.Get(usernameKey).(string)
	return s
}

// userKey identifies the caller in rate limit keys: the user id for
// signed-in callers and "guest" otherwise.
func userKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "guest"
}
