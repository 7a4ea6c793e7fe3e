// Package identity extracts the caller id that the gateway (or a direct
// caller) supplies on every request.
package identity

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Header carries the caller's identity.
const Header = "X-Sharer-User-Id"

const ctxKey = "caller_id"

// Require parses the identity header and stores the caller id in the
// request context; requests without a usable id are rejected.
func Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(Header)
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"message": "missing or invalid " + Header + " header",
				})
			}
			c.Set(ctxKey, id)
			return next(c)
		}
	}
}

// CallerID returns the identity set by Require, or 0.
func CallerID(c echo.Context) int64 {
	id, _ := c.Get(ctxKey).(int64)
	return id
}
