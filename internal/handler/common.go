// Package handler exposes the HTTP handlers of the booking API.  Every
// error body is a JSON object with a "message" field.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Health is a simple health‑check endpoint used by load balancers and
// monitoring systems.  It returns a plain text "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// internalError logs err at the boundary and answers 500 with its text.
func internalError(c echo.Context, err error) error {
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return message(c, http.StatusInternalServerError, err.Error())
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// queryID parses an optional numeric query parameter.  present is false
// when the parameter is absent or empty.
func queryID(c echo.Context, name string) (id uint64, present bool, err error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseUint(raw, 10, 64)
	return id, true, err
}
