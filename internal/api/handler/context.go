package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ctxUser extracts the identity injected by the Auth middleware and performs
// a fast-fail check before any service call: a zero user id means the
// middleware did not run or the token carried no usable subject.
func ctxUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// pathID parses the :id route parameter. A malformed id is reported as
// not-found rather than a bad request so probing for valid ids reveals
// nothing.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "record not found")
	}
	return id, nil
}
