package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olzhasbek/qazcargo/internal/apperr"
)

// writeError maps a typed service error to an HTTP response. Validation,
// not-found, conflict and authentication messages are surfaced verbatim;
// store failures are logged and replaced with a generic body so clients
// never see persistence detail.
func writeError(c echo.Context, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case apperr.KindAuth:
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": err.Error()})
	case apperr.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case apperr.KindConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	default:
		c.Logger().Errorf("store error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
