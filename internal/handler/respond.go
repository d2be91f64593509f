package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"electronics-store/internal/service"
)

// ok wraps a success payload in the {ok:true} envelope.
func ok(c echo.Context, status int, fields echo.Map) error {
	payload := echo.Map{"ok": true}
	for k, v := range fields {
		payload[k] = v
	}
	return c.JSON(status, payload)
}

// fail maps service errors onto the {ok:false} envelope. Field-keyed
// validation maps come back under "errors", everything else under "error".
func fail(c echo.Context, err error) error {
	var validation service.ValidationErrors
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "errors": validation})
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"ok":     false,
			"errors": echo.Map{"auth": service.ErrInvalidCredentials.Error()},
		})
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "error": err.Error()})
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrNoAvailableProducts),
		errors.Is(err, service.ErrNothingPurchasable),
		errors.Is(err, service.ErrNotDeletable),
		errors.Is(err, service.ErrCategoryInUse):
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": err.Error()})
	}

	log.Println("internal error:", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "error": "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": msg})
}
