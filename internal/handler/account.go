package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"electronics-store/internal/dto"
	"electronics-store/internal/middleware"
	"electronics-store/internal/service"
)

type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func (h *AccountHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if _, err := h.accountService.Register(ctx, &req); err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, nil)
}

func (h *AccountHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	// RealIP takes the first forwarded-for entry when a proxy set one,
	// otherwise the direct peer address.
	result, err := h.accountService.Authenticate(ctx,
		req.Login, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"token": result.Token})
}

func (h *AccountHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.accountService.Logout(ctx, middleware.UserID(c), middleware.SessionKey(c))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, nil)
}

func (h *AccountHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.accountService.GetProfile(ctx, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"user": user})
}

func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.accountService.UpdateProfile(ctx, middleware.UserID(c), &req); err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, nil)
}

func (h *AccountHandler) Sessions(c echo.Context) error {
	ctx := c.Request().Context()

	sessions, err := h.accountService.ActiveSessions(ctx, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"sessions": sessions})
}
