package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"electronics-store/internal/dto"
	"electronics-store/internal/middleware"
	"electronics-store/internal/service"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CartAddRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.ProductID == 0 {
		return badRequest(c, "product_id is required")
	}

	qty, err := h.cartService.Add(ctx,
		middleware.SessionKey(c), middleware.UserID(c), req.ProductID, req.Delta)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"qty": qty})
}

func (h *CartHandler) View(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.cartService.View(ctx, middleware.SessionKey(c), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"items": view.Items, "total": view.Total})
}
