package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"electronics-store/internal/dto"
	"electronics-store/internal/middleware"
	"electronics-store/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func orderIDFromPath(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	return uint(id), nil
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.orderService.Checkout(ctx,
		middleware.UserID(c), middleware.SessionKey(c), req.Password)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"order_id": result.OrderID,
		"total":    result.Total,
	})
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListForUser(ctx, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"orders": orders})
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := orderIDFromPath(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.GetForUser(ctx, orderID, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"order": order})
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := orderIDFromPath(c)
	if err != nil {
		return err
	}

	if err := h.orderService.Delete(ctx, orderID, middleware.UserID(c)); err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, nil)
}
