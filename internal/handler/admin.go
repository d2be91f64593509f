package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"electronics-store/internal/dto"
	"electronics-store/internal/service"
)

type AdminHandler struct {
	adminService   service.AdminService
	catalogService service.CatalogService
}

func NewAdminHandler(adminService service.AdminService, catalogService service.CatalogService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		catalogService: catalogService,
	}
}

func (h *AdminHandler) BulkConfirm(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BulkOrdersRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.OrderIDs) == 0 {
		return badRequest(c, "order_ids is required")
	}

	result, err := h.adminService.BulkConfirm(ctx, req.OrderIDs)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"updated": result.Updated, "skipped": result.Skipped})
}

func (h *AdminHandler) BulkCancel(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BulkOrdersRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.OrderIDs) == 0 {
		return badRequest(c, "order_ids is required")
	}

	result, err := h.adminService.BulkCancel(ctx, req.OrderIDs, req.Reason)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"updated": result.Updated, "skipped": result.Skipped})
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	category, err := h.catalogService.CreateCategory(ctx, &req)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusCreated, echo.Map{"category": category})
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.catalogService.DeleteCategory(ctx, c.Param("slug")); err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, nil)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	product, err := h.catalogService.CreateProduct(ctx, &req)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusCreated, echo.Map{"product": product})
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || productID == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	product, err := h.catalogService.UpdateProduct(ctx, uint(productID), &req)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"product": product})
}
