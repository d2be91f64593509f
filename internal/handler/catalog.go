package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"electronics-store/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"categories": categories})
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	inStockOnly := c.QueryParam("in_stock") == "1"
	products, err := h.catalogService.ListProducts(ctx,
		c.QueryParam("category"), c.QueryParam("sort"), inStockOnly)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"products": products})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogService.GetProduct(ctx, c.Param("slug"))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{"product": product})
}
