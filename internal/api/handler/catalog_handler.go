package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns the full product catalog.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.ListProducts(c.Request().Context()))
}
