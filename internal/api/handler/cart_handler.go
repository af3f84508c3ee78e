package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

// CartHandler serves /cart. Every route sits behind the Auth middleware.
type CartHandler struct {
	carts ports.CartService
}

func NewCartHandler(carts ports.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get returns the caller's cart.
//
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	lines, err := h.carts.GetCart(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: lines})
}

// Add increments a product's quantity in the cart.
//
// @Summary      Add item to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Product and quantity (default 1)"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	lines, err := h.carts.AddItem(c.Request().Context(), username, *req.ProductID, qty)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: lines})
}

// Replace overwrites the cart. Lines with a non-positive qty are dropped;
// unknown products yield 404.
//
// @Summary      Replace cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      replaceCartRequest  true  "Full list of cart lines"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart [put]
func (h *CartHandler) Replace(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req replaceCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lines := make([]domain.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, domain.CartLine{ProductID: *item.ProductID, Quantity: item.Qty})
	}

	stored, err := h.carts.ReplaceCart(c.Request().Context(), username, lines)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: stored})
}

// Clear empties the cart.
//
// @Summary      Clear cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	lines, err := h.carts.ClearCart(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: lines})
}
