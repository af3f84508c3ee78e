package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

type CheckoutHandler struct {
	checkout ports.CheckoutService
}

func NewCheckoutHandler(checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout turns the caller's cart into an order and empties the cart.
//
// @Summary      Checkout
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  orderResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	order, err := h.checkout.Checkout(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse{Order: order})
}
