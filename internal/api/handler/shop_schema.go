package handler

import (
	"time"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type clientAuthRequest struct {
	ClientID     string `json:"clientID"     validate:"required"`
	ClientSecret string `json:"clientSecret" validate:"required"`
}

type clientAuthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Client  string `json:"client"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	ClientID string `json:"clientID"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type validateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// tokenPayload mirrors the JWT claim set, with numeric iat/exp.
type tokenPayload struct {
	Sub   string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Iat   int64  `json:"iat"`
	Exp   int64  `json:"exp"`
}

type validateTokenResponse struct {
	Valid   bool         `json:"valid"`
	Payload tokenPayload `json:"payload"`
}

// --- Cart ---

type addItemRequest struct {
	ProductID *int `json:"product_id" validate:"required"`
	// Qty defaults to 1 when omitted.
	Qty *int `json:"qty" validate:"omitempty,min=1,max=9999"`
}

type cartLineRequest struct {
	ProductID *int `json:"product_id" validate:"required"`
	Qty       int  `json:"qty"`
}

type replaceCartRequest struct {
	Items []cartLineRequest `json:"items" validate:"required,dive"`
}

type cartResponse struct {
	Cart []domain.CartLine `json:"cart"`
}

// --- Checkout ---

type orderResponse struct {
	Order *domain.Order `json:"order"`
}
