package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	tokens      ports.TokenService
}

func NewAuthHandler(authService ports.AuthService, tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

// AuthenticateClient checks an application's client id/secret pair.
//
// @Summary      Authenticate the calling application
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      clientAuthRequest  true  "Client credentials"
// @Success      200   {object}  clientAuthResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth [post]
func (h *AuthHandler) AuthenticateClient(c echo.Context) error {
	var req clientAuthRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, err := h.authService.AuthenticateClient(c.Request().Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clientAuthResponse{
		Status:  "ok",
		Message: "authenticated",
		Client:  client.Name,
	})
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "created"})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Username: req.Username,
		Password: req.Password,
		ClientID: req.ClientID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: result.Token, ExpiresAt: result.ExpiresAt})
}

// ValidateToken reports whether a token is currently valid and returns its claims.
//
// @Summary      Validate a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      validateTokenRequest  true  "Token to check"
// @Success      200   {object}  validateTokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /validate-token [post]
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	var req validateTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	claim, err := h.tokens.Validate(req.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, validateTokenResponse{
		Valid: true,
		Payload: tokenPayload{
			Sub:   claim.Subject,
			Name:  claim.Name,
			Email: claim.Email,
			Role:  claim.Role,
			Iat:   claim.IssuedAt.Unix(),
			Exp:   claim.ExpiresAt.Unix(),
		},
	})
}
