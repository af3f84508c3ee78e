package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
	"github.com/aCoruja/TechSecurityWebsite/internal/pkg/metrics"
)

// AuthOptions tunes login behaviour.
type AuthOptions struct {
	// RequireClient makes clientID mandatory on login. When false a supplied
	// clientID is still checked.
	RequireClient bool
}

// AuthService implements client authentication, registration and login.
type AuthService struct {
	users   ports.UserRepository
	carts   ports.CartRepository
	clients ports.ClientStore
	hasher  ports.PasswordHasher
	tokens  ports.TokenService
	opts    AuthOptions
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	carts ports.CartRepository,
	clients ports.ClientStore,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		carts:   carts,
		clients: clients,
		hasher:  hasher,
		tokens:  tokens,
		opts:    opts,
		log:     log,
	}
}

func (s *AuthService) AuthenticateClient(ctx context.Context, clientID, clientSecret string) (*domain.ClientCredential, error) {
	if clientID == "" || clientSecret == "" {
		return nil, domain.ErrMissingField
	}

	client, ok := s.clients.FindClient(ctx, clientID)
	if !ok || subtle.ConstantTimeCompare([]byte(client.ClientSecret), []byte(clientSecret)) != 1 {
		metrics.ClientAuthTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.ClientAuthTotal.WithLabelValues("ok").Inc()
	return &client, nil
}

func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return nil, domain.ErrMissingField
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if _, err := s.carts.Update(ctx, created.Username, func([]domain.CartLine) ([]domain.CartLine, error) {
		return []domain.CartLine{}, nil
	}); err != nil {
		// The cart is created lazily on first access anyway.
		s.log.Warn().Err(err).Str("username", created.Username).Msg("failed to initialise cart")
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("username", created.Username).Str("password_scheme", s.hasher.Scheme()).Msg("user registered")
	return created, nil
}

// Login authenticates a user and issues a session token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	// Register stores the trimmed name, so lookups must trim too.
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if in.ClientID == "" && s.opts.RequireClient {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if in.ClientID != "" {
		if _, ok := s.clients.FindClient(ctx, in.ClientID); !ok {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		}
	}

	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Verify(user.PasswordHash, in.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, claim, err := s.tokens.Issue(domain.SessionClaim{
		Subject: user.Username,
		Name:    user.Username,
		Email:   user.Email,
		Role:    user.Role,
	})
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return &ports.LoginResult{Token: token, ExpiresAt: claim.ExpiresAt, User: user}, nil
}
