package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

const defaultTokenTTL = 2 * time.Hour

// sessionClaims is the wire form of domain.SessionClaim: sub/iat/exp come
// from the registered claims, the rest are private claims.
type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and validates HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// TTL reports the configured token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(claim domain.SessionClaim) (string, domain.SessionClaim, error) {
	// JWT numeric dates have second precision; truncate so the returned claim
	// matches what Validate will decode.
	issuedAt := s.now().UTC().Truncate(time.Second)
	claim.IssuedAt = issuedAt
	claim.ExpiresAt = issuedAt.Add(s.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Name:  claim.Name,
		Email: claim.Email,
		Role:  claim.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.Subject,
			IssuedAt:  jwt.NewNumericDate(claim.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claim.ExpiresAt),
		},
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", domain.SessionClaim{}, err
	}
	return signed, claim, nil
}

// Validate verifies the signature and expiry of token. A token is expired
// from the exact second of its exp claim onwards.
func (s *TokenService) Validate(token string) (*domain.SessionClaim, error) {
	if token == "" {
		return nil, domain.ErrTokenMalformed
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.SessionClaim{
		Subject:   claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.UTC(),
		ExpiresAt: claims.ExpiresAt.UTC(),
	}, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenMalformed
	}
}
