package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

// DefaultTokenTTL is the token lifetime used when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

type accountClaims struct {
	AccountID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens. The secret is fixed
// for the lifetime of the process.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for accountID that expires after the configured TTL.
func (s *TokenService) Issue(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("issue token: empty account id")
	}

	now := s.now()
	claims := accountClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Parse validates signature, structure and expiry and returns the decoded claims.
// Every failure is reported as domain.ErrInvalidToken.
func (s *TokenService) Parse(token string) (*ports.TokenClaims, error) {
	var claims accountClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.AccountID == "" {
		return nil, domain.ErrInvalidToken
	}

	out := &ports.TokenClaims{AccountID: claims.AccountID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Verify returns the account id bound to token.
func (s *TokenService) Verify(token string) (string, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.AccountID, nil
}
