package ports

import "time"

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs identity tokens for an account id.
type TokenIssuer interface {
	Issue(accountID string) (string, error)
}

// TokenVerifier checks a token and returns the account id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// TokenClaims is the decoded payload of a valid token.
type TokenClaims struct {
	AccountID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
