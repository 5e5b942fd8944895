package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken is returned for any token that fails signature, structure,
// expiry or scope checks. Callers treat every failure the same way, so the
// error deliberately carries no detail about which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

const scopePasswordReset = "password_reset"

// Claims is the JWT payload issued by TokenService.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed HS256 bearer tokens. Tokens are
// stateless and self-contained: there is no revocation list, expiry is the
// only lifecycle boundary.
type TokenService struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	resetTTL  time.Duration
}

// NewTokenService builds a TokenService around a process-wide secret.
func NewTokenService(secret, issuer string, accessTTL, resetTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 720 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &TokenService{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		resetTTL:  resetTTL,
	}
}

// Issue creates an access token for the given subject using the default TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.accessTTL)
}

// IssueWithTTL creates an access token with a per-call TTL override.
func (s *TokenService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.accessTTL
	}
	return s.sign(subject, "", ttl)
}

// Validate checks signature, structure and expiry and returns the subject.
// Password-reset tokens are rejected here: they carry a scope claim and must
// not double as access tokens.
func (s *TokenService) Validate(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Scope != "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// IssuePasswordReset creates a short-lived scoped token used to authorize a
// password reset for the given email.
func (s *TokenService) IssuePasswordReset(email string) (string, error) {
	return s.sign(email, scopePasswordReset, s.resetTTL)
}

// ValidatePasswordReset verifies a password-reset token and returns the email
// it was issued for.
func (s *TokenService) ValidatePasswordReset(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Scope != scopePasswordReset {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *TokenService) sign(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
