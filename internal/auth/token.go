package auth

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: expired, tampered,
// malformed, wrong key. Callers get one answer so the response never
// reveals which check failed.
var ErrInvalidToken = errors.New("expired or invalid token")

// Claims is the token payload: the registered claim set plus the
// subject user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// TokenIssuer mints and verifies signed, time-limited bearer tokens.
// Tokens are stateless: never persisted, never revoked; validity is
// solely a function of the signature and the expiry claim.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// TokenConfigFromEnv reads the signing secret and token lifetime.
// TOKEN_EXPIRES_IN_HOURS is interpreted as hours everywhere a token is
// issued; registration and login share the same lifetime.
func TokenConfigFromEnv() ([]byte, time.Duration) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "insecure-dev-secret"
	}
	hours := 24
	if v := os.Getenv("TOKEN_EXPIRES_IN_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}
	return []byte(secret), time.Duration(hours) * time.Hour
}

// Issue signs a token carrying userID that expires ttl from now.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks the signature and expiry and returns the embedded
// user id.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
