package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const tokenIssuer = "nouvel-ayiti"

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenProvider issues and verifies HS256 bearer tokens.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
	users  storage.UserStore
	now    func() time.Time
}

func NewTokenProvider(secret string, ttl time.Duration, users storage.UserStore) *TokenProvider {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &TokenProvider{secret: []byte(secret), ttl: ttl, users: users, now: time.Now}
}

func (p *TokenProvider) Issue(user *domain.User) (string, error) {
	now := p.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (p *TokenProvider) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Identify ignores requests without a bearer token. Invalid tokens are
// treated as anonymous so the admin gate answers 401.
func (p *TokenProvider) Identify(r *http.Request) (*Identity, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, nil
	}

	claims, err := p.Parse(raw)
	if err != nil {
		return nil, nil
	}
	return lookup(r.Context(), p.users, claims.UserID)
}
