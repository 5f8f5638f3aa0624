package auth

import (
	"time"

	"github.com/golang-jwt/jwt"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/security"
)

// DefaultTokenDuration is how long an issued session token stays valid
const DefaultTokenDuration = 60 * time.Minute

type accessTokenClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.StandardClaims
}

// JWTManager signs and verifies HS256 session tokens
type JWTManager struct {
	secret       []byte
	duration     time.Duration
	timeProvider core.TimeProvider
}

func NewJWTManager(secret string, duration time.Duration, timeProvider core.TimeProvider) *JWTManager {
	if duration <= 0 {
		duration = DefaultTokenDuration
	}
	return &JWTManager{
		secret:       []byte(secret),
		duration:     duration,
		timeProvider: timeProvider,
	}
}

func (m *JWTManager) Generate(userID uint64) (string, error) {
	now := m.timeProvider.Now()
	claims := &accessTokenClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) Validate(tokenString string) (uint64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrUnauthorized
		}
		return m.secret, nil
	})
	if err != nil {
		// Expired and malformed tokens both read as unauthorized; the API
		// never distinguishes them.
		return 0, errs.ErrUnauthorized
	}

	claims, ok := token.Claims.(*accessTokenClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, errs.ErrUnauthorized
	}
	return claims.UserID, nil
}

var _ security.TokenManager = (*JWTManager)(nil)
