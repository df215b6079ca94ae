package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrUnexpectedSigningMethod = errors.New("unexpected signing method")

// TokenManager issues and verifies HS256 bearer tokens whose subject is the
// acting user id. Issuing exists for the admin CLI and tests; login lives elsewhere.
type TokenManager struct {
	secretKey []byte
	issuer    string
}

func NewTokenManager(secretKey, issuer string) *TokenManager {
	return &TokenManager{secretKey: []byte(secretKey), issuer: issuer}
}

// GenerateToken signs a token for userID valid for ttl
func (m *TokenManager) GenerateToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    m.issuer,
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, expiry and issuer and returns the claims
func (m *TokenManager) VerifyToken(tokenString string) (*JWTClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%s: %w", token.Method.Alg(), ErrUnexpectedSigningMethod)
		}
		return m.secretKey, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}

	return &JWTClaims{UserUUID: claims.Subject, TokenID: claims.ID}, nil
}
