// Package auth issues and verifies the bearer tokens that protect the
// vault API. Tokens are stateless HS256 JWTs; no session state is kept
// server-side.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by an access token: the registered
// claims plus the account identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Identity is the verified caller identity extracted from a token. It is
// the only claim data handed to downstream authorization checks.
type Identity struct {
	UserID string
	Email  string
}

// GenerateToken signs a token binding the account id and email, valid for
// validityDuration from now.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetIdentityFromToken verifies the signature and expiry of tokenString and
// returns the embedded identity. A malformed, forged or expired token
// yields an error; callers are expected to fold every failure mode into a
// single unauthorized response.
func GetIdentityFromToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return Identity{}, err
	}

	if !token.Valid {
		return Identity{}, fmt.Errorf("invalid token")
	}

	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
