package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
)

// URLClaims binds a signed-URL token to a single object path.
type URLClaims struct {
	jwt.RegisteredClaims
	Path string
}

// GenerateURLToken signs a token granting read access to the object at path
// for validityDuration.
func GenerateURLToken(path string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, URLClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Path: path,
	})
	return token.SignedString(secretKey)
}

// GetPathFromURLToken verifies a signed-URL token and returns the object
// path it grants. Expired tokens map to common.ErrTokenExpired.
func GetPathFromURLToken(tokenString string, secretKey []byte) (string, error) {
	claims := &URLClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid || claims.Path == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Path, nil
}
