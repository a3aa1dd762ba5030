// Package auth signs and verifies the payment reference tokens that tie
// a provider checkout back to the account and product it was created for.
package auth

import (
	"time"

	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// PayRefClaims binds a checkout to its email and SKU. The webhook trusts
// nothing else in the provider callback.
type PayRefClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	SKU   string `json:"sku"`
}

// GeneratePayRef signs a payment reference valid for validity.
func GeneratePayRef(email, sku string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, PayRefClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Email: email,
		SKU:   sku,
	})

	return token.SignedString(secretKey)
}

// ParsePayRef verifies the reference and returns the bound email and SKU.
func ParsePayRef(tokenString string, secretKey []byte) (email, sku string, err error) {
	claims := &PayRefClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", "", common.ErrInvalidPayToken
	}
	if !token.Valid {
		return "", "", common.ErrInvalidPayToken
	}

	return claims.Email, claims.SKU, nil
}
