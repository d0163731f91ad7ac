package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenExpiry = 24 * time.Hour

func GenerateJWT(userID uint, username string) (string, error) {
	// jti keeps token strings unique per login; sessions index on the
	// raw token, so two logins in the same second must not collide.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(TokenExpiry).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
