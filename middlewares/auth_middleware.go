// middlewares/auth_middleware.go
package middlewares

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/billysm23/FitKitchen-BackendTST/services"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func abortUnauthorized(c *gin.Context, message string, code utils.ErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// AuthMiddleware verifies the bearer JWT and its backing session row,
// then exposes the authenticated user id to handlers. The core trusts
// this id without re-validating credentials.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header required", utils.ErrUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		secret := []byte(os.Getenv("JWT_SECRET"))
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    utils.ErrDatabaseError,
					"message": "server misconfigured: JWT_SECRET not set",
				},
			})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid token", utils.ErrUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid claims", utils.ErrUnauthorized)
			return
		}

		rawID, ok := claims["userId"].(float64)
		if !ok {
			abortUnauthorized(c, "userId claim missing", utils.ErrUnauthorized)
			return
		}

		session, err := services.FindActiveSession(tokenString)
		if err != nil {
			var appErr *utils.AppError
			if errors.As(err, &appErr) {
				abortUnauthorized(c, appErr.Message, appErr.Code)
				return
			}
			abortUnauthorized(c, "Session validation failed", utils.ErrSessionInvalid)
			return
		}

		userID := uint(rawID)
		if session.UserID != userID {
			abortUnauthorized(c, "Session does not match token", utils.ErrSessionInvalid)
			return
		}

		c.Set("userID", userID)
		c.Set("sessionToken", tokenString)
		c.Next()
	}
}
