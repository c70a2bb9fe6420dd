package middleware

import (
	"errors"
	"net/http"
	"strings"

	"tourdesk/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// PartnerAuthMiddleware authenticates the calling principal. Two schemes
// are accepted: a static partner API key in X-API-Key, or an HS256 bearer
// token whose subject names the partner. Either way the resolved partner id
// is stored on the context; it selects which supplier-partner credentials
// back the call but never alters the booking state machine.
func PartnerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader("X-API-Key"); key != "" {
			for _, accepted := range config.PartnerKeys() {
				if key == accepted {
					c.Set("partner", key)
					c.Next()
					return
				}
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		sub, err := validateBearer(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set("partner", sub)
		c.Next()
	}
}

func validateBearer(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
