package middleware

import (
	"net/http"
	"strings"

	"github.com/Aarbaz/perfect-management/internal/service"
	"github.com/Aarbaz/perfect-management/internal/util"

	"github.com/gin-gonic/gin"
)

const claimsKey = "authClaims"

// AuthMiddleware verifies the bearer session token and stores its
// claims in the request context. The token is read from the
// Authorization header, falling back to a ?token= query parameter for
// browser-initiated downloads that cannot set headers.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		claims, err := auth.Verify(tokenStr)
		if err != nil {
			util.Error(c, http.StatusForbidden, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the verified identity of the request, or nil
// when the request did not pass AuthMiddleware.
func CurrentClaims(c *gin.Context) *util.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*util.Claims)
	if !ok {
		return nil
	}
	return claims
}
