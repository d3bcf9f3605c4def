package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/DasoTD/cppAuth/pkg/utils"
)

// principalKey is the gin context key the middleware sets after verifying
// a bearer token. Handlers read it through PrincipalFromContext only.
const principalKey = "username"

// JwtAuthMiddleware verifies the bearer access token on incoming requests
// and attaches the token subject as the request principal. Requests
// without a valid token are rejected with 401 before reaching a handler.
func JwtAuthMiddleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.SendErrorResponse(c, http.StatusUnauthorized, "Bearer token required")
			c.Abort()
			return
		}

		claims, err := issuer.Verify(tokenString)
		if err != nil {
			logrus.Debugf("JwtAuthMiddleware: rejected token: %v", err)
			utils.SendErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		if claims.Subject == "" {
			utils.SendErrorResponse(c, http.StatusUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}

		c.Set(principalKey, claims.Subject)
		c.Next()
	}
}

// PrincipalFromContext returns the username verified by JwtAuthMiddleware.
// The second result is false when the middleware did not run.
func PrincipalFromContext(c *gin.Context) (string, bool) {
	username := c.GetString(principalKey)
	return username, username != ""
}
