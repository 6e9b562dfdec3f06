// Package auth guards session routes with session control tokens.
package auth

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextSessionClaims is the key used to store token claims in the Gin context.
	ContextSessionClaims = "sessionClaims"

	// SessionParam is the route parameter holding the session ID.
	SessionParam = "id"
)

// Authorize rejects requests without a valid Bearer token. On routes carrying
// a session ID the token's session claim must name that session.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		if id := c.Param(SessionParam); id != "" {
			if granted, _ := claims[i.ClaimSessionID].(string); granted != id {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not grant this session"})
				return
			}
		}

		// Attach the claims to the request context for further use.
		c.Set(ContextSessionClaims, claims)
		c.Next()
	}
}
