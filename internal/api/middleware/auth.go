package middleware

import (
	"errors"
	"log"
	"net/http"
	"slices"
	"strings"

	"recruit-api/internal/auth"
	"recruit-api/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	identityCtx         = "identity" // models.Identity of the caller
	claimsCtx           = "claims"   // *auth.Claims of the caller
)

// authenticate parses the bearer token. It writes the 401 response itself
// and returns false when the request must stop.
func authenticate(c *gin.Context, tokens *auth.Tokens) bool {
	authHeader := c.GetHeader(authorizationHeader)
	if authHeader == "" {
		log.Println("Auth middleware: Authorization header missing")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return false
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		log.Println("Auth middleware: Invalid Authorization header format")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
		return false
	}

	claims, err := tokens.Parse(c.Request.Context(), headerParts[1])
	if err != nil {
		log.Printf("Auth middleware: Error parsing token: %v", err)
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
		case errors.Is(err, auth.ErrTokenRevoked):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
		case errors.Is(err, auth.ErrAccountBlocked):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is suspended or banned"})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		}
		return false
	}

	identity, err := claims.Identity()
	if err != nil {
		log.Printf("Auth middleware: Error parsing user ID from token subject '%s': %v", claims.Subject, err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identifier in token"})
		return false
	}

	c.Set(identityCtx, identity)
	c.Set(claimsCtx, claims)
	return true
}

// JWTAuthMiddleware creates a Gin middleware for JWT authentication.
func JWTAuthMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, tokens) {
			return
		}
		c.Next()
	}
}

// OptionalAuth authenticates the caller when a bearer token is present and
// lets anonymous requests through.
func OptionalAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(authorizationHeader) == "" {
			c.Next()
			return
		}
		if !authenticate(c, tokens) {
			return
		}
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not listed.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !slices.Contains(roles, identity.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this resource"})
			return
		}
		c.Next()
	}
}

// GetIdentityFromContext returns the caller set by the auth middleware.
func GetIdentityFromContext(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(identityCtx)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

// GetClaimsFromContext returns the parsed token of the caller.
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(claimsCtx)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
