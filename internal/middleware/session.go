package middleware

import (
	"net/http"
	"strings"

	"github.com/campaignhq/campaign-studio-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
)

type SessionMiddleware struct {
	authService *auth.AuthService
}

func NewSessionMiddleware(authService *auth.AuthService) *SessionMiddleware {
	return &SessionMiddleware{authService: authService}
}

// RequireSession validates the bearer session token and stores the signed-in
// user's name/email in the request context.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to continue"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.authService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("user_name", claims.Name)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}
