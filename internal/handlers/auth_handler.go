package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campaignhq/campaign-studio-backend/internal/config"
	"github.com/campaignhq/campaign-studio-backend/internal/models"
	"github.com/campaignhq/campaign-studio-backend/internal/services/auth"
)

type AuthHandler struct {
	authService *auth.AuthService
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{authService: auth.NewAuthService(cfg)}
}

// Login godoc
// @Summary Start a session
// @Description Exchange a name and email for a session token. No password: this is a single-operator tool.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// AuthService exposes the underlying service for middleware wiring.
func (h *AuthHandler) AuthService() *auth.AuthService {
	return h.authService
}
