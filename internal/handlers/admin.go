package handlers

import (
	"net/http"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authService  *services.AuthService
	statsService *services.StatsService
}

func NewAdminHandler(authService *services.AuthService, statsService *services.StatsService) *AdminHandler {
	return &AdminHandler{authService: authService, statsService: statsService}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"secret"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} TokenResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Stats godoc
// @Summary      Event-wide statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} services.AdminStats
// @Router       /api/v1/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats := h.statsService.AdminStats(c.Request.Context())
	c.JSON(http.StatusOK, stats)
}
