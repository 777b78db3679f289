package handlers

import (
	"net/http"
	"strconv"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type RegisterRequest struct {
	UserID   int64  `json:"user_id" binding:"required" example:"123456789"`
	Username string `json:"username" binding:"required,min=1,max=255" example:"hunter42"`
	FullName string `json:"full_name" binding:"required,min=1,max=255" example:"Jane Hunter"`
}

// Register godoc
// @Summary      Register a participant
// @Description  Creates or reactivates a participant and seeds their statistics
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-Bot-API-Key header string true "Bot API Key"
// @Param        request body RegisterRequest true "Registration data"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.Set("user_id", req.UserID)

	if err := h.userService.Register(c.Request.Context(), req.UserID, req.Username, req.FullName); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "registration failed"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "registered"})
}

// GetProgress godoc
// @Summary      Participant progress
// @Description  Statistics plus the ordered list of completed challenge ids
// @Tags         users
// @Produce      json
// @Param        X-Bot-API-Key header string true "Bot API Key"
// @Param        id path int true "User ID"
// @Success      200 {object} services.UserProgress
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/users/{id}/progress [get]
func (h *UserHandler) GetProgress(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}
	c.Set("user_id", userID)

	progress, err := h.userService.GetProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load progress"})
		return
	}

	c.JSON(http.StatusOK, progress)
}
