package handlers

import (
	"net/http"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/catalog"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/services"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/ws"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
	userService       *services.UserService
	catalog           *catalog.Catalog
	hub               *ws.Hub
}

func NewSubmissionHandler(
	submissionService *services.SubmissionService,
	userService *services.UserService,
	cat *catalog.Catalog,
	hub *ws.Hub,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		userService:       userService,
		catalog:           cat,
		hub:               hub,
	}
}

type SubmitRequest struct {
	UserID      int64  `json:"user_id" binding:"required" example:"123456789"`
	ChallengeID *int   `json:"challenge_id" binding:"required" example:"0"`
	Flag        string `json:"flag" binding:"required,max=255" example:"FLAG{EXAMPLE}"`
}

type SubmitResponse struct {
	Result services.SubmitResult `json:"result" example:"correct"`
}

// Submit godoc
// @Summary      Submit a flag
// @Description  Evaluates a flag and records the attempt in the ledger
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        X-Bot-API-Key header string true "Bot API Key"
// @Param        request body SubmitRequest true "Submission"
// @Success      200 {object} SubmitResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.Set("user_id", req.UserID)

	result := h.submissionService.Submit(c.Request.Context(), req.UserID, *req.ChallengeID, req.Flag)

	if result == services.SubmitCorrect {
		h.announceSolve(c, req.UserID, *req.ChallengeID)
	}

	c.JSON(http.StatusOK, SubmitResponse{Result: result})
}

func (h *SubmissionHandler) announceSolve(c *gin.Context, userID int64, challengeID int) {
	ch, ok := h.catalog.Get(challengeID)
	if !ok {
		return
	}

	fullName := ""
	if progress, err := h.userService.GetProgress(c.Request.Context(), userID); err == nil && progress.User != nil {
		fullName = progress.User.FullName
	}

	h.hub.Broadcast(ws.SolveEvent{
		Type:        "solve",
		FullName:    fullName,
		ChallengeID: challengeID,
		Title:       ch.Title,
		SolvedAt:    time.Now(),
	})
}
