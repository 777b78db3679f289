package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/catalog"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	catalog *catalog.Catalog
}

func NewChallengeHandler(cat *catalog.Catalog) *ChallengeHandler {
	return &ChallengeHandler{catalog: cat}
}

// ChallengeResponse never carries the accepted flags.
type ChallengeResponse struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Prompt       string    `json:"prompt,omitempty"`
	Unlocked     bool      `json:"unlocked"`
	UnlockAt     time.Time `json:"unlock_at"`
	MaterialLink string    `json:"material_link,omitempty"`
}

// List godoc
// @Summary      List challenges
// @Description  All catalog entries with their current lock state
// @Tags         challenges
// @Produce      json
// @Success      200 {array} ChallengeResponse
// @Router       /api/v1/challenges [get]
func (h *ChallengeHandler) List(c *gin.Context) {
	now := time.Now()
	out := make([]ChallengeResponse, 0, h.catalog.Len())
	for _, ch := range h.catalog.All() {
		resp := ChallengeResponse{
			ID:       ch.ID,
			Title:    ch.Title,
			Unlocked: h.catalog.IsUnlocked(ch.ID, now),
			UnlockAt: ch.UnlockAt,
		}
		// Prompt and material stay hidden until the challenge opens.
		if resp.Unlocked {
			resp.Prompt = ch.Prompt
			resp.MaterialLink = ch.MaterialLink
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary      Challenge detail
// @Tags         challenges
// @Produce      json
// @Param        id path int true "Challenge ID"
// @Success      200 {object} ChallengeResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/challenges/{id} [get]
func (h *ChallengeHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid challenge id"})
		return
	}

	ch, ok := h.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "challenge not found"})
		return
	}

	now := time.Now()
	resp := ChallengeResponse{
		ID:       ch.ID,
		Title:    ch.Title,
		Unlocked: h.catalog.IsUnlocked(ch.ID, now),
		UnlockAt: ch.UnlockAt,
	}
	if resp.Unlocked {
		resp.Prompt = ch.Prompt
		resp.MaterialLink = ch.MaterialLink
	}
	c.JSON(http.StatusOK, resp)
}
