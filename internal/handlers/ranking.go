package handlers

import (
	"net/http"
	"strconv"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/services"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	rankingService *services.RankingService
}

func NewRankingHandler(rankingService *services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// Leaderboard godoc
// @Summary      Leaderboard
// @Description  Top users by completed challenges, earliest first solve wins ties
// @Tags         ranking
// @Produce      json
// @Param        limit query int false "Result size (default 10)"
// @Success      200 {array} services.LeaderboardEntry
// @Router       /api/v1/leaderboard [get]
func (h *RankingHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	entries := h.rankingService.Leaderboard(c.Request.Context(), limit)
	c.JSON(http.StatusOK, entries)
}
