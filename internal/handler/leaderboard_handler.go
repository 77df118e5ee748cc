package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"vitacoin.app/rewardsplatform/internal/model"
	"vitacoin.app/rewardsplatform/internal/repository"
	"vitacoin.app/rewardsplatform/internal/service"
	"vitacoin.app/rewardsplatform/pkg/response"
)

type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
	activity           repository.ActivityRepository
	defaultSize        int
}

func NewLeaderboardHandler(leaderboardService service.LeaderboardService, activity repository.ActivityRepository, defaultSize int) *LeaderboardHandler {
	if defaultSize <= 0 {
		defaultSize = service.DefaultLeaderboardSize
	}
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		activity:           activity,
		defaultSize:        defaultSize,
	}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultSize)))
	if err != nil || limit <= 0 {
		limit = h.defaultSize
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if userID, err := response.GetUserID(c); err == nil {
		recordActivity(c.Request.Context(), h.activity, userID, model.ActionLeaderboardViewed)
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
