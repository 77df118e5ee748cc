package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"vitacoin.app/rewardsplatform/internal/service"
	"vitacoin.app/rewardsplatform/pkg/response"
)

type RewardHandler struct {
	rewardService service.RewardService
	rdb           *redis.Client
	claimLimit    time.Duration
}

func NewRewardHandler(rewardService service.RewardService, rdb *redis.Client, claimLimit time.Duration) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
		rdb:           rdb,
		claimLimit:    claimLimit,
	}
}

func (h *RewardHandler) ClaimDaily(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.rdb, userID, "daily_reward", h.claimLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
		return
	}

	res, err := h.rewardService.ApplyDailyReward(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
