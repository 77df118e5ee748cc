package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"vitacoin.app/rewardsplatform/internal/service"
	"vitacoin.app/rewardsplatform/pkg/response"
)

type TaskHandler struct {
	taskService   service.TaskService
	searchService service.SearchService
	rdb           *redis.Client
	claimLimit    time.Duration
}

func NewTaskHandler(taskService service.TaskService, searchService service.SearchService, rdb *redis.Client, claimLimit time.Duration) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		searchService: searchService,
		rdb:           rdb,
		claimLimit:    claimLimit,
	}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID, c.Query("category"), c.Query("difficulty"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) ClaimTask(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.rdb, userID, "claim_task", h.claimLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
		return
	}

	res, err := h.taskService.ClaimTask(c.Request.Context(), userID, taskID)
	if err != nil {
		var notMet *service.RequirementsNotMetError
		if errors.As(err, &notMet) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    notMet.Error(),
				"progress": notMet.Progress,
			})
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TaskHandler) ListCompletions(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	completions, err := h.taskService.ListCompletions(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": completions})
}

func (h *TaskHandler) SearchTasks(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, err := h.searchService.SearchTasks(c.Query("q"), c.Query("category"), c.Query("difficulty"), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
