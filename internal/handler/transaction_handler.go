package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"vitacoin.app/rewardsplatform/internal/model"
	"vitacoin.app/rewardsplatform/internal/repository"
	"vitacoin.app/rewardsplatform/pkg/response"
)

const maxTransactionPageSize = 100

type TransactionHandler struct {
	transactions repository.TransactionRepository
	activity     repository.ActivityRepository
}

func NewTransactionHandler(transactions repository.TransactionRepository, activity repository.ActivityRepository) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		activity:     activity,
	}
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > maxTransactionPageSize {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := h.transactions.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	recordActivity(c.Request.Context(), h.activity, userID, model.ActionTransactionsViewed)

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
