package handlers

import (
	"net/http"

	"softbarter/internal/auth"
	"softbarter/internal/models"
	"softbarter/internal/services"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	txService *services.TransactionService
}

func NewTransactionHandler(txService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
	}
}

// GetMyTransactions lists every transaction the current user takes part in
// GET /api/transactions/my-transactions
func (h *TransactionHandler) GetMyTransactions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	txs, err := h.txService.GetMyTransactions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txs)
}

// GetTransaction retrieves a transaction for one of its participants
// GET /api/transactions/:id
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	txID, ok := parseID(c, "id")
	if !ok {
		return
	}

	tx, err := h.txService.GetTransaction(c.Request.Context(), userID, txID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

// CompleteTransaction marks a transaction as done and closes its trade
// POST /api/transactions/:id/complete
func (h *TransactionHandler) CompleteTransaction(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	txID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.CompleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.txService.CompleteTransaction(c.Request.Context(), userID, txID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction completed successfully"})
}

// RateTransaction records the current participant's rating
// POST /api/transactions/:id/rate
func (h *TransactionHandler) RateTransaction(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	txID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.RateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.txService.RateTransaction(c.Request.Context(), userID, txID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating submitted successfully"})
}

// CancelTransaction aborts a transaction and reactivates its trade
// POST /api/transactions/:id/cancel
func (h *TransactionHandler) CancelTransaction(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	txID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.CancelTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.txService.CancelTransaction(c.Request.Context(), userID, txID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction cancelled successfully"})
}
