package handlers

import (
	"net/http"
	"strconv"

	"softbarter/internal/auth"
	"softbarter/internal/models"
	"softbarter/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TradeHandler struct {
	tradeService *services.TradeService
}

func NewTradeHandler(tradeService *services.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// ListTrades returns a page of active trades matching the query filters
// GET /api/trades
func (h *TradeHandler) ListTrades(c *gin.Context) {
	search := models.TradeSearch{}

	if v := c.Query("category"); v != "" {
		search.Category = &v
	}
	if v := c.Query("location"); v != "" {
		search.Location = &v
	}
	if v := c.Query("item_sought"); v != "" {
		search.ItemSought = &v
	}
	if v := c.Query("item_offered"); v != "" {
		search.ItemOffered = &v
	}
	if v := c.Query("condition"); v != "" {
		search.Condition = &v
	}
	if v := c.Query("search"); v != "" {
		search.SearchTerm = &v
	}
	if v := c.Query("min_value"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_value"})
			return
		}
		search.MinValue = &d
	}
	if v := c.Query("max_value"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_value"})
			return
		}
		search.MaxValue = &d
	}
	if v := c.Query("is_negotiable"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid is_negotiable"})
			return
		}
		search.IsNegotiable = &b
	}
	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			search.Page = p
		}
	}
	if v := c.Query("pageSize"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil {
			search.PageSize = ps
		}
	}

	page, err := h.tradeService.ListTrades(c.Request.Context(), &search)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetTrade retrieves a single trade with its offers
// GET /api/trades/:id
func (h *TradeHandler) GetTrade(c *gin.Context) {
	tradeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	trade, err := h.tradeService.GetTrade(c.Request.Context(), tradeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

// GetActiveTrades lists every active trade without pagination
// GET /api/trades/active
func (h *TradeHandler) GetActiveTrades(c *gin.Context) {
	trades, err := h.tradeService.GetActiveTrades(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trades)
}

// GetMyTrades retrieves the current user's trades, any status
// GET /api/trades/my-trades
func (h *TradeHandler) GetMyTrades(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	trades, err := h.tradeService.GetMyTrades(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trades)
}

// CreateTrade creates a new listing owned by the current user
// POST /api/trades
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trade, err := h.tradeService.CreateTrade(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trade)
}

// UpdateTrade partially updates a listing the current user owns
// PUT /api/trades/:id
func (h *TradeHandler) UpdateTrade(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tradeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tradeService.UpdateTrade(c.Request.Context(), userID, tradeID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trade updated successfully"})
}

// DeleteTrade deletes a listing, or cancels it when offers or a
// transaction still reference it
// DELETE /api/trades/:id
func (h *TradeHandler) DeleteTrade(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tradeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.tradeService.DeleteTrade(c.Request.Context(), userID, tradeID)
	if err != nil {
		respondError(c, err)
		return
	}

	if cancelled {
		c.JSON(http.StatusOK, gin.H{"message": "Trade cancelled because it has offers or transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trade deleted successfully"})
}
