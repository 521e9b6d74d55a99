package handlers

import (
	"net/http"

	"softbarter/internal/auth"
	"softbarter/internal/models"
	"softbarter/internal/services"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	offerService *services.OfferService
}

func NewOfferHandler(offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
	}
}

// GetOffersByTrade lists all offers on a trade, newest first
// GET /api/offers/trade/:tradeId
func (h *OfferHandler) GetOffersByTrade(c *gin.Context) {
	tradeID, ok := parseID(c, "tradeId")
	if !ok {
		return
	}

	offers, err := h.offerService.GetOffersByTrade(c.Request.Context(), tradeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

// GetMyOffers lists every offer the current user has made
// GET /api/offers/my-offers
func (h *OfferHandler) GetMyOffers(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	offers, err := h.offerService.GetMyOffers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

// CreateOffer places an offer on an active trade
// POST /api/offers/trade/:tradeId
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tradeID, ok := parseID(c, "tradeId")
	if !ok {
		return
	}

	var req models.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), userID, tradeID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, offer)
}

// RespondToOffer lets the trade owner accept or reject a pending offer
// PUT /api/offers/:id/respond
func (h *OfferHandler) RespondToOffer(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.RespondToOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.offerService.RespondToOffer(c.Request.Context(), userID, offerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

// WithdrawOffer lets the offeror withdraw their own pending offer
// DELETE /api/offers/:id
func (h *OfferHandler) WithdrawOffer(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	offer, err := h.offerService.WithdrawOffer(c.Request.Context(), userID, offerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}
