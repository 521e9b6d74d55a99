package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"softbarter/internal/models"
	"softbarter/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferService handles offers and the accept/reject negotiation
type OfferService struct {
	repo *repository.Repository
}

// NewOfferService creates a new OfferService
func NewOfferService(repo *repository.Repository) *OfferService {
	return &OfferService{repo: repo}
}

// GetOffersByTrade retrieves all offers on a trade, newest first
func (s *OfferService) GetOffersByTrade(ctx context.Context, tradeID uint) ([]models.OfferResponse, error) {
	if _, err := s.repo.GetTradeByID(ctx, tradeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: trade not found", ErrNotFound)
		}
		return nil, err
	}

	offers, err := s.repo.GetOffersByTrade(ctx, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offers: %w", err)
	}

	items := make([]models.OfferResponse, 0, len(offers))
	for _, offer := range offers {
		items = append(items, toOfferResponse(offer))
	}
	return items, nil
}

// GetMyOffers retrieves all offers the user has made, any status
func (s *OfferService) GetMyOffers(ctx context.Context, userID uint) ([]models.OfferResponse, error) {
	offers, err := s.repo.GetUserOffers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offers: %w", err)
	}

	items := make([]models.OfferResponse, 0, len(offers))
	for _, offer := range offers {
		items = append(items, toOfferResponse(offer))
	}
	return items, nil
}

// CreateOffer places a pending offer on an active trade. A user cannot
// offer on their own trade or hold more than one pending offer per trade.
func (s *OfferService) CreateOffer(ctx context.Context, offerorID, tradeID uint, req *models.CreateOfferRequest) (*models.OfferResponse, error) {
	if req.MonetaryOffer != nil && req.MonetaryOffer.IsNegative() {
		return nil, fmt.Errorf("%w: monetary offer cannot be negative", ErrValidation)
	}

	trade, err := s.repo.GetTradeByID(ctx, tradeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: trade not found", ErrNotFound)
		}
		return nil, err
	}

	if trade.Status != models.TradeStatusActive {
		return nil, fmt.Errorf("%w: trade is not accepting offers", ErrConflict)
	}
	if trade.UserID == offerorID {
		return nil, fmt.Errorf("%w: you cannot make an offer on your own trade", ErrConflict)
	}

	pending, err := s.repo.HasPendingOffer(ctx, tradeID, offerorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending offers: %w", err)
	}
	if pending {
		return nil, fmt.Errorf("%w: you already have a pending offer on this trade", ErrConflict)
	}

	offer := &models.Offer{
		Message:       req.Message,
		ItemOffered:   req.ItemOffered,
		MonetaryOffer: req.MonetaryOffer,
		Status:        models.OfferStatusPending,
		TradeID:       tradeID,
		OfferorID:     offerorID,
	}

	if err := s.repo.CreateOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	created, err := s.repo.GetOfferDetail(ctx, offer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created offer: %w", err)
	}

	resp := toOfferResponse(created)
	return &resp, nil
}

// RespondToOffer lets the trade owner accept or reject a pending offer.
// Accepting moves the trade under offer, opens a transaction and rejects
// every other pending offer on the trade, all in one database transaction.
func (s *OfferService) RespondToOffer(ctx context.Context, userID, offerID uint, req *models.RespondToOfferRequest) (*models.OfferResponse, error) {
	offer, err := s.repo.GetOfferByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: offer not found", ErrNotFound)
		}
		return nil, err
	}

	if offer.Trade.UserID != userID {
		return nil, fmt.Errorf("%w: only the trade owner can respond to offers", ErrForbidden)
	}
	if offer.Status != models.OfferStatusPending {
		return nil, fmt.Errorf("%w: offer has already been responded to", ErrConflict)
	}

	now := time.Now()
	offer.ResponseDate = &now
	offer.ResponseMessage = req.ResponseMessage

	if !*req.Accept {
		offer.Status = models.OfferStatusRejected
		if err := s.repo.UpdateOffer(ctx, offer); err != nil {
			return nil, fmt.Errorf("failed to reject offer: %w", err)
		}
	} else {
		if offer.Trade.Status != models.TradeStatusActive {
			return nil, fmt.Errorf("%w: trade is no longer active", ErrConflict)
		}

		offer.Status = models.OfferStatusAccepted
		err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
			if err := txRepo.UpdateOffer(ctx, offer); err != nil {
				return err
			}

			if err := txRepo.UpdateTradeGuarded(ctx, offer.TradeID, offer.Trade.Version, map[string]interface{}{
				"status": models.TradeStatusUnderOffer,
			}); err != nil {
				return err
			}

			description := "Accepted offer: " + offer.Message
			tx := &models.Transaction{
				Reference:       uuid.New(),
				Title:           "Transaction for: " + offer.Trade.Title,
				Description:     &description,
				Status:          models.TransactionStatusInProgress,
				TradeID:         offer.TradeID,
				AcceptedOfferID: offer.ID,
				TraderID:        offer.Trade.UserID,
				OfferorID:       offer.OfferorID,
			}
			if err := txRepo.CreateTransaction(ctx, tx); err != nil {
				return err
			}

			return txRepo.RejectCompetingOffers(ctx, offer.TradeID, offer.ID)
		})
		if err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				return nil, fmt.Errorf("%w: trade was modified concurrently", ErrConflict)
			}
			return nil, fmt.Errorf("failed to accept offer: %w", err)
		}

		log.Printf("Offer %d accepted on trade %d, transaction opened", offer.ID, offer.TradeID)
	}

	updated, err := s.repo.GetOfferDetail(ctx, offer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	resp := toOfferResponse(updated)
	return &resp, nil
}

// WithdrawOffer lets the offeror pull back their own pending offer
func (s *OfferService) WithdrawOffer(ctx context.Context, userID, offerID uint) (*models.OfferResponse, error) {
	offer, err := s.repo.GetOfferByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: offer not found", ErrNotFound)
		}
		return nil, err
	}

	if offer.OfferorID != userID {
		return nil, fmt.Errorf("%w: you can only withdraw your own offers", ErrForbidden)
	}
	if offer.Status != models.OfferStatusPending {
		return nil, fmt.Errorf("%w: only pending offers can be withdrawn", ErrConflict)
	}

	now := time.Now()
	offer.Status = models.OfferStatusWithdrawn
	offer.ResponseDate = &now

	if err := s.repo.UpdateOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to withdraw offer: %w", err)
	}

	updated, err := s.repo.GetOfferDetail(ctx, offer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	resp := toOfferResponse(updated)
	return &resp, nil
}
