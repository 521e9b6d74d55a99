package repository

import (
	"context"
	"time"

	"softbarter/internal/models"

	"gorm.io/gorm/clause"
)

// CreateOffer creates a new offer
func (r *Repository) CreateOffer(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

// GetOfferByID retrieves an offer with its trade loaded
func (r *Repository) GetOfferByID(ctx context.Context, offerID uint) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).
		Preload("Trade").
		Where("id = ?", offerID).
		First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetOfferDetail retrieves an offer with trade and offeror loaded
func (r *Repository) GetOfferDetail(ctx context.Context, offerID uint) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).
		Preload("Trade").
		Preload("Offeror").
		Where("id = ?", offerID).
		First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetOffersByTrade retrieves all offers on a trade with offeror profiles
func (r *Repository) GetOffersByTrade(ctx context.Context, tradeID uint) ([]*models.Offer, error) {
	var offers []*models.Offer
	err := r.db.WithContext(ctx).
		Preload("Offeror").
		Where("trade_id = ?", tradeID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// GetUserOffers retrieves all offers a user has made
func (r *Repository) GetUserOffers(ctx context.Context, offerorID uint) ([]*models.Offer, error) {
	var offers []*models.Offer
	err := r.db.WithContext(ctx).
		Preload("Trade").
		Preload("Offeror").
		Where("offeror_id = ?", offerorID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// HasPendingOffer reports whether the user already has a pending offer
// on the trade. At most one is allowed per (trade, offeror) pair.
func (r *Repository) HasPendingOffer(ctx context.Context, tradeID, offerorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("trade_id = ? AND offeror_id = ? AND status = ?",
			tradeID, offerorID, models.OfferStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateOffer saves an offer. Associations are omitted so a preloaded
// trade is never written back with stale fields.
func (r *Repository) UpdateOffer(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(offer).Error
}

// RejectCompetingOffers bulk-rejects every other pending offer on the
// trade, stamping the system response message. Order among them is
// immaterial.
func (r *Repository) RejectCompetingOffers(ctx context.Context, tradeID, acceptedOfferID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("trade_id = ? AND id != ? AND status = ?",
			tradeID, acceptedOfferID, models.OfferStatusPending).
		Updates(map[string]interface{}{
			"status":           models.OfferStatusRejected,
			"response_message": models.RejectedBySystemMessage,
			"response_date":    now,
			"updated_at":       now,
		}).Error
}
