package repository

import (
	"context"
	"time"

	"softbarter/internal/models"

	"gorm.io/gorm"
)

// CreateTrade creates a new trade listing
func (r *Repository) CreateTrade(ctx context.Context, trade *models.Trade) error {
	return r.db.WithContext(ctx).Create(trade).Error
}

// GetTradeByID retrieves a trade row without related records
func (r *Repository) GetTradeByID(ctx context.Context, tradeID uint) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.WithContext(ctx).Where("id = ?", tradeID).First(&trade).Error
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

// GetTradeDetail retrieves a trade with its owner, offers and each
// offer's offeror loaded in one place, instead of implicit graph traversal.
func (r *Repository) GetTradeDetail(ctx context.Context, tradeID uint) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Offers").
		Preload("Offers.Offeror").
		Where("id = ?", tradeID).
		First(&trade).Error
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

// IncrementTradeViews bumps the view counter without touching the
// concurrency token. Every read counts; no dedup by viewer.
func (r *Repository) IncrementTradeViews(ctx context.Context, tradeID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("id = ?", tradeID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// SearchTrades applies the optional filters to active trades and returns
// one page ordered newest first plus the total match count.
func (r *Repository) SearchTrades(ctx context.Context, search *models.TradeSearch) ([]*models.Trade, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("status = ?", models.TradeStatusActive)

	if search.Category != nil {
		query = query.Where("category = ?", *search.Category)
	}
	if search.Location != nil {
		query = query.Where("location LIKE ?", "%"+*search.Location+"%")
	}
	if search.ItemSought != nil {
		query = query.Where("item_sought LIKE ?", "%"+*search.ItemSought+"%")
	}
	if search.ItemOffered != nil {
		query = query.Where("item_offered LIKE ?", "%"+*search.ItemOffered+"%")
	}
	if search.MinValue != nil {
		query = query.Where("estimated_value >= ?", *search.MinValue)
	}
	if search.MaxValue != nil {
		query = query.Where("estimated_value <= ?", *search.MaxValue)
	}
	if search.IsNegotiable != nil {
		query = query.Where("is_negotiable = ?", *search.IsNegotiable)
	}
	if search.Condition != nil {
		query = query.Where("condition = ?", *search.Condition)
	}
	if search.SearchTerm != nil {
		term := "%" + *search.SearchTerm + "%"
		query = query.Where(
			"title LIKE ? OR description LIKE ? OR item_offered LIKE ? OR item_sought LIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trades []*models.Trade
	err := query.
		Preload("User").
		Preload("Offers", "status = ?", models.OfferStatusPending).
		Preload("Offers.Offeror").
		Order("created_at DESC").
		Limit(search.PageSize).
		Offset((search.Page - 1) * search.PageSize).
		Find(&trades).Error
	if err != nil {
		return nil, 0, err
	}

	return trades, total, nil
}

// GetActiveTrades retrieves every active trade with its owner, unpaginated
func (r *Repository) GetActiveTrades(ctx context.Context) ([]*models.Trade, error) {
	var trades []*models.Trade
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", models.TradeStatusActive).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// GetUserTrades retrieves all trades a user owns, any status
func (r *Repository) GetUserTrades(ctx context.Context, userID uint) ([]*models.Trade, error) {
	var trades []*models.Trade
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Offers").
		Preload("Offers.Offeror").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// UpdateTradeGuarded persists the given column updates only if the row
// still carries the expected version; the version is bumped in the same
// statement. A stale version surfaces as ErrVersionConflict.
func (r *Repository) UpdateTradeGuarded(ctx context.Context, tradeID, version uint, updates map[string]interface{}) error {
	updates["version"] = version + 1
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("id = ? AND version = ?", tradeID, version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// DeleteTrade removes a trade row permanently
func (r *Repository) DeleteTrade(ctx context.Context, tradeID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Trade{}, tradeID).Error
}

// TradeHasReferences reports whether any pending offer or any transaction
// still points at the trade, which blocks physical deletion.
func (r *Repository) TradeHasReferences(ctx context.Context, tradeID uint) (bool, error) {
	var pendingOffers int64
	err := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("trade_id = ? AND status = ?", tradeID, models.OfferStatusPending).
		Count(&pendingOffers).Error
	if err != nil {
		return false, err
	}
	if pendingOffers > 0 {
		return true, nil
	}

	var transactions int64
	err = r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("trade_id = ?", tradeID).
		Count(&transactions).Error
	if err != nil {
		return false, err
	}

	return transactions > 0, nil
}
