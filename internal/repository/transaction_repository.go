package repository

import (
	"context"

	"softbarter/internal/models"

	"gorm.io/gorm/clause"
)

// CreateTransaction creates a new transaction record
func (r *Repository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// GetTransactionByID retrieves a transaction row without related records
func (r *Repository) GetTransactionByID(ctx context.Context, txID uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", txID).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransactionDetail retrieves a transaction with trade, accepted offer
// and both participants loaded
func (r *Repository) GetTransactionDetail(ctx context.Context, txID uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Trade").
		Preload("Trade.User").
		Preload("AcceptedOffer").
		Preload("AcceptedOffer.Offeror").
		Preload("Trader").
		Preload("Offeror").
		Where("id = ?", txID).
		First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetUserTransactions retrieves every transaction the user participates
// in, as trader or offeror
func (r *Repository) GetUserTransactions(ctx context.Context, userID uint) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Trade").
		Preload("Trade.User").
		Preload("AcceptedOffer").
		Preload("AcceptedOffer.Offeror").
		Preload("Trader").
		Preload("Offeror").
		Where("trader_id = ? OR offeror_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// UpdateTransaction saves a transaction, leaving associations untouched
func (r *Repository) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(tx).Error
}
