package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"softbarter/internal/models"
	"softbarter/internal/repository"

	"gorm.io/gorm"
)

// TransactionService handles the lifecycle of an accepted trade
type TransactionService struct {
	repo *repository.Repository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(repo *repository.Repository) *TransactionService {
	return &TransactionService{repo: repo}
}

// GetMyTransactions retrieves every transaction the user takes part in
func (s *TransactionService) GetMyTransactions(ctx context.Context, userID uint) ([]models.TransactionResponse, error) {
	txs, err := s.repo.GetUserTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	items := make([]models.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, toTransactionResponse(tx))
	}
	return items, nil
}

// GetTransaction retrieves a transaction. Only its participants may see it.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, txID uint) (*models.TransactionResponse, error) {
	tx, err := s.repo.GetTransactionDetail(ctx, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction not found", ErrNotFound)
		}
		return nil, err
	}

	if tx.TraderID != userID && tx.OfferorID != userID {
		return nil, fmt.Errorf("%w: you are not a participant in this transaction", ErrForbidden)
	}

	resp := toTransactionResponse(tx)
	return &resp, nil
}

// CompleteTransaction marks an in-progress transaction as completed and
// closes the underlying trade. Either participant may complete.
func (s *TransactionService) CompleteTransaction(ctx context.Context, userID, txID uint, req *models.CompleteTransactionRequest) error {
	tx, err := s.repo.GetTransactionByID(ctx, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: transaction not found", ErrNotFound)
		}
		return err
	}

	if tx.TraderID != userID && tx.OfferorID != userID {
		return fmt.Errorf("%w: you are not a participant in this transaction", ErrForbidden)
	}
	if tx.Status != models.TransactionStatusInProgress {
		return fmt.Errorf("%w: can only complete transactions that are in progress", ErrConflict)
	}

	now := time.Now()
	tx.Status = models.TransactionStatusCompleted
	tx.CompletedAt = &now
	tx.CompletionNotes = req.CompletionNotes

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.UpdateTransaction(ctx, tx); err != nil {
			return err
		}

		trade, err := txRepo.GetTradeByID(ctx, tx.TradeID)
		if err != nil {
			return err
		}
		return txRepo.UpdateTradeGuarded(ctx, trade.ID, trade.Version, map[string]interface{}{
			"status": models.TradeStatusCompleted,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return fmt.Errorf("%w: trade was modified concurrently", ErrConflict)
		}
		return fmt.Errorf("failed to complete transaction: %w", err)
	}

	log.Printf("Transaction %d completed", tx.ID)
	return nil
}

// RateTransaction records a participant's rating on a completed
// transaction. Each participant has one slot and may fill it once.
func (s *TransactionService) RateTransaction(ctx context.Context, userID, txID uint, req *models.RateTransactionRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	tx, err := s.repo.GetTransactionByID(ctx, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: transaction not found", ErrNotFound)
		}
		return err
	}

	if tx.Status != models.TransactionStatusCompleted {
		return fmt.Errorf("%w: can only rate completed transactions", ErrConflict)
	}
	if tx.TraderID != userID && tx.OfferorID != userID {
		return fmt.Errorf("%w: you are not a participant in this transaction", ErrForbidden)
	}

	switch userID {
	case tx.TraderID:
		if tx.TraderRating != nil {
			return fmt.Errorf("%w: you have already rated this transaction", ErrConflict)
		}
		tx.TraderRating = &req.Rating
		tx.TraderReview = req.Review
	case tx.OfferorID:
		if tx.OfferorRating != nil {
			return fmt.Errorf("%w: you have already rated this transaction", ErrConflict)
		}
		tx.OfferorRating = &req.Rating
		tx.OfferorReview = req.Review
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}
	return nil
}

// CancelTransaction aborts an in-progress transaction and puts the trade
// back on the market. Either participant may cancel; a reason is required.
func (s *TransactionService) CancelTransaction(ctx context.Context, userID, txID uint, req *models.CancelTransactionRequest) error {
	tx, err := s.repo.GetTransactionByID(ctx, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: transaction not found", ErrNotFound)
		}
		return err
	}

	if tx.TraderID != userID && tx.OfferorID != userID {
		return fmt.Errorf("%w: you are not a participant in this transaction", ErrForbidden)
	}
	if tx.Status != models.TransactionStatusInProgress {
		return fmt.Errorf("%w: can only cancel transactions that are in progress", ErrConflict)
	}

	tx.Status = models.TransactionStatusCancelled
	tx.CompletionNotes = &req.Reason

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.UpdateTransaction(ctx, tx); err != nil {
			return err
		}

		trade, err := txRepo.GetTradeByID(ctx, tx.TradeID)
		if err != nil {
			return err
		}
		return txRepo.UpdateTradeGuarded(ctx, trade.ID, trade.Version, map[string]interface{}{
			"status": models.TradeStatusActive,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return fmt.Errorf("%w: trade was modified concurrently", ErrConflict)
		}
		return fmt.Errorf("failed to cancel transaction: %w", err)
	}

	log.Printf("Transaction %d cancelled, trade %d reactivated", tx.ID, tx.TradeID)
	return nil
}
