package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"softbarter/internal/models"
	"softbarter/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// TradeService handles the trade listing lifecycle
type TradeService struct {
	repo *repository.Repository
}

// NewTradeService creates a new TradeService
func NewTradeService(repo *repository.Repository) *TradeService {
	return &TradeService{repo: repo}
}

// ListTrades returns one page of active trades matching the filters,
// newest first
func (s *TradeService) ListTrades(ctx context.Context, search *models.TradeSearch) (*models.TradePage, error) {
	if search.Page < 1 {
		search.Page = defaultPage
	}
	if search.PageSize < 1 || search.PageSize > maxPageSize {
		search.PageSize = defaultPageSize
	}

	trades, total, err := s.repo.SearchTrades(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search trades: %w", err)
	}

	items := make([]models.TradeResponse, 0, len(trades))
	for _, trade := range trades {
		items = append(items, toTradeResponse(trade))
	}

	totalPages := int((total + int64(search.PageSize) - 1) / int64(search.PageSize))

	return &models.TradePage{
		Items:      items,
		TotalCount: total,
		Page:       search.Page,
		PageSize:   search.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetTrade retrieves a trade with its offers, bumping the view counter
// on every fetch
func (s *TradeService) GetTrade(ctx context.Context, tradeID uint) (*models.TradeResponse, error) {
	if err := s.repo.IncrementTradeViews(ctx, tradeID); err != nil {
		return nil, fmt.Errorf("failed to count view: %w", err)
	}

	trade, err := s.repo.GetTradeDetail(ctx, tradeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: trade not found", ErrNotFound)
		}
		return nil, err
	}

	resp := toTradeResponse(trade)
	return &resp, nil
}

// GetActiveTrades retrieves every active trade without pagination
func (s *TradeService) GetActiveTrades(ctx context.Context) ([]models.TradeResponse, error) {
	trades, err := s.repo.GetActiveTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active trades: %w", err)
	}

	items := make([]models.TradeResponse, 0, len(trades))
	for _, trade := range trades {
		items = append(items, toTradeResponse(trade))
	}
	return items, nil
}

// GetMyTrades retrieves all trades owned by the user, any status
func (s *TradeService) GetMyTrades(ctx context.Context, userID uint) ([]models.TradeResponse, error) {
	trades, err := s.repo.GetUserTrades(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trades: %w", err)
	}

	items := make([]models.TradeResponse, 0, len(trades))
	for _, trade := range trades {
		items = append(items, toTradeResponse(trade))
	}
	return items, nil
}

// CreateTrade creates an active listing owned by the user
func (s *TradeService) CreateTrade(ctx context.Context, userID uint, req *models.CreateTradeRequest) (*models.TradeResponse, error) {
	if req.EstimatedValue != nil && req.EstimatedValue.IsNegative() {
		return nil, fmt.Errorf("%w: estimated value cannot be negative", ErrValidation)
	}

	negotiable := true
	if req.IsNegotiable != nil {
		negotiable = *req.IsNegotiable
	}

	trade := &models.Trade{
		Title:          req.Title,
		Description:    req.Description,
		ItemOffered:    req.ItemOffered,
		ItemSought:     req.ItemSought,
		Category:       req.Category,
		Location:       req.Location,
		EstimatedValue: req.EstimatedValue,
		IsNegotiable:   negotiable,
		ExpiryDate:     req.ExpiryDate,
		ImageURLs:      req.ImageURLs,
		Condition:      req.Condition,
		Status:         models.TradeStatusActive,
		UserID:         userID,
	}

	if err := s.repo.CreateTrade(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	created, err := s.repo.GetTradeDetail(ctx, trade.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created trade: %w", err)
	}

	resp := toTradeResponse(created)
	return &resp, nil
}

// UpdateTrade applies a partial update. Presence of a field decides the
// overwrite; the write is guarded by the trade's version so a concurrent
// modification fails with a conflict instead of silently overwriting.
func (s *TradeService) UpdateTrade(ctx context.Context, userID, tradeID uint, req *models.UpdateTradeRequest) error {
	trade, err := s.repo.GetTradeByID(ctx, tradeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: trade not found", ErrNotFound)
		}
		return err
	}

	if trade.UserID != userID {
		return fmt.Errorf("%w: you can only update your own trades", ErrForbidden)
	}

	if req.EstimatedValue != nil && req.EstimatedValue.IsNegative() {
		return fmt.Errorf("%w: estimated value cannot be negative", ErrValidation)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ItemOffered != nil {
		updates["item_offered"] = *req.ItemOffered
	}
	if req.ItemSought != nil {
		updates["item_sought"] = *req.ItemSought
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.EstimatedValue != nil {
		updates["estimated_value"] = *req.EstimatedValue
	}
	if req.IsNegotiable != nil {
		updates["is_negotiable"] = *req.IsNegotiable
	}
	if req.ExpiryDate != nil {
		updates["expiry_date"] = *req.ExpiryDate
	}
	if req.ImageURLs != nil {
		updates["image_urls"] = *req.ImageURLs
	}
	if req.Condition != nil {
		updates["condition"] = *req.Condition
	}

	if err := s.repo.UpdateTradeGuarded(ctx, trade.ID, trade.Version, updates); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return fmt.Errorf("%w: trade was modified concurrently", ErrConflict)
		}
		return fmt.Errorf("failed to update trade: %w", err)
	}

	return nil
}

// DeleteTrade removes a listing. A trade still referenced by a pending
// offer or any transaction is cancelled instead of deleted, so the
// referencing rows keep a valid parent.
func (s *TradeService) DeleteTrade(ctx context.Context, userID, tradeID uint) (cancelled bool, err error) {
	trade, err := s.repo.GetTradeByID(ctx, tradeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: trade not found", ErrNotFound)
		}
		return false, err
	}

	if trade.UserID != userID {
		return false, fmt.Errorf("%w: you can only delete your own trades", ErrForbidden)
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		referenced, err := txRepo.TradeHasReferences(ctx, trade.ID)
		if err != nil {
			return err
		}

		if referenced {
			cancelled = true
			return txRepo.UpdateTradeGuarded(ctx, trade.ID, trade.Version, map[string]interface{}{
				"status": models.TradeStatusCancelled,
			})
		}

		return txRepo.DeleteTrade(ctx, trade.ID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return false, fmt.Errorf("%w: trade was modified concurrently", ErrConflict)
		}
		return false, fmt.Errorf("failed to delete trade: %w", err)
	}

	if cancelled {
		log.Printf("Trade %d cancelled instead of deleted (still referenced)", trade.ID)
	}

	return cancelled, nil
}
