package services

import (
	"context"
	"errors"
	"testing"

	"softbarter/internal/models"
	"softbarter/internal/repository"
)

// openTransaction drives a trade through acceptance and returns the
// transaction it opened.
func openTransaction(t *testing.T, repo *repository.Repository, ownerID, offerID uint) *models.Transaction {
	t.Helper()

	offerService := NewOfferService(repo)
	_, err := offerService.RespondToOffer(context.Background(), ownerID, offerID,
		&models.RespondToOfferRequest{Accept: boolPtr(true)})
	if err != nil {
		t.Fatalf("failed to accept offer: %v", err)
	}

	txs, err := repo.GetUserTransactions(context.Background(), ownerID)
	if err != nil || len(txs) == 0 {
		t.Fatalf("no transaction after accept: %v", err)
	}
	return txs[0]
}

func TestCompleteTransactionClosesTrade(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewTransactionService(repo)
	ctx := context.Background()

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	trade := createTestTrade(t, db, owner.ID, "Listing")
	offer := createTestOffer(t, db, trade.ID, bob.ID, "Interested")
	tx := openTransaction(t, repo, owner.ID, offer.ID)

	// A stranger cannot complete
	carol := createTestUser(t, db, "Carol", "carol@example.com")
	err := service.CompleteTransaction(ctx, carol.ID, tx.ID, &models.CompleteTransactionRequest{})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	notes := "Exchanged at the market"
	err = service.CompleteTransaction(ctx, bob.ID, tx.ID, &models.CompleteTransactionRequest{CompletionNotes: &notes})
	if err != nil {
		t.Fatalf("CompleteTransaction failed: %v", err)
	}

	var done models.Transaction
	db.First(&done, tx.ID)
	if done.Status != models.TransactionStatusCompleted {
		t.Errorf("expected completed, got %s", done.Status)
	}
	if done.CompletedAt == nil {
		t.Error("expected completion timestamp")
	}
	if done.CompletionNotes == nil || *done.CompletionNotes != notes {
		t.Errorf("notes not stored: %v", done.CompletionNotes)
	}

	var closedTrade models.Trade
	db.First(&closedTrade, trade.ID)
	if closedTrade.Status != models.TradeStatusCompleted {
		t.Errorf("expected trade completed, got %s", closedTrade.Status)
	}

	// Completing twice fails
	err = service.CompleteTransaction(ctx, bob.ID, tx.ID, &models.CompleteTransactionRequest{})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for repeat completion, got %v", err)
	}
}

func TestCancelTransactionReactivatesTrade(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewTransactionService(repo)
	ctx := context.Background()

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	trade := createTestTrade(t, db, owner.ID, "Listing")
	offer := createTestOffer(t, db, trade.ID, bob.ID, "Interested")
	tx := openTransaction(t, repo, owner.ID, offer.ID)

	err := service.CancelTransaction(ctx, owner.ID, tx.ID,
		&models.CancelTransactionRequest{Reason: "Changed my mind"})
	if err != nil {
		t.Fatalf("CancelTransaction failed: %v", err)
	}

	var cancelled models.Transaction
	db.First(&cancelled, tx.ID)
	if cancelled.Status != models.TransactionStatusCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CompletionNotes == nil || *cancelled.CompletionNotes != "Changed my mind" {
		t.Errorf("reason not stored: %v", cancelled.CompletionNotes)
	}

	// The trade goes back on the market
	var reactivated models.Trade
	db.First(&reactivated, trade.ID)
	if reactivated.Status != models.TradeStatusActive {
		t.Errorf("expected trade active again, got %s", reactivated.Status)
	}

	// A cancelled transaction cannot be completed
	err = service.CompleteTransaction(ctx, bob.ID, tx.ID, &models.CompleteTransactionRequest{})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestRateTransactionRules(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewTransactionService(repo)
	ctx := context.Background()

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	trade := createTestTrade(t, db, owner.ID, "Listing")
	offer := createTestOffer(t, db, trade.ID, bob.ID, "Interested")
	tx := openTransaction(t, repo, owner.ID, offer.ID)

	// Rating before completion fails
	err := service.RateTransaction(ctx, owner.ID, tx.ID, &models.RateTransactionRequest{Rating: 5})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict before completion, got %v", err)
	}

	if err := service.CompleteTransaction(ctx, owner.ID, tx.ID, &models.CompleteTransactionRequest{}); err != nil {
		t.Fatalf("CompleteTransaction failed: %v", err)
	}

	// Out-of-range ratings are rejected
	err = service.RateTransaction(ctx, owner.ID, tx.ID, &models.RateTransactionRequest{Rating: 6})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for rating 6, got %v", err)
	}

	// Strangers cannot rate
	carol := createTestUser(t, db, "Carol", "carol@example.com")
	err = service.RateTransaction(ctx, carol.ID, tx.ID, &models.RateTransactionRequest{Rating: 5})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	review := "Smooth trade"
	if err := service.RateTransaction(ctx, owner.ID, tx.ID, &models.RateTransactionRequest{Rating: 5, Review: &review}); err != nil {
		t.Fatalf("RateTransaction failed: %v", err)
	}

	// Each participant rates once
	err = service.RateTransaction(ctx, owner.ID, tx.ID, &models.RateTransactionRequest{Rating: 4})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for repeat rating, got %v", err)
	}

	// The other side has their own slot
	if err := service.RateTransaction(ctx, bob.ID, tx.ID, &models.RateTransactionRequest{Rating: 3}); err != nil {
		t.Fatalf("offeror rating failed: %v", err)
	}

	var rated models.Transaction
	db.First(&rated, tx.ID)
	if rated.TraderRating == nil || *rated.TraderRating != 5 {
		t.Errorf("trader rating wrong: %v", rated.TraderRating)
	}
	if rated.TraderReview == nil || *rated.TraderReview != review {
		t.Errorf("trader review wrong: %v", rated.TraderReview)
	}
	if rated.OfferorRating == nil || *rated.OfferorRating != 3 {
		t.Errorf("offeror rating wrong: %v", rated.OfferorRating)
	}
}

func TestGetTransactionParticipantsOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewTransactionService(repo)
	ctx := context.Background()

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	carol := createTestUser(t, db, "Carol", "carol@example.com")
	trade := createTestTrade(t, db, owner.ID, "Listing")
	offer := createTestOffer(t, db, trade.ID, bob.ID, "Interested")
	tx := openTransaction(t, repo, owner.ID, offer.ID)

	if _, err := service.GetTransaction(ctx, owner.ID, tx.ID); err != nil {
		t.Fatalf("owner could not view transaction: %v", err)
	}
	if _, err := service.GetTransaction(ctx, bob.ID, tx.ID); err != nil {
		t.Fatalf("offeror could not view transaction: %v", err)
	}
	if _, err := service.GetTransaction(ctx, carol.ID, tx.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for stranger, got %v", err)
	}
	if _, err := service.GetTransaction(ctx, owner.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
