package services

import (
	"context"
	"errors"
	"testing"

	"softbarter/internal/models"
	"softbarter/internal/repository"

	"github.com/google/uuid"
)

func boolPtr(b bool) *bool { return &b }

func TestCreateOfferRules(t *testing.T) {
	db := setupTestDB(t)
	service := NewOfferService(repository.NewRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	offeror := createTestUser(t, db, "Bob", "bob@example.com")
	trade := createTestTrade(t, db, owner.ID, "Listing")

	// Missing trade
	_, err := service.CreateOffer(ctx, offeror.ID, 9999, &models.CreateOfferRequest{Message: "Hi"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Own trade
	_, err = service.CreateOffer(ctx, owner.ID, trade.ID, &models.CreateOfferRequest{Message: "Mine"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for self-offer, got %v", err)
	}

	// First offer goes through
	offer, err := service.CreateOffer(ctx, offeror.ID, trade.ID, &models.CreateOfferRequest{Message: "Interested"})
	if err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}
	if offer.Status != models.OfferStatusPending {
		t.Errorf("expected pending offer, got %s", offer.Status)
	}

	// Second pending offer from the same user is blocked
	_, err = service.CreateOffer(ctx, offeror.ID, trade.ID, &models.CreateOfferRequest{Message: "Again"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate pending offer, got %v", err)
	}

	// Non-active trade rejects offers
	db.Model(&models.Trade{}).Where("id = ?", trade.ID).
		Update("status", models.TradeStatusUnderOffer)
	other := createTestUser(t, db, "Carol", "carol@example.com")
	_, err = service.CreateOffer(ctx, other.ID, trade.ID, &models.CreateOfferRequest{Message: "Late"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for non-active trade, got %v", err)
	}
}

func TestWithdrawOfferAfterTradeLeavesActive(t *testing.T) {
	db := setupTestDB(t)
	service := NewOfferService(repository.NewRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	offeror := createTestUser(t, db, "Bob", "bob@example.com")
	trade := createTestTrade(t, db, owner.ID, "Listing")
	offer := createTestOffer(t, db, trade.ID, offeror.ID, "Interested")

	// Only the offeror may withdraw
	if _, err := service.WithdrawOffer(ctx, owner.ID, offer.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	withdrawn, err := service.WithdrawOffer(ctx, offeror.ID, offer.ID)
	if err != nil {
		t.Fatalf("WithdrawOffer failed: %v", err)
	}
	if withdrawn.Status != models.OfferStatusWithdrawn {
		t.Errorf("expected withdrawn status, got %s", withdrawn.Status)
	}
	if withdrawn.ResponseDate == nil {
		t.Error("expected response date to be stamped")
	}

	// Withdrawing twice fails
	if _, err := service.WithdrawOffer(ctx, offeror.ID, offer.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for repeat withdraw, got %v", err)
	}
}

func TestRejectOffer(t *testing.T) {
	db := setupTestDB(t)
	service := NewOfferService(repository.NewRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	offeror := createTestUser(t, db, "Bob", "bob@example.com")
	trade := createTestTrade(t, db, owner.ID, "Listing")
	offer := createTestOffer(t, db, trade.ID, offeror.ID, "Interested")

	// Only the trade owner responds
	reason := "Not a good fit"
	req := &models.RespondToOfferRequest{Accept: boolPtr(false), ResponseMessage: &reason}
	if _, err := service.RespondToOffer(ctx, offeror.ID, offer.ID, req); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	rejected, err := service.RespondToOffer(ctx, owner.ID, offer.ID, req)
	if err != nil {
		t.Fatalf("RespondToOffer failed: %v", err)
	}
	if rejected.Status != models.OfferStatusRejected {
		t.Errorf("expected rejected status, got %s", rejected.Status)
	}
	if rejected.ResponseMessage == nil || *rejected.ResponseMessage != reason {
		t.Errorf("response message not stored: %v", rejected.ResponseMessage)
	}

	// Rejection leaves the trade on the market
	var kept models.Trade
	db.First(&kept, trade.ID)
	if kept.Status != models.TradeStatusActive {
		t.Errorf("expected trade to stay active, got %s", kept.Status)
	}

	// Responding again fails
	if _, err := service.RespondToOffer(ctx, owner.ID, offer.ID, req); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for repeat response, got %v", err)
	}
}

func TestAcceptOfferOpensTransactionAndRejectsRest(t *testing.T) {
	db := setupTestDB(t)
	service := NewOfferService(repository.NewRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	carol := createTestUser(t, db, "Carol", "carol@example.com")
	trade := createTestTrade(t, db, owner.ID, "Vintage guitar")

	accepted := createTestOffer(t, db, trade.ID, bob.ID, "My keyboard for it")
	competing := createTestOffer(t, db, trade.ID, carol.ID, "Cash offer")

	result, err := service.RespondToOffer(ctx, owner.ID, accepted.ID,
		&models.RespondToOfferRequest{Accept: boolPtr(true)})
	if err != nil {
		t.Fatalf("RespondToOffer failed: %v", err)
	}
	if result.Status != models.OfferStatusAccepted {
		t.Errorf("expected accepted status, got %s", result.Status)
	}

	// Trade moves off the market
	var updatedTrade models.Trade
	db.First(&updatedTrade, trade.ID)
	if updatedTrade.Status != models.TradeStatusUnderOffer {
		t.Errorf("expected trade under offer, got %s", updatedTrade.Status)
	}

	// A transaction is opened for the pair
	var tx models.Transaction
	if err := db.Where("trade_id = ?", trade.ID).First(&tx).Error; err != nil {
		t.Fatalf("no transaction created: %v", err)
	}
	if tx.Status != models.TransactionStatusInProgress {
		t.Errorf("expected in-progress transaction, got %s", tx.Status)
	}
	if tx.Reference == uuid.Nil {
		t.Error("expected a transaction reference")
	}
	if tx.Title != "Transaction for: Vintage guitar" {
		t.Errorf("unexpected transaction title %q", tx.Title)
	}
	if tx.Description == nil || *tx.Description != "Accepted offer: My keyboard for it" {
		t.Errorf("unexpected transaction description %v", tx.Description)
	}
	if tx.TraderID != owner.ID || tx.OfferorID != bob.ID {
		t.Errorf("wrong participants: trader %d, offeror %d", tx.TraderID, tx.OfferorID)
	}
	if tx.AcceptedOfferID != accepted.ID {
		t.Errorf("wrong accepted offer %d", tx.AcceptedOfferID)
	}

	// Competing pending offers are rejected with the system message
	var rejected models.Offer
	db.First(&rejected, competing.ID)
	if rejected.Status != models.OfferStatusRejected {
		t.Errorf("expected competing offer rejected, got %s", rejected.Status)
	}
	if rejected.ResponseMessage == nil || *rejected.ResponseMessage != models.RejectedBySystemMessage {
		t.Errorf("unexpected rejection message %v", rejected.ResponseMessage)
	}
}

func TestAcceptOfferOnInactiveTrade(t *testing.T) {
	db := setupTestDB(t)
	service := NewOfferService(repository.NewRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	trade := createTestTrade(t, db, owner.ID, "Listing")
	offer := createTestOffer(t, db, trade.ID, bob.ID, "Interested")

	db.Model(&models.Trade{}).Where("id = ?", trade.ID).
		Update("status", models.TradeStatusCancelled)

	_, err := service.RespondToOffer(ctx, owner.ID, offer.ID,
		&models.RespondToOfferRequest{Accept: boolPtr(true)})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	// Nothing was written
	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 0 {
		t.Error("transaction created for inactive trade")
	}
}
