package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionStatusInProgress TransactionStatus = "IN_PROGRESS"
	TransactionStatusCompleted  TransactionStatus = "COMPLETED"
	TransactionStatusCancelled  TransactionStatus = "CANCELLED"
	TransactionStatusDisputed   TransactionStatus = "DISPUTED"
)

// Transaction records an accepted offer being carried out between the
// trade owner (trader) and the offeror. Created exactly once per trade,
// never deleted.
type Transaction struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	Reference       uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"reference"`
	Title           string            `gorm:"size:200;not null" json:"title"`
	Description     *string           `gorm:"size:1000" json:"description,omitempty"`
	Status          TransactionStatus `gorm:"size:50;not null;default:IN_PROGRESS;index" json:"status"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	CompletionNotes *string           `gorm:"size:1000" json:"completion_notes,omitempty"`
	TraderRating    *int              `json:"trader_rating,omitempty"`
	OfferorRating   *int              `json:"offeror_rating,omitempty"`
	TraderReview    *string           `gorm:"size:500" json:"trader_review,omitempty"`
	OfferorReview   *string           `gorm:"size:500" json:"offeror_review,omitempty"`
	TradeID         uint              `gorm:"not null;index" json:"trade_id"`
	Trade           Trade             `gorm:"foreignKey:TradeID;constraint:OnDelete:CASCADE" json:"trade,omitempty"`
	AcceptedOfferID uint              `gorm:"not null;index" json:"accepted_offer_id"`
	AcceptedOffer   Offer             `gorm:"foreignKey:AcceptedOfferID;constraint:OnDelete:RESTRICT" json:"accepted_offer,omitempty"`
	TraderID        uint              `gorm:"not null;index" json:"trader_id"`
	Trader          User              `gorm:"foreignKey:TraderID;constraint:OnDelete:RESTRICT" json:"trader,omitempty"`
	OfferorID       uint              `gorm:"not null;index" json:"offeror_id"`
	Offeror         User              `gorm:"foreignKey:OfferorID;constraint:OnDelete:RESTRICT" json:"offeror,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// TableName specifies the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// CompleteTransactionRequest carries optional notes for completion
type CompleteTransactionRequest struct {
	CompletionNotes *string `json:"completion_notes" binding:"omitempty,max=1000"`
}

// RateTransactionRequest carries a participant's rating and review
type RateTransactionRequest struct {
	Rating int     `json:"rating" binding:"required,min=1,max=5"`
	Review *string `json:"review" binding:"omitempty,max=500"`
}

// CancelTransactionRequest requires a reason for cancellation
type CancelTransactionRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// TransactionResponse is a transaction with all parties resolved
type TransactionResponse struct {
	ID              uint              `json:"id"`
	Reference       uuid.UUID         `json:"reference"`
	Title           string            `json:"title"`
	Description     *string           `json:"description,omitempty"`
	Status          TransactionStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	CompletionNotes *string           `json:"completion_notes,omitempty"`
	TraderRating    *int              `json:"trader_rating,omitempty"`
	OfferorRating   *int              `json:"offeror_rating,omitempty"`
	TraderReview    *string           `json:"trader_review,omitempty"`
	OfferorReview   *string           `json:"offeror_review,omitempty"`
	Trade           TradeResponse     `json:"trade"`
	AcceptedOffer   OfferResponse     `json:"accepted_offer"`
	Trader          UserProfile       `json:"trader"`
	Offeror         UserProfile       `json:"offeror"`
}
