package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "PENDING"
	OfferStatusAccepted  OfferStatus = "ACCEPTED"
	OfferStatusRejected  OfferStatus = "REJECTED"
	OfferStatusWithdrawn OfferStatus = "WITHDRAWN"
	OfferStatusExpired   OfferStatus = "EXPIRED"
)

// RejectedBySystemMessage is stamped on every competing pending offer
// when the trade owner accepts another one.
const RejectedBySystemMessage = "Trade accepted another offer"

// Offer is a counter-proposal against a trade: an item, money, or both.
type Offer struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Message         string           `gorm:"size:1000;not null" json:"message"`
	ItemOffered     *string          `gorm:"size:100" json:"item_offered,omitempty"`
	MonetaryOffer   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"monetary_offer,omitempty"`
	Status          OfferStatus      `gorm:"size:50;not null;default:PENDING;index" json:"status"`
	ResponseDate    *time.Time       `json:"response_date,omitempty"`
	ResponseMessage *string          `gorm:"size:500" json:"response_message,omitempty"`
	TradeID         uint             `gorm:"not null;index" json:"trade_id"`
	Trade           Trade            `gorm:"foreignKey:TradeID;constraint:OnDelete:CASCADE" json:"trade,omitempty"`
	OfferorID       uint             `gorm:"not null;index" json:"offeror_id"`
	Offeror         User             `gorm:"foreignKey:OfferorID;constraint:OnDelete:RESTRICT" json:"offeror,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName specifies the table name for Offer model
func (Offer) TableName() string {
	return "offers"
}

// CreateOfferRequest represents a request to make an offer on a trade
type CreateOfferRequest struct {
	Message       string           `json:"message" binding:"required,max=1000"`
	ItemOffered   *string          `json:"item_offered" binding:"omitempty,max=100"`
	MonetaryOffer *decimal.Decimal `json:"monetary_offer"`
}

// RespondToOfferRequest carries the trade owner's accept/reject decision
type RespondToOfferRequest struct {
	Accept          *bool   `json:"accept" binding:"required"`
	ResponseMessage *string `json:"response_message" binding:"omitempty,max=500"`
}

// OfferResponse is an offer with its offeror profile resolved
type OfferResponse struct {
	ID              uint             `json:"id"`
	Message         string           `json:"message"`
	ItemOffered     *string          `json:"item_offered,omitempty"`
	MonetaryOffer   *decimal.Decimal `json:"monetary_offer,omitempty"`
	Status          OfferStatus      `json:"status"`
	ResponseDate    *time.Time       `json:"response_date,omitempty"`
	ResponseMessage *string          `json:"response_message,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	TradeID         uint             `json:"trade_id"`
	OfferorID       uint             `json:"offeror_id"`
	Offeror         UserProfile      `json:"offeror"`
}
