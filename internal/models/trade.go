package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeStatus string

const (
	TradeStatusActive     TradeStatus = "ACTIVE"
	TradeStatusUnderOffer TradeStatus = "UNDER_OFFER"
	TradeStatusCompleted  TradeStatus = "COMPLETED"
	TradeStatusCancelled  TradeStatus = "CANCELLED"
	TradeStatusExpired    TradeStatus = "EXPIRED"
)

// Trade represents a barter listing: one item or service offered in
// exchange for another, optionally with an estimated monetary value.
type Trade struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	Title          string           `gorm:"size:200;not null" json:"title"`
	Description    string           `gorm:"size:1000;not null" json:"description"`
	ItemOffered    string           `gorm:"size:100;not null" json:"item_offered"`
	ItemSought     string           `gorm:"size:100;not null" json:"item_sought"`
	Category       *string          `gorm:"size:50;index" json:"category,omitempty"`
	Location       *string          `gorm:"size:100" json:"location,omitempty"`
	EstimatedValue *decimal.Decimal `gorm:"type:decimal(15,2)" json:"estimated_value,omitempty"`
	IsNegotiable   bool             `gorm:"default:true" json:"is_negotiable"`
	ExpiryDate     *time.Time       `json:"expiry_date,omitempty"`
	ImageURLs      *string          `gorm:"size:500" json:"image_urls,omitempty"`
	Condition      *string          `gorm:"size:100" json:"condition,omitempty"`
	ViewCount      int              `gorm:"default:0" json:"view_count"`
	Status         TradeStatus      `gorm:"size:50;not null;default:ACTIVE;index" json:"status"`
	Version        uint             `gorm:"not null;default:1" json:"-"`
	UserID         uint             `gorm:"not null;index" json:"user_id"`
	User           User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Offers         []Offer          `gorm:"foreignKey:TradeID" json:"offers,omitempty"`
	CreatedAt      time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TableName specifies the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}

// CreateTradeRequest represents a request to create a new trade listing
type CreateTradeRequest struct {
	Title          string           `json:"title" binding:"required,max=200"`
	Description    string           `json:"description" binding:"required,max=1000"`
	ItemOffered    string           `json:"item_offered" binding:"required,max=100"`
	ItemSought     string           `json:"item_sought" binding:"required,max=100"`
	Category       *string          `json:"category" binding:"omitempty,max=50"`
	Location       *string          `json:"location" binding:"omitempty,max=100"`
	EstimatedValue *decimal.Decimal `json:"estimated_value"`
	IsNegotiable   *bool            `json:"is_negotiable"`
	ExpiryDate     *time.Time       `json:"expiry_date"`
	ImageURLs      *string          `json:"image_urls" binding:"omitempty,max=500"`
	Condition      *string          `json:"condition" binding:"omitempty,max=100"`
}

// UpdateTradeRequest carries a partial trade update. Presence of a field
// decides whether it overwrites, not its value.
type UpdateTradeRequest struct {
	Title          *string          `json:"title" binding:"omitempty,max=200"`
	Description    *string          `json:"description" binding:"omitempty,max=1000"`
	ItemOffered    *string          `json:"item_offered" binding:"omitempty,max=100"`
	ItemSought     *string          `json:"item_sought" binding:"omitempty,max=100"`
	Category       *string          `json:"category" binding:"omitempty,max=50"`
	Location       *string          `json:"location" binding:"omitempty,max=100"`
	EstimatedValue *decimal.Decimal `json:"estimated_value"`
	IsNegotiable   *bool            `json:"is_negotiable"`
	ExpiryDate     *time.Time       `json:"expiry_date"`
	ImageURLs      *string          `json:"image_urls" binding:"omitempty,max=500"`
	Condition      *string          `json:"condition" binding:"omitempty,max=100"`
}

// TradeSearch holds the optional list filters plus pagination
type TradeSearch struct {
	Category     *string
	Location     *string
	ItemSought   *string
	ItemOffered  *string
	MinValue     *decimal.Decimal
	MaxValue     *decimal.Decimal
	IsNegotiable *bool
	Condition    *string
	SearchTerm   *string
	Page         int
	PageSize     int
}

// TradeResponse is a trade with its owner and offers resolved
type TradeResponse struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	ItemOffered    string           `json:"item_offered"`
	ItemSought     string           `json:"item_sought"`
	Category       *string          `json:"category,omitempty"`
	Location       *string          `json:"location,omitempty"`
	EstimatedValue *decimal.Decimal `json:"estimated_value,omitempty"`
	IsNegotiable   bool             `json:"is_negotiable"`
	ExpiryDate     *time.Time       `json:"expiry_date,omitempty"`
	ImageURLs      *string          `json:"image_urls,omitempty"`
	Condition      *string          `json:"condition,omitempty"`
	ViewCount      int              `json:"view_count"`
	Status         TradeStatus      `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	UserID         uint             `json:"user_id"`
	User           UserProfile      `json:"user"`
	Offers         []OfferResponse  `json:"offers"`
}

// TradePage is the paginated list response shape
type TradePage struct {
	Items      []TradeResponse `json:"items"`
	TotalCount int64           `json:"totalCount"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}
