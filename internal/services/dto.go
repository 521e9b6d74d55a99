package services

import (
	"softbarter/internal/models"
)

// toOfferResponse assembles the offer DTO with its offeror profile
func toOfferResponse(offer *models.Offer) models.OfferResponse {
	return models.OfferResponse{
		ID:              offer.ID,
		Message:         offer.Message,
		ItemOffered:     offer.ItemOffered,
		MonetaryOffer:   offer.MonetaryOffer,
		Status:          offer.Status,
		ResponseDate:    offer.ResponseDate,
		ResponseMessage: offer.ResponseMessage,
		CreatedAt:       offer.CreatedAt,
		TradeID:         offer.TradeID,
		OfferorID:       offer.OfferorID,
		Offeror:         offer.Offeror.Profile(),
	}
}

// toTradeResponse assembles the trade DTO with owner and offers
func toTradeResponse(trade *models.Trade) models.TradeResponse {
	offers := make([]models.OfferResponse, 0, len(trade.Offers))
	for i := range trade.Offers {
		offers = append(offers, toOfferResponse(&trade.Offers[i]))
	}

	return models.TradeResponse{
		ID:             trade.ID,
		Title:          trade.Title,
		Description:    trade.Description,
		ItemOffered:    trade.ItemOffered,
		ItemSought:     trade.ItemSought,
		Category:       trade.Category,
		Location:       trade.Location,
		EstimatedValue: trade.EstimatedValue,
		IsNegotiable:   trade.IsNegotiable,
		ExpiryDate:     trade.ExpiryDate,
		ImageURLs:      trade.ImageURLs,
		Condition:      trade.Condition,
		ViewCount:      trade.ViewCount,
		Status:         trade.Status,
		CreatedAt:      trade.CreatedAt,
		UpdatedAt:      trade.UpdatedAt,
		UserID:         trade.UserID,
		User:           trade.User.Profile(),
		Offers:         offers,
	}
}

// toTransactionResponse assembles the transaction DTO with all parties
func toTransactionResponse(tx *models.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:              tx.ID,
		Reference:       tx.Reference,
		Title:           tx.Title,
		Description:     tx.Description,
		Status:          tx.Status,
		CreatedAt:       tx.CreatedAt,
		CompletedAt:     tx.CompletedAt,
		CompletionNotes: tx.CompletionNotes,
		TraderRating:    tx.TraderRating,
		OfferorRating:   tx.OfferorRating,
		TraderReview:    tx.TraderReview,
		OfferorReview:   tx.OfferorReview,
		Trade:           toTradeResponse(&tx.Trade),
		AcceptedOffer:   toOfferResponse(&tx.AcceptedOffer),
		Trader:          tx.Trader.Profile(),
		Offeror:         tx.Offeror.Profile(),
	}
}
