package controllers

import "github.com/Brighttier/Chatbot-Peptides-sub001/sales"

// UpdateSaleRequest is the tagged body for PUT /api/sales/:id. Only the
// fields present are applied; Reason is required whenever Status differs
// from the sale's current status.
type UpdateSaleRequest struct {
	Status     *string  `json:"status"`
	SaleAmount *float64 `json:"saleAmount"`
	Notes      *string  `json:"notes"`
	Reason     string   `json:"reason"`
}

func (r UpdateSaleRequest) toCore() sales.UpdateRequest {
	return sales.UpdateRequest{
		Status:     r.Status,
		SaleAmount: r.SaleAmount,
		Notes:      r.Notes,
		Reason:     r.Reason,
	}
}

// CreateSaleRequest is the body for POST /api/sales (manual entry).
type CreateSaleRequest struct {
	ConversationID    int64   `json:"conversationId"`
	CustomerName      string  `json:"customerName"`
	CustomerPhone     string  `json:"customerPhone"`
	CustomerInstagram string  `json:"customerInstagram"`
	Channel           string  `json:"channel"`
	SaleAmount        float64 `json:"saleAmount"`
	ProductDetails    string  `json:"productDetails"`
	Notes             string  `json:"notes"`
}

func (r CreateSaleRequest) toCore() sales.ManualSaleInput {
	return sales.ManualSaleInput{
		ConversationID:    r.ConversationID,
		CustomerName:      r.CustomerName,
		CustomerPhone:     r.CustomerPhone,
		CustomerInstagram: r.CustomerInstagram,
		Channel:           r.Channel,
		SaleAmount:        r.SaleAmount,
		ProductDetails:    r.ProductDetails,
		Notes:             r.Notes,
	}
}
