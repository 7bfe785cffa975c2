package dto

import "brewline/internal/domain"

type PlaceOrderRequest struct {
	ItemName   string `json:"itemName"`
	CupSize    string `json:"cupSize"`
	SugarLevel string `json:"sugarLevel"`
	Quantity   int    `json:"quantity"`
	OrderType  string `json:"orderType"`
}

type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Order mirrors the document field names of the orders collection.
type Order struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	ItemName      string  `json:"itemName"`
	CupSize       string  `json:"cupSize"`
	SugarLevel    string  `json:"sugarLevel"`
	Quantity      int     `json:"quantity"`
	OrderType     string  `json:"orderType"`
	Status        string  `json:"status"`
	FeedbackGiven bool    `json:"appFeedbackGiven"`
	Rating        *int    `json:"appRating,omitempty"`
	Comment       *string `json:"appComment,omitempty"`
}

func OrderFromDomain(o domain.Order) Order {
	return Order{
		ID:            o.ID,
		UserID:        o.UserID,
		ItemName:      o.ItemName,
		CupSize:       o.CupSize,
		SugarLevel:    o.SugarLevel,
		Quantity:      o.Quantity,
		OrderType:     o.OrderType,
		Status:        o.Status,
		FeedbackGiven: o.FeedbackGiven,
		Rating:        o.Rating,
		Comment:       o.Comment,
	}
}

func OrdersFromDomain(orders []domain.Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = OrderFromDomain(o)
	}
	return out
}
