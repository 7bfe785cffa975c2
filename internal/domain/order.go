package domain

import (
	"fmt"
	"time"
)

type Order struct {
	ID            string
	UserID        string
	ItemName      string
	CupSize       string
	SugarLevel    string
	Quantity      int
	OrderType     string
	Status        string
	FeedbackGiven bool
	Rating        *int
	Comment       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
)

const (
	OrderTypeDelivery = "Delivery"
	OrderTypeOnSite   = "OnSite"
)

// SelectorNotApplicable is the cup-size/sugar-level value for items the
// selector does not apply to (snacks, bottled drinks).
const SelectorNotApplicable = "N/A"

func ValidOrderType(orderType string) bool {
	return orderType == OrderTypeDelivery || orderType == OrderTypeOnSite
}

func ValidOrderStatus(status string) bool {
	return status == OrderStatusPending || status == OrderStatusCompleted
}

// CanTransition reports whether an order may move between the two statuses.
// Completed is terminal; re-completing a completed order is allowed so the
// staff action stays idempotent.
func CanTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPending || to == OrderStatusCompleted
	case OrderStatusCompleted:
		return to == OrderStatusCompleted
	default:
		return false
	}
}

// NotificationText renders the order summary shown in notification lists.
// Completion removes notifications by exact string match, so this must be
// reproducible from the same order fields.
func (o Order) NotificationText() string {
	return fmt.Sprintf("%d x %s ordered (%s)", o.Quantity, o.ItemName, o.OrderType)
}
