package data

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

// Stored lower-case; anything outside this set is treated as unknown,
// never rejected at the type level.
const (
	NullStatus       = Status("")
	PendingStatus    = Status("pending")
	ProcessingStatus = Status("processing")
	ConfirmedStatus  = Status("confirmed")
	CompletedStatus  = Status("completed")
	DeliveredStatus  = Status("delivered")
	CancelledStatus  = Status("cancelled")
)

type PaymentMethod string

const (
	NullPayment   = PaymentMethod("")
	CashPayment   = PaymentMethod("cash")
	StripePayment = PaymentMethod("stripe")
)

type Order struct {
	CreatedAt     time.Time
	Status        Status
	PaymentMethod PaymentMethod
	Total         decimal.Decimal
	ID            int64
	UserID        int
}
