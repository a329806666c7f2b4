// Package cancelpolicy decides whether an order may still be cancelled
// by its owner. The decision is a pure function of the order snapshot:
// no I/O, no error path, safe to call concurrently.
package cancelpolicy

import (
	"strings"

	"go-storefront/internal/storefront/data"
)

// CanCancel reports whether cancellation is currently permitted for the
// given order snapshot. The policy is default-deny: a nil order, a
// missing field, or a status or payment method outside the known sets
// always yields false. Matching is case-insensitive.
//
// Card payments (stripe) are captured at order creation, so they are
// never cancellable here; a refund flow outside this policy would be
// needed instead. Cash orders stop being cancellable once the payment
// has been confirmed as received.
func CanCancel(order *data.Order) bool {
	if order == nil {
		return false
	}

	status := strings.ToLower(string(order.Status))
	payment := strings.ToLower(string(order.PaymentMethod))

	switch status {
	case "completed", "cancelled", "delivered":
		return false
	}

	if payment == "stripe" {
		return false
	}

	if payment == "cash" {
		switch status {
		case "confirmed":
			return false
		case "pending", "processing":
			return true
		}
	}

	return false
}
