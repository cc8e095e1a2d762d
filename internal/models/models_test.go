package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled} {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	for _, s := range []OrderStatus{"", "shipped", "PENDING", "done"} {
		assert.False(t, s.Valid(), "expected %q to be invalid", s)
	}
}

func TestPaymentStatusValid(t *testing.T) {
	assert.True(t, PaymentStatusUnpaid.Valid())
	assert.True(t, PaymentStatusPaid.Valid())

	for _, p := range []PaymentStatus{"", "refunded", "PAID"} {
		assert.False(t, p.Valid(), "expected %q to be invalid", p)
	}
}

func TestStatusColor(t *testing.T) {
	cases := map[OrderStatus]StatusColor{
		OrderStatusPending:    ColorWarning,
		OrderStatusProcessing: ColorInfo,
		OrderStatusCompleted:  ColorSuccess,
		OrderStatusCancelled:  ColorDanger,
	}

	for status, want := range cases {
		assert.Equal(t, want, status.Color())
	}

	// Defensive default for values that violate the invariant.
	assert.Equal(t, ColorSecondary, OrderStatus("bogus").Color())

	order := &Order{Status: OrderStatusCompleted}
	assert.Equal(t, ColorSuccess, order.StatusColor())
}
