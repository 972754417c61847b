package model

import "testing"

func TestPaymentStatusAllowedFrom(t *testing.T) {
	allowed := func(from, to PaymentStatus) bool {
		for _, s := range to.AllowedFrom() {
			if s == from {
				return true
			}
		}
		return false
	}
	tests := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentPending, PaymentPaid, true},
		{PaymentFailed, PaymentPaid, true},
		{PaymentPaid, PaymentPaid, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPaid, PaymentFailed, false},
		{PaymentFulfilled, PaymentPaid, false},
		{PaymentFulfilled, PaymentFailed, false},
		{PaymentPaid, PaymentFulfilled, true},
		{PaymentPending, PaymentFulfilled, false},
		{PaymentPaid, PaymentPending, false},
	}
	for _, tt := range tests {
		if got := allowed(tt.from, tt.to); got != tt.want {
			t.Errorf("%s -> %s allowed = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
	if PaymentStatus("refunded").AllowedFrom() != nil {
		t.Error("unknown status should allow no transitions")
	}
}
