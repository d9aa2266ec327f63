package models

import (
	"math"
	"testing"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusAccepted, true},
		{OrderStatusAccepted, OrderStatusAssembling, true},
		{OrderStatusAssembling, OrderStatusInTransit, true},
		{OrderStatusInTransit, OrderStatusDelivered, true},

		// No skipping ahead or moving backwards
		{OrderStatusPending, OrderStatusAssembling, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusAccepted, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusInTransit, false},

		// Cancellation from any non-terminal state
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusAssembling, OrderStatusCancelled, true},
		{OrderStatusInTransit, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},

		// Terminal states are frozen
		{OrderStatusCancelled, OrderStatusAccepted, false},
		{OrderStatusDelivered, OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s → %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusAccepted, OrderStatusAssembling, OrderStatusInTransit} {
		if s.IsTerminal() {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	if OrderStatus("shipped").IsValid() {
		t.Error("IsValid(shipped) = true, want false")
	}
	if !OrderStatusInTransit.IsValid() {
		t.Error("IsValid(in_transit) = false, want true")
	}
}

func TestOrder_TotalSnapshotValue(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{Quantity: 5, UnitPriceSnapshot: 18.50},
			{Quantity: 8, UnitPriceSnapshot: 14.90},
		},
	}
	if got := order.TotalSnapshotValue(); math.Abs(got-211.70) > 0.001 {
		t.Errorf("TotalSnapshotValue() = %v, want 211.70", got)
	}
}

func TestOrder_TotalSnapshotValue_FrozenAgainstPriceChanges(t *testing.T) {
	// A 2% price drop on the live product must not move the total;
	// only re-snapshotting the items does.
	order := &Order{
		Items: []OrderItem{
			{Quantity: 5, UnitPriceSnapshot: 18.50},
			{Quantity: 8, UnitPriceSnapshot: 14.90},
		},
	}
	before := order.TotalSnapshotValue()

	for i := range order.Items {
		order.Items[i].UnitPriceSnapshot *= 0.98
	}
	after := order.TotalSnapshotValue()

	if math.Abs(before-211.70) > 0.001 {
		t.Errorf("total before = %v, want 211.70", before)
	}
	if math.Abs(after-207.466) > 0.001 {
		t.Errorf("total after re-snapshot = %v, want 207.466", after)
	}
}

func TestOrder_TotalSnapshotValue_Empty(t *testing.T) {
	order := &Order{}
	if got := order.TotalSnapshotValue(); got != 0 {
		t.Errorf("TotalSnapshotValue() = %v, want 0", got)
	}
}
