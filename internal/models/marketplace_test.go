package models

import "testing"

func TestPreOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from PreOrderStatus
		to   PreOrderStatus
		want bool
	}{
		{PreOrderStatusReserved, PreOrderStatusConfirmed, true},
		{PreOrderStatusConfirmed, PreOrderStatusFulfilled, true},
		{PreOrderStatusReserved, PreOrderStatusFulfilled, false},
		{PreOrderStatusReserved, PreOrderStatusCancelled, true},
		{PreOrderStatusConfirmed, PreOrderStatusCancelled, true},
		{PreOrderStatusFulfilled, PreOrderStatusCancelled, false},
		{PreOrderStatusCancelled, PreOrderStatusConfirmed, false},
		{PreOrderStatusFulfilled, PreOrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s → %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCalendarEventStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from CalendarEventStatus
		to   CalendarEventStatus
		want bool
	}{
		{EventStatusScheduled, EventStatusCompleted, true},
		{EventStatusScheduled, EventStatusCancelled, true},
		{EventStatusCompleted, EventStatusCancelled, false},
		{EventStatusCancelled, EventStatusScheduled, false},
		{EventStatusScheduled, EventStatusScheduled, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s → %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCalendarEvent_ValidateLinks(t *testing.T) {
	orderID := 10
	preorderID := 20

	tests := []struct {
		name    string
		event   CalendarEvent
		wantErr bool
	}{
		{"order event with order link", CalendarEvent{EventType: EventTypeOrder, OrderID: &orderID}, false},
		{"preorder event with preorder link", CalendarEvent{EventType: EventTypePreOrder, PreOrderID: &preorderID}, false},
		{"order event missing order link", CalendarEvent{EventType: EventTypeOrder}, true},
		{"preorder event missing preorder link", CalendarEvent{EventType: EventTypePreOrder}, true},
		{"order event with both links", CalendarEvent{EventType: EventTypeOrder, OrderID: &orderID, PreOrderID: &preorderID}, true},
		{"preorder event with order link only", CalendarEvent{EventType: EventTypePreOrder, OrderID: &orderID}, true},
		{"unknown event type", CalendarEvent{EventType: "meeting", OrderID: &orderID}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.ValidateLinks()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLinks() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
