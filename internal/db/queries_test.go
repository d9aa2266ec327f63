package db

import (
	"strings"
	"testing"
	"time"
)

func TestBuildProductListQuery_NoFilters(t *testing.T) {
	query, args := BuildProductListQuery(ProductFilter{})

	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
	if !strings.Contains(query, "JOIN supplier_profiles") {
		t.Error("query should join supplier_profiles for supplier filters")
	}
	if !strings.HasSuffix(query, "ORDER BY p.id") {
		t.Errorf("default ordering should be p.id, got: %s", query)
	}
}

func TestBuildProductListQuery_AllFilters(t *testing.T) {
	verified := true
	farmer := false
	query, args := BuildProductListQuery(ProductFilter{
		Category:         "vegetables",
		SupplierVerified: &verified,
		SupplierFarmer:   &farmer,
		Search:           "tomato",
	})

	if len(args) != 4 {
		t.Fatalf("args = %v, want 4", args)
	}
	if args[0] != "vegetables" || args[1] != true || args[2] != false || args[3] != "%tomato%" {
		t.Errorf("unexpected args: %v", args)
	}
	for _, fragment := range []string{
		"p.category = $1",
		"s.verified = $2",
		"s.is_farmer = $3",
		"p.name ILIKE $4 OR p.category ILIKE $4 OR s.company_name ILIKE $4",
	} {
		if !strings.Contains(query, fragment) {
			t.Errorf("query missing %q:\n%s", fragment, query)
		}
	}
}

func TestBuildProductListQuery_Ordering(t *testing.T) {
	tests := []struct {
		ordering string
		want     string
	}{
		{"price_per_unit", "ORDER BY p.price_per_unit"},
		{"-price_per_unit", "ORDER BY p.price_per_unit DESC"},
		{"available_from", "ORDER BY p.available_from"},
		{"-available_from", "ORDER BY p.available_from DESC"},
		{"", "ORDER BY p.id"},
		{"name; DROP TABLE products", "ORDER BY p.id"},
	}

	for _, tt := range tests {
		query, _ := BuildProductListQuery(ProductFilter{Ordering: tt.ordering})
		if !strings.HasSuffix(query, tt.want) {
			t.Errorf("ordering %q: query ends %q, want suffix %q",
				tt.ordering, query[len(query)-40:], tt.want)
		}
	}
}

func TestBuildOfferListQuery_DefaultOrdersBestBidFirst(t *testing.T) {
	query, args := BuildOfferListQuery(OfferFilter{})

	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
	if !strings.HasSuffix(query, "ORDER BY price, delivery_eta") {
		t.Errorf("default offer ordering should be price then eta, got: %s", query)
	}
}

func TestBuildOfferListQuery_Filters(t *testing.T) {
	orderID := 7
	supplierID := 3
	query, args := BuildOfferListQuery(OfferFilter{
		OrderID:    &orderID,
		SupplierID: &supplierID,
		Ordering:   "-price",
	})

	if len(args) != 2 || args[0] != 7 || args[1] != 3 {
		t.Errorf("unexpected args: %v", args)
	}
	if !strings.Contains(query, "order_id = $1") || !strings.Contains(query, "supplier_id = $2") {
		t.Errorf("query missing filters:\n%s", query)
	}
	if !strings.HasSuffix(query, "ORDER BY price DESC, delivery_eta") {
		t.Errorf("unexpected ordering:\n%s", query)
	}
}

func TestBuildWaitlistQuery(t *testing.T) {
	productID := 4
	notified := false
	query, args := BuildWaitlistQuery(WaitlistFilter{ProductID: &productID, Notified: &notified})

	if len(args) != 2 || args[0] != 4 || args[1] != false {
		t.Errorf("unexpected args: %v", args)
	}
	if !strings.Contains(query, "product_id = $1") || !strings.Contains(query, "notified = $2") {
		t.Errorf("query missing filters:\n%s", query)
	}
}

func TestBuildCalendarListQuery_DateFilter(t *testing.T) {
	day := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	query, args := BuildCalendarListQuery(CalendarFilter{Date: &day, EventType: "order"})

	if len(args) != 2 {
		t.Fatalf("args = %v, want 2", args)
	}
	if !strings.Contains(query, "event_type = $1") || !strings.Contains(query, "date = $2") {
		t.Errorf("query missing filters:\n%s", query)
	}
}

func TestBuildReviewListQuery_Ordering(t *testing.T) {
	query, _ := BuildReviewListQuery(ReviewFilter{Ordering: "-created_at"})
	if !strings.HasSuffix(query, "ORDER BY created_at DESC") {
		t.Errorf("unexpected ordering:\n%s", query)
	}

	query, _ = BuildReviewListQuery(ReviewFilter{})
	if !strings.HasSuffix(query, "ORDER BY created_at") {
		t.Errorf("default should be oldest first:\n%s", query)
	}
}
