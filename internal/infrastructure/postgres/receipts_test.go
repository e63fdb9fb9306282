package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/example/traillend-client/internal/domain/inventory"
	"github.com/example/traillend-client/internal/domain/reservation"
)

// Integration test; needs a reachable postgres. Skipped unless
// TRAILLEND_TEST_DATABASE_URL is set.
func TestArchiveRoundTrip(t *testing.T) {
	url := os.Getenv("TRAILLEND_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TRAILLEND_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := OpenArchive(ctx, url)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	defer a.Close()

	if err := a.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	loc := time.FixedZone("Asia/Manila", 8*60*60)
	w, err := reservation.ComposeWindow("2025-07-22", "2:00 PM - 3:30 PM", loc)
	if err != nil {
		t.Fatal(err)
	}
	r := reservation.Receipt{
		TransactionID: "t-archive-test",
		Item:          inventory.ItemRef{ID: 7, Name: "DSLR Camera", Department: "SCITC"},
		Window:        w,
		Fee:           "₱50.00",
	}

	if err := a.Save(ctx, r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Saving again must upsert, not error.
	if err := a.Save(ctx, r); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	rows, err := a.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	var found bool
	for _, row := range rows {
		if row.TransactionID == "t-archive-test" {
			found = true
			if row.ItemName != "DSLR Camera" || row.Fee != "₱50.00" {
				t.Errorf("unexpected row: %+v", row)
			}
			if row.StartAt == nil {
				t.Error("start_at not stored")
			}
		}
	}
	if !found {
		t.Error("archived receipt not listed")
	}
}
