package testfixtures

import (
	"context"
	"testing"

	"github.com/example/campus-booking/internal/persistence"
)

func TestStorageHarness(t *testing.T) {
	seed := []persistence.Resource{NewResourceFixture().Persistence()}
	harness := NewStorageHarness(t, seed)

	resources, err := harness.Storage.ListResources(context.Background())
	if err != nil {
		t.Fatalf("failed to list resources: %v", err)
	}
	if len(resources) != 1 || resources[0].ID != seed[0].ID {
		t.Fatalf("expected seeded catalog, got %+v", resources)
	}

	booking := NewBookingFixture(ForResource(seed[0].ID)).Persistence()
	if err := harness.Storage.CreateBooking(context.Background(), booking); err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	// The mutation must be visible through the raw key-value port.
	if _, err := harness.KV.Load(context.Background(), persistence.BookingsKey); err != nil {
		t.Fatalf("expected bookings blob to be written, got %v", err)
	}
}
