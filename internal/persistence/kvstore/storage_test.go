package kvstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/campus-booking/internal/persistence"
	"github.com/example/campus-booking/internal/persistence/memory"
)

func testSeed() []persistence.Resource {
	created := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
	return []persistence.Resource{
		{ID: 1, Name: "Quantum Lab 1", Type: "lab", Capacity: 30, Attended: 12, Utilization: 45, Status: "available", CreatedAt: created, UpdatedAt: created},
		{ID: 2, Name: "Main Auditorium", Type: "classroom", Capacity: 200, Attended: 45, Utilization: 15, Status: "available", CreatedAt: created, UpdatedAt: created},
	}
}

func testBooking(id, resourceID int64) persistence.Booking {
	created := time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC)
	return persistence.Booking{
		ID:         id,
		ResourceID: resourceID,
		Date:       "2024-01-03",
		StartTime:  "09:00",
		EndTime:    "10:00",
		Purpose:    "seminar",
		Status:     "pending",
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

// failingKV wraps a working store and fails writes for configured keys.
type failingKV struct {
	inner    *memory.Store
	failKeys map[string]bool
}

func (f *failingKV) Save(ctx context.Context, key string, value []byte) error {
	if f.failKeys[key] {
		return fmt.Errorf("disk full")
	}
	return f.inner.Save(ctx, key, value)
}

func (f *failingKV) Load(ctx context.Context, key string) ([]byte, error) {
	return f.inner.Load(ctx, key)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a key-value port", func(t *testing.T) {
		if _, err := Open(ctx, nil, nil); err == nil {
			t.Fatalf("expected error for missing port")
		}
	})

	t.Run("seeds absent collections without writing", func(t *testing.T) {
		kv := memory.New()
		storage, err := Open(ctx, kv, testSeed())
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		resources, err := storage.ListResources(ctx)
		if err != nil {
			t.Fatalf("failed to list resources: %v", err)
		}
		if len(resources) != 2 || resources[0].Name != "Quantum Lab 1" {
			t.Fatalf("expected seed catalog, got %+v", resources)
		}

		bookings, err := storage.ListBookings(ctx)
		if err != nil {
			t.Fatalf("failed to list bookings: %v", err)
		}
		if len(bookings) != 0 {
			t.Fatalf("expected empty bookings, got %+v", bookings)
		}

		// The seed lives only in memory until the first mutation.
		if _, err := kv.Load(ctx, persistence.ResourcesKey); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected no write at open, got %v", err)
		}
	})

	t.Run("stored collections win over the seed", func(t *testing.T) {
		kv := memory.New()
		first, err := Open(ctx, kv, testSeed())
		if err != nil {
			t.Fatalf("failed to open: %v", err)
		}
		if err := first.CreateResource(ctx, persistence.Resource{ID: 3, Name: "History Wing A", Type: "classroom"}); err != nil {
			t.Fatalf("failed to create resource: %v", err)
		}

		second, err := Open(ctx, kv, nil)
		if err != nil {
			t.Fatalf("failed to reopen: %v", err)
		}
		resources, err := second.ListResources(ctx)
		if err != nil {
			t.Fatalf("failed to list resources: %v", err)
		}
		if len(resources) != 3 {
			t.Fatalf("expected persisted catalog of 3, got %+v", resources)
		}
	})

	t.Run("rejects corrupted blobs", func(t *testing.T) {
		kv := memory.New()
		if err := kv.Save(ctx, persistence.ResourcesKey, []byte("{not json")); err != nil {
			t.Fatalf("failed to save blob: %v", err)
		}
		if _, err := Open(ctx, kv, nil); err == nil {
			t.Fatalf("expected decode error")
		}
	})
}

func TestStorage_ResourceRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	storage, err := Open(ctx, kv, nil)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}

	seed := testSeed()
	for _, resource := range seed {
		if err := storage.CreateResource(ctx, resource); err != nil {
			t.Fatalf("failed to create resource %d: %v", resource.ID, err)
		}
	}

	t.Run("rejects duplicate IDs", func(t *testing.T) {
		if err := storage.CreateResource(ctx, seed[0]); err == nil {
			t.Fatalf("expected duplicate error")
		}
	})

	t.Run("updates in place", func(t *testing.T) {
		updated := seed[0]
		updated.Name = "Quantum Lab 1b"
		if err := storage.UpdateResource(ctx, updated); err != nil {
			t.Fatalf("failed to update: %v", err)
		}

		got, err := storage.GetResource(ctx, updated.ID)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got.Name != "Quantum Lab 1b" {
			t.Fatalf("expected updated name, got %q", got.Name)
		}

		resources, _ := storage.ListResources(ctx)
		if resources[0].ID != 1 || resources[1].ID != 2 {
			t.Fatalf("expected insertion order preserved, got %+v", resources)
		}
	})

	t.Run("reports missing resources", func(t *testing.T) {
		if _, err := storage.GetResource(ctx, 99); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := storage.UpdateResource(ctx, persistence.Resource{ID: 99}); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := storage.DeleteResource(ctx, 99); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("survives a reopen", func(t *testing.T) {
		reopened, err := Open(ctx, kv, nil)
		if err != nil {
			t.Fatalf("failed to reopen: %v", err)
		}
		resources, err := reopened.ListResources(ctx)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(resources) != 2 || resources[0].Name != "Quantum Lab 1b" {
			t.Fatalf("expected persisted state, got %+v", resources)
		}
	})
}

func TestStorage_BookingRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	storage, err := Open(ctx, kv, testSeed())
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}

	booking := testBooking(10, 1)
	if err := storage.CreateBooking(ctx, booking); err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	t.Run("rejects duplicate IDs", func(t *testing.T) {
		if err := storage.CreateBooking(ctx, booking); err == nil {
			t.Fatalf("expected duplicate error")
		}
	})

	t.Run("updates in place", func(t *testing.T) {
		updated := booking
		updated.Status = "confirmed"
		if err := storage.UpdateBooking(ctx, updated); err != nil {
			t.Fatalf("failed to update: %v", err)
		}

		got, err := storage.GetBooking(ctx, 10)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got.Status != "confirmed" {
			t.Fatalf("expected confirmed, got %q", got.Status)
		}
	})

	t.Run("reports missing bookings", func(t *testing.T) {
		if _, err := storage.GetBooking(ctx, 99); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := storage.DeleteBooking(ctx, 99); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("deletes and persists", func(t *testing.T) {
		if err := storage.DeleteBooking(ctx, 10); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		reopened, err := Open(ctx, kv, nil)
		if err != nil {
			t.Fatalf("failed to reopen: %v", err)
		}
		bookings, err := reopened.ListBookings(ctx)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(bookings) != 0 {
			t.Fatalf("expected no bookings after delete, got %+v", bookings)
		}
	})
}

func TestStorage_DeleteResourceCascades(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	storage, err := Open(ctx, kv, testSeed())
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}

	for i, resourceID := range []int64{1, 1, 2} {
		if err := storage.CreateBooking(ctx, testBooking(int64(10+i), resourceID)); err != nil {
			t.Fatalf("failed to create booking: %v", err)
		}
	}

	if err := storage.DeleteResource(ctx, 1); err != nil {
		t.Fatalf("failed to delete resource: %v", err)
	}

	resources, _ := storage.ListResources(ctx)
	if len(resources) != 1 || resources[0].ID != 2 {
		t.Fatalf("expected only resource 2 to remain, got %+v", resources)
	}

	bookings, _ := storage.ListBookings(ctx)
	if len(bookings) != 1 || bookings[0].ResourceID != 2 {
		t.Fatalf("expected only the resource 2 booking to remain, got %+v", bookings)
	}

	reopened, err := Open(ctx, kv, nil)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	persisted, _ := reopened.ListBookings(ctx)
	if len(persisted) != 1 || persisted[0].ResourceID != 2 {
		t.Fatalf("expected cascade to be persisted, got %+v", persisted)
	}
}

func TestStorage_FailedWritesLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()

	t.Run("create is rolled back", func(t *testing.T) {
		kv := &failingKV{inner: memory.New(), failKeys: map[string]bool{persistence.ResourcesKey: true}}
		storage, err := Open(ctx, kv, testSeed())
		if err != nil {
			t.Fatalf("failed to open: %v", err)
		}

		if err := storage.CreateResource(ctx, persistence.Resource{ID: 3, Name: "History Wing A"}); err == nil {
			t.Fatalf("expected write failure")
		}

		resources, _ := storage.ListResources(ctx)
		if len(resources) != 2 {
			t.Fatalf("expected in-memory state unchanged, got %+v", resources)
		}
	})

	t.Run("cascade restores bookings when the resource write fails", func(t *testing.T) {
		inner := memory.New()
		kv := &failingKV{inner: inner, failKeys: map[string]bool{}}
		storage, err := Open(ctx, kv, testSeed())
		if err != nil {
			t.Fatalf("failed to open: %v", err)
		}
		if err := storage.CreateBooking(ctx, testBooking(10, 1)); err != nil {
			t.Fatalf("failed to create booking: %v", err)
		}

		kv.failKeys[persistence.ResourcesKey] = true
		if err := storage.DeleteResource(ctx, 1); err == nil {
			t.Fatalf("expected write failure")
		}

		bookings, _ := storage.ListBookings(ctx)
		if len(bookings) != 1 {
			t.Fatalf("expected booking retained in memory, got %+v", bookings)
		}

		reopened, err := Open(ctx, inner, nil)
		if err != nil {
			t.Fatalf("failed to reopen: %v", err)
		}
		persisted, _ := reopened.ListBookings(ctx)
		if len(persisted) != 1 {
			t.Fatalf("expected bookings blob restored, got %+v", persisted)
		}
	})
}

func TestStorage_DeleteBookingsForResource(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	storage, err := Open(ctx, kv, testSeed())
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	if err := storage.CreateBooking(ctx, testBooking(10, 1)); err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	t.Run("removes matching bookings", func(t *testing.T) {
		if err := storage.DeleteBookingsForResource(ctx, 1); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		bookings, _ := storage.ListBookings(ctx)
		if len(bookings) != 0 {
			t.Fatalf("expected no bookings, got %+v", bookings)
		}
	})

	t.Run("no-op when nothing matches", func(t *testing.T) {
		failing := &failingKV{inner: memory.New(), failKeys: map[string]bool{persistence.BookingsKey: true}}
		untouched, err := Open(ctx, failing, testSeed())
		if err != nil {
			t.Fatalf("failed to open: %v", err)
		}

		// No bookings reference the resource, so no write is attempted and
		// the failing port never trips.
		if err := untouched.DeleteBookingsForResource(ctx, 1); err != nil {
			t.Fatalf("expected no-op, got %v", err)
		}
	})
}
