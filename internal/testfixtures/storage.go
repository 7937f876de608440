package testfixtures

import (
	"context"
	"testing"

	"github.com/example/campus-booking/internal/persistence"
	"github.com/example/campus-booking/internal/persistence/kvstore"
	"github.com/example/campus-booking/internal/persistence/memory"
)

// StorageHarness provides repository access backed by a kvstore over an
// in-memory key-value port, for integration-style persistence tests.
type StorageHarness struct {
	Storage *kvstore.Storage
	KV      *memory.Store
}

// NewStorageHarness constructs a harness seeded with the provided resources.
func NewStorageHarness(tb testing.TB, seed []persistence.Resource) *StorageHarness {
	tb.Helper()

	kv := memory.New()
	storage, err := kvstore.Open(context.Background(), kv, seed)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	return &StorageHarness{Storage: storage, KV: kv}
}
