package persistence

import "context"

// Collection keys used by the storage layer. The names match the persisted
// documents carried over from earlier deployments, so do not rename them.
const (
	ResourcesKey = "campus_resources"
	BookingsKey  = "campus_bookings"
)

// KeyValue is the port the storage layer writes through after every mutation.
// Values are opaque serialized collections; implementations must return the
// exact bytes last saved for a key, and ErrNotFound for absent keys.
type KeyValue interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}
