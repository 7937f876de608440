// Package kvstore implements the resource and booking repositories over the
// KeyValue port. Collections are held in memory in insertion order and the
// full collection is written through the port after every mutation; a failed
// write leaves both the in-memory and persisted state unchanged.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/example/campus-booking/internal/persistence"
)

// Storage owns both collections behind a single lock so a resource deletion
// can cascade to bookings within one critical section.
type Storage struct {
	mu        sync.RWMutex
	kv        persistence.KeyValue
	resources []persistence.Resource
	bookings  []persistence.Booking
}

// Open restores both collections from the KeyValue port. When the resources
// key is absent the provided seed is used; when the bookings key is absent the
// collection starts empty. Nothing is written until the first mutation.
func Open(ctx context.Context, kv persistence.KeyValue, seed []persistence.Resource) (*Storage, error) {
	if kv == nil {
		return nil, fmt.Errorf("kvstore: key-value port is required")
	}

	resources, err := loadCollection[persistence.Resource](ctx, kv, persistence.ResourcesKey)
	if err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			return nil, err
		}
		resources = cloneResources(seed)
	}

	bookings, err := loadCollection[persistence.Booking](ctx, kv, persistence.BookingsKey)
	if err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			return nil, err
		}
		bookings = nil
	}

	return &Storage{kv: kv, resources: resources, bookings: bookings}, nil
}

func loadCollection[T any](ctx context.Context, kv persistence.KeyValue, key string) ([]T, error) {
	blob, err := kv.Load(ctx, key)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, persistence.ErrNotFound
		}
		return nil, fmt.Errorf("kvstore: failed to load %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("kvstore: failed to decode %s: %w", key, err)
	}
	return items, nil
}

func (s *Storage) persist(ctx context.Context, key string, items any) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("kvstore: failed to encode %s: %w", key, err)
	}
	if err := s.kv.Save(ctx, key, blob); err != nil {
		return fmt.Errorf("kvstore: failed to save %s: %w", key, err)
	}
	return nil
}

// --- ResourceRepository implementation ---

// CreateResource appends a new resource and persists the collection.
func (s *Storage) CreateResource(ctx context.Context, resource persistence.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfResourceLocked(resource.ID) >= 0 {
		return fmt.Errorf("kvstore: resource %d already exists", resource.ID)
	}

	next := append(cloneResources(s.resources), resource)
	if err := s.persist(ctx, persistence.ResourcesKey, next); err != nil {
		return err
	}

	s.resources = next
	return nil
}

// UpdateResource replaces an existing resource in place and persists the collection.
func (s *Storage) UpdateResource(ctx context.Context, resource persistence.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfResourceLocked(resource.ID)
	if idx < 0 {
		return persistence.ErrNotFound
	}

	next := cloneResources(s.resources)
	next[idx] = resource
	if err := s.persist(ctx, persistence.ResourcesKey, next); err != nil {
		return err
	}

	s.resources = next
	return nil
}

// GetResource retrieves a resource by ID.
func (s *Storage) GetResource(ctx context.Context, id int64) (persistence.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOfResourceLocked(id)
	if idx < 0 {
		return persistence.Resource{}, persistence.ErrNotFound
	}
	return s.resources[idx], nil
}

// ListResources returns all resources in insertion order.
func (s *Storage) ListResources(ctx context.Context) ([]persistence.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneResources(s.resources), nil
}

// DeleteResource removes a resource and cascades to every booking that
// references it. Both collections are persisted; if the second write fails
// the first is restored so the call is all-or-nothing.
func (s *Storage) DeleteResource(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfResourceLocked(id)
	if idx < 0 {
		return persistence.ErrNotFound
	}

	nextResources := make([]persistence.Resource, 0, len(s.resources)-1)
	nextResources = append(nextResources, s.resources[:idx]...)
	nextResources = append(nextResources, s.resources[idx+1:]...)

	nextBookings := make([]persistence.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		if booking.ResourceID == id {
			continue
		}
		nextBookings = append(nextBookings, booking)
	}

	if err := s.persist(ctx, persistence.BookingsKey, nextBookings); err != nil {
		return err
	}
	if err := s.persist(ctx, persistence.ResourcesKey, nextResources); err != nil {
		if rbErr := s.persist(ctx, persistence.BookingsKey, s.bookings); rbErr != nil {
			return fmt.Errorf("kvstore: delete failed and bookings could not be restored (%v): %w", rbErr, err)
		}
		return err
	}

	s.resources = nextResources
	s.bookings = nextBookings
	return nil
}

func (s *Storage) indexOfResourceLocked(id int64) int {
	for i, resource := range s.resources {
		if resource.ID == id {
			return i
		}
	}
	return -1
}

// --- BookingRepository implementation ---

// CreateBooking appends a new booking and persists the collection.
func (s *Storage) CreateBooking(ctx context.Context, booking persistence.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfBookingLocked(booking.ID) >= 0 {
		return fmt.Errorf("kvstore: booking %d already exists", booking.ID)
	}

	next := append(cloneBookings(s.bookings), booking)
	if err := s.persist(ctx, persistence.BookingsKey, next); err != nil {
		return err
	}

	s.bookings = next
	return nil
}

// UpdateBooking replaces an existing booking in place and persists the collection.
func (s *Storage) UpdateBooking(ctx context.Context, booking persistence.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfBookingLocked(booking.ID)
	if idx < 0 {
		return persistence.ErrNotFound
	}

	next := cloneBookings(s.bookings)
	next[idx] = booking
	if err := s.persist(ctx, persistence.BookingsKey, next); err != nil {
		return err
	}

	s.bookings = next
	return nil
}

// GetBooking retrieves a booking by ID.
func (s *Storage) GetBooking(ctx context.Context, id int64) (persistence.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOfBookingLocked(id)
	if idx < 0 {
		return persistence.Booking{}, persistence.ErrNotFound
	}
	return s.bookings[idx], nil
}

// ListBookings returns all bookings in insertion order.
func (s *Storage) ListBookings(ctx context.Context) ([]persistence.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBookings(s.bookings), nil
}

// DeleteBooking removes a booking by ID and persists the collection.
func (s *Storage) DeleteBooking(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfBookingLocked(id)
	if idx < 0 {
		return persistence.ErrNotFound
	}

	next := make([]persistence.Booking, 0, len(s.bookings)-1)
	next = append(next, s.bookings[:idx]...)
	next = append(next, s.bookings[idx+1:]...)

	if err := s.persist(ctx, persistence.BookingsKey, next); err != nil {
		return err
	}

	s.bookings = next
	return nil
}

// DeleteBookingsForResource removes every booking referencing the resource.
// When none match, nothing is written and no error is returned.
func (s *Storage) DeleteBookingsForResource(ctx context.Context, resourceID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]persistence.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		if booking.ResourceID == resourceID {
			continue
		}
		next = append(next, booking)
	}

	if len(next) == len(s.bookings) {
		return nil
	}

	if err := s.persist(ctx, persistence.BookingsKey, next); err != nil {
		return err
	}

	s.bookings = next
	return nil
}

func (s *Storage) indexOfBookingLocked(id int64) int {
	for i, booking := range s.bookings {
		if booking.ID == id {
			return i
		}
	}
	return -1
}

// --- Helpers ---

func cloneResources(resources []persistence.Resource) []persistence.Resource {
	if resources == nil {
		return nil
	}
	out := make([]persistence.Resource, len(resources))
	copy(out, resources)
	return out
}

func cloneBookings(bookings []persistence.Booking) []persistence.Booking {
	if bookings == nil {
		return nil
	}
	out := make([]persistence.Booking, len(bookings))
	copy(out, bookings)
	return out
}
