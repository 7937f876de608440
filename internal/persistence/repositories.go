package persistence

import "context"

// ResourceRepository exposes CRUD operations for resources in insertion order.
type ResourceRepository interface {
	CreateResource(ctx context.Context, resource Resource) error
	UpdateResource(ctx context.Context, resource Resource) error
	GetResource(ctx context.Context, id int64) (Resource, error)
	ListResources(ctx context.Context) ([]Resource, error)
	// DeleteResource removes a resource and every booking referencing it.
	DeleteResource(ctx context.Context, id int64) error
}

// BookingRepository exposes CRUD operations for bookings in insertion order.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking Booking) error
	UpdateBooking(ctx context.Context, booking Booking) error
	GetBooking(ctx context.Context, id int64) (Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	// DeleteBookingsForResource removes all bookings for a resource. It is a
	// no-op when none exist.
	DeleteBookingsForResource(ctx context.Context, resourceID int64) error
}
