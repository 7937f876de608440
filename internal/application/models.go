package application

import (
	"fmt"
	"time"
)

// ResourceType enumerates the kinds of bookable campus assets.
type ResourceType string

const (
	ResourceTypeLab       ResourceType = "lab"
	ResourceTypeClassroom ResourceType = "classroom"
	ResourceTypeProjector ResourceType = "projector"
	ResourceTypeOther     ResourceType = "other"
)

// ParseResourceType validates a raw type value.
func ParseResourceType(value string) (ResourceType, error) {
	switch ResourceType(value) {
	case ResourceTypeLab, ResourceTypeClassroom, ResourceTypeProjector, ResourceTypeOther:
		return ResourceType(value), nil
	default:
		return "", fmt.Errorf("unknown resource type: %s", value)
	}
}

// ResourceStatus is the intrinsic availability flag stored on a resource. It
// is reserved for manual maintenance marking and plays no part in occupancy,
// which is always derived from bookings.
type ResourceStatus string

const (
	ResourceStatusAvailable ResourceStatus = "available"
)

// ResourceInput captures caller provided resource fields.
type ResourceInput struct {
	Name        string
	Type        ResourceType
	Capacity    int
	Attended    int
	Utilization int
}

// Resource represents a bookable campus asset.
type Resource struct {
	ID          int64
	Name        string
	Type        ResourceType
	Capacity    int
	Attended    int
	Utilization int
	Status      ResourceStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Remaining returns the free headcount for display purposes: capacity minus
// attended, floored at zero. The second result is false when capacity is not
// applicable (zero), e.g. for a projector.
func (r Resource) Remaining() (int, bool) {
	if r.Capacity <= 0 {
		return 0, false
	}
	remaining := r.Capacity - r.Attended
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// BookingStatus enumerates the approval states of a booking request.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
)

// ParseBookingStatus validates a raw status value.
func ParseBookingStatus(value string) (BookingStatus, error) {
	switch BookingStatus(value) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRejected:
		return BookingStatus(value), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", value)
	}
}

// CanTransition reports whether a booking may move from its current status to
// next. Only pending bookings can be decided; confirmed and rejected are
// terminal.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s != BookingStatusPending {
		return false
	}
	return next == BookingStatusConfirmed || next == BookingStatusRejected
}

// BookingInput captures caller provided booking fields.
type BookingInput struct {
	ResourceID int64
	Date       string
	StartTime  string
	EndTime    string
	Purpose    string
}

// Booking represents a request to use a resource during a date/time window.
type Booking struct {
	ID         int64
	ResourceID int64
	Date       string
	StartTime  string
	EndTime    string
	Purpose    string
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AdminSession represents the process-local administrator session issued by a
// successful login. It is never persisted.
type AdminSession struct {
	Token     string
	Name      string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}
