package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/campus-booking/internal/application"
	"github.com/example/campus-booking/internal/persistence"
)

var (
	resourceCounter int64
	bookingCounter  int64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// --------------------------- Resource fixtures ---------------------------

// ResourceFixture represents a deterministic resource record that can be
// materialised for application or persistence tests.
type ResourceFixture struct {
	ID          int64
	Name        string
	Type        application.ResourceType
	Capacity    int
	Attended    int
	Utilization int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResourceOption configures the generated resource fixture.
type ResourceOption func(*ResourceFixture)

// NewResourceFixture returns a deterministic resource fixture with optional overrides.
func NewResourceFixture(opts ...ResourceOption) ResourceFixture {
	idx := atomic.AddInt64(&resourceCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := ResourceFixture{
		ID:          1000 + idx,
		Name:        fmt.Sprintf("Resource %03d", idx),
		Type:        application.ResourceTypeClassroom,
		Capacity:    40,
		Attended:    10,
		Utilization: 25,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithResourceID overrides the fixture identifier.
func WithResourceID(id int64) ResourceOption {
	return func(f *ResourceFixture) { f.ID = id }
}

// WithResourceType overrides the fixture type.
func WithResourceType(kind application.ResourceType) ResourceOption {
	return func(f *ResourceFixture) { f.Type = kind }
}

// WithUtilization overrides the fixture utilization percentage.
func WithUtilization(utilization int) ResourceOption {
	return func(f *ResourceFixture) { f.Utilization = utilization }
}

// Application converts the fixture to the application model.
func (f ResourceFixture) Application() application.Resource {
	return application.Resource{
		ID:          f.ID,
		Name:        f.Name,
		Type:        f.Type,
		Capacity:    f.Capacity,
		Attended:    f.Attended,
		Utilization: f.Utilization,
		Status:      application.ResourceStatusAvailable,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Persistence converts the fixture to the persistence model.
func (f ResourceFixture) Persistence() persistence.Resource {
	return persistence.Resource{
		ID:          f.ID,
		Name:        f.Name,
		Type:        string(f.Type),
		Capacity:    f.Capacity,
		Attended:    f.Attended,
		Utilization: f.Utilization,
		Status:      string(application.ResourceStatusAvailable),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// ---------------------------- Booking fixtures ----------------------------

// BookingFixture represents a deterministic booking record.
type BookingFixture struct {
	ID         int64
	ResourceID int64
	Date       string
	StartTime  string
	EndTime    string
	Purpose    string
	Status     application.BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BookingOption configures the generated booking fixture.
type BookingOption func(*BookingFixture)

// NewBookingFixture returns a deterministic booking fixture with optional overrides.
func NewBookingFixture(opts ...BookingOption) BookingFixture {
	idx := atomic.AddInt64(&bookingCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := BookingFixture{
		ID:         5000 + idx,
		ResourceID: 1001,
		Date:       "2024-02-01",
		StartTime:  "09:00",
		EndTime:    "11:00",
		Purpose:    fmt.Sprintf("Session %03d", idx),
		Status:     application.BookingStatusPending,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBookingID overrides the fixture identifier.
func WithBookingID(id int64) BookingOption {
	return func(f *BookingFixture) { f.ID = id }
}

// ForResource points the fixture at a resource.
func ForResource(resourceID int64) BookingOption {
	return func(f *BookingFixture) { f.ResourceID = resourceID }
}

// WithStatus overrides the fixture approval status.
func WithStatus(status application.BookingStatus) BookingOption {
	return func(f *BookingFixture) { f.Status = status }
}

// Application converts the fixture to the application model.
func (f BookingFixture) Application() application.Booking {
	return application.Booking{
		ID:         f.ID,
		ResourceID: f.ResourceID,
		Date:       f.Date,
		StartTime:  f.StartTime,
		EndTime:    f.EndTime,
		Purpose:    f.Purpose,
		Status:     f.Status,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// Persistence converts the fixture to the persistence model.
func (f BookingFixture) Persistence() persistence.Booking {
	return persistence.Booking{
		ID:         f.ID,
		ResourceID: f.ResourceID,
		Date:       f.Date,
		StartTime:  f.StartTime,
		EndTime:    f.EndTime,
		Purpose:    f.Purpose,
		Status:     string(f.Status),
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
