package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// BookingRepository captures the persistence operations needed by the service.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking Booking) (Booking, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)
	UpdateBooking(ctx context.Context, booking Booking) (Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	ListBookings(ctx context.Context) ([]Booking, error)
	DeleteBookingsForResource(ctx context.Context, resourceID int64) error
}

// ResourceCatalog exposes the resource lookups the booking service needs.
type ResourceCatalog interface {
	ResourceExists(ctx context.Context, id int64) (bool, error)
	// ResourceName returns ErrNotFound for a dangling reference; callers
	// decide how to render that.
	ResourceName(ctx context.Context, id int64) (string, error)
}

// BookingService orchestrates validation, status transitions, and persistence
// for booking requests.
type BookingService struct {
	bookings    BookingRepository
	resources   ResourceCatalog
	idGenerator func() int64
	now         func() time.Time
	logger      *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(bookings BookingRepository, resources ResourceCatalog, idGenerator func() int64, now func() time.Time) *BookingService {
	return NewBookingServiceWithLogger(bookings, resources, idGenerator, now, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(bookings BookingRepository, resources ResourceCatalog, idGenerator func() int64, now func() time.Time, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() int64 { return 0 }
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{bookings: bookings, resources: resources, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// List returns every booking in insertion order.
func (s *BookingService) List(ctx context.Context) (bookings []Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		return nil, nil
	}

	bookings, err = s.bookings.ListBookings(ctx)
	if err != nil {
		s.loggerWith(ctx, "List").ErrorContext(ctx, "failed to list bookings", "error", err, "error_kind", ErrorKind(err))
		return
	}
	return
}

// IsOccupied reports whether any booking references the resource, regardless
// of that booking's approval state.
func (s *BookingService) IsOccupied(ctx context.Context, resourceID int64) (bool, error) {
	if s == nil {
		return false, fmt.Errorf("BookingService is nil")
	}
	if s.bookings == nil {
		return false, nil
	}

	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		s.loggerWith(ctx, "IsOccupied", "resource_id", resourceID).ErrorContext(ctx, "failed to list bookings", "error", err, "error_kind", ErrorKind(err))
		return false, err
	}

	for _, booking := range bookings {
		if booking.ResourceID == resourceID {
			return true, nil
		}
	}
	return false, nil
}

// Create validates input and persists a new pending booking.
func (s *BookingService) Create(ctx context.Context, input BookingInput) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Create", "resource_id", input.ResourceID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking created")
	}()

	if s.resources != nil {
		var exists bool
		exists, err = s.resources.ResourceExists(ctx, input.ResourceID)
		if err != nil {
			return
		}
		if !exists {
			err = ErrNotFound
			return
		}
	}

	vErr := validateBookingInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	booking = Booking{
		ID:         s.idGenerator(),
		ResourceID: input.ResourceID,
		Date:       strings.TrimSpace(input.Date),
		StartTime:  strings.TrimSpace(input.StartTime),
		EndTime:    strings.TrimSpace(input.EndTime),
		Purpose:    strings.TrimSpace(input.Purpose),
		Status:     BookingStatusPending,
		CreatedAt:  s.now(),
	}
	booking.UpdatedAt = booking.CreatedAt

	if s.bookings == nil {
		return
	}

	var persisted Booking
	persisted, err = s.bookings.CreateBooking(ctx, booking)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	booking = persisted
	return
}

// Update validates input and replaces the mutable fields of an existing
// booking. The approval status is preserved; editing never resets it.
func (s *BookingService) Update(ctx context.Context, id int64, input BookingInput) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update", "booking_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking updated")
	}()

	var existing Booking
	existing, err = s.bookings.GetBooking(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateBookingInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.ResourceID = input.ResourceID
	updated.Date = strings.TrimSpace(input.Date)
	updated.StartTime = strings.TrimSpace(input.StartTime)
	updated.EndTime = strings.TrimSpace(input.EndTime)
	updated.Purpose = strings.TrimSpace(input.Purpose)
	updated.UpdatedAt = s.now()

	booking, err = s.bookings.UpdateBooking(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	return
}

// Delete cancels a booking. Cancellation is permitted regardless of status.
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}
	if s.bookings == nil {
		return fmt.Errorf("booking repository not configured")
	}

	logger := s.loggerWith(ctx, "Delete", "booking_id", id)

	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete booking", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "booking cancelled")
	return nil
}

// DeleteByResource removes every booking for a resource. A resource with no
// bookings is a no-op, not an error.
func (s *BookingService) DeleteByResource(ctx context.Context, resourceID int64) error {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}
	if s.bookings == nil {
		return nil
	}

	logger := s.loggerWith(ctx, "DeleteByResource", "resource_id", resourceID)

	if err := s.bookings.DeleteBookingsForResource(ctx, resourceID); err != nil {
		logger.ErrorContext(ctx, "failed to delete bookings for resource", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "bookings removed for resource")
	return nil
}

// Transition decides a pending booking. Confirmed and rejected are terminal,
// so deciding twice fails with an InvalidTransitionError.
func (s *BookingService) Transition(ctx context.Context, id int64, next BookingStatus) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Transition", "booking_id", id, "next_status", string(next))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to transition booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking decided")
	}()

	if next != BookingStatusConfirmed && next != BookingStatusRejected {
		vErr := &ValidationError{}
		vErr.add("status", "status must be confirmed or rejected")
		err = vErr
		return
	}

	var existing Booking
	existing, err = s.bookings.GetBooking(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	if !existing.Status.CanTransition(next) {
		err = &InvalidTransitionError{BookingID: id, From: existing.Status, To: next}
		return
	}

	updated := existing
	updated.Status = next
	updated.UpdatedAt = s.now()

	booking, err = s.bookings.UpdateBooking(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	return
}

// ConfirmationTicket builds the scannable payload for a confirmed booking.
// The caller hands the string to an external encoder; this core only shapes
// it. A dangling resource reference renders as N/A.
func (s *BookingService) ConfirmationTicket(ctx context.Context, id int64) (payload string, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ConfirmationTicket", "booking_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to issue confirmation ticket", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	var booking Booking
	booking, err = s.bookings.GetBooking(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	if booking.Status != BookingStatusConfirmed {
		err = ErrNotConfirmed
		return
	}

	resourceName := "N/A"
	if s.resources != nil {
		name, nameErr := s.resources.ResourceName(ctx, booking.ResourceID)
		if nameErr != nil && !errors.Is(nameErr, ErrNotFound) {
			err = nameErr
			return
		}
		if nameErr == nil {
			resourceName = name
		}
	}

	payload = fmt.Sprintf("Resource: %s\nDate: %s\nTime: %s-%s\nID: %d",
		resourceName, booking.Date, booking.StartTime, booking.EndTime, booking.ID)
	return
}

func validateBookingInput(input BookingInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Date) == "" {
		vErr.add("date", "date is required")
	}
	if strings.TrimSpace(input.StartTime) == "" {
		vErr.add("startTime", "start time is required")
	}
	if strings.TrimSpace(input.EndTime) == "" {
		vErr.add("endTime", "end time is required")
	}
	if strings.TrimSpace(input.Purpose) == "" {
		vErr.add("purpose", "purpose is required")
	}

	return vErr
}
