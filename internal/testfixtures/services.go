package testfixtures

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/example/campus-booking/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator(0),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator(0)
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// NewResourceService builds a resource service over the supplied repository
// using the factory's deterministic clock and identifiers.
func (f *ServiceFactory) NewResourceService(repo application.ResourceRepository, logger *slog.Logger) *application.ResourceService {
	return application.NewResourceServiceWithLogger(repo, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), logger)
}

// NewBookingService builds a booking service over the supplied dependencies.
func (f *ServiceFactory) NewBookingService(repo application.BookingRepository, catalog application.ResourceCatalog, logger *slog.Logger) *application.BookingService {
	return application.NewBookingServiceWithLogger(repo, catalog, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), logger)
}

// NewAdminService builds an admin service over the supplied dependencies. A
// nil authenticator falls back to the accept-all policy.
func (f *ServiceFactory) NewAdminService(auth application.Authenticator, bookings *application.BookingService, ttl time.Duration, logger *slog.Logger) *application.AdminService {
	tokens := NewIDGenerator(0)
	tokenGen := func() string {
		return fmt.Sprintf("token-%d", tokens.Next())
	}
	return application.NewAdminServiceWithLogger(auth, bookings, tokenGen, f.Clock.NowFunc(), ttl, logger)
}
