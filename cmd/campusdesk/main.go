package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/campus-booking/internal/application"
	"github.com/example/campus-booking/internal/config"
	"github.com/example/campus-booking/internal/persistence"
	"github.com/example/campus-booking/internal/persistence/file"
	"github.com/example/campus-booking/internal/persistence/kvstore"
	"github.com/example/campus-booking/internal/persistence/memory"
	"github.com/example/campus-booking/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	kv, closeKV, err := openKeyValue(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := closeKV(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	now := time.Now
	storage, err := kvstore.Open(ctx, kv, toPersistenceResources(application.SeedResources(now().UTC())))
	if err != nil {
		logger.Error("failed to restore collections", "error", err)
		os.Exit(1)
	}

	idGenerator := newIDGenerator(now)

	resourceRepo := newResourceRepositoryAdapter(storage)
	bookingRepo := newBookingRepositoryAdapter(storage)
	resourceCatalog := newResourceCatalogAdapter(storage)

	resourceService := application.NewResourceServiceWithLogger(resourceRepo, idGenerator, now, logger)
	bookingService := application.NewBookingServiceWithLogger(bookingRepo, resourceCatalog, idGenerator, now, logger)
	queryService := application.NewQueryServiceWithLogger(resourceRepo, bookingRepo, logger)
	adminService := application.NewAdminServiceWithLogger(application.AcceptAllPolicy{}, bookingService, uuid.NewString, now, cfg.AdminSessionTTL, logger)

	resources, err := resourceService.List(ctx)
	if err != nil {
		logger.Error("failed to list resources", "error", err)
		os.Exit(1)
	}

	recommended, err := queryService.Recommend(ctx)
	if err != nil {
		logger.Error("failed to compute recommendations", "error", err)
		os.Exit(1)
	}

	summary, err := queryService.Stats(ctx)
	if err != nil {
		logger.Error("failed to compute stats", "error", err)
		os.Exit(1)
	}

	logger.Info("campus booking core ready",
		"storage_driver", cfg.StorageDriver,
		"catalog_size", len(resources),
		"recommended", len(recommended),
		"admin_logged_in", adminService.IsLoggedIn(),
		"total_resources", summary.TotalResources,
		"active_bookings", summary.ActiveBookings,
		"available_now", summary.AvailableNow,
		"avg_utilization", summary.AvgUtilization,
	)
}

func openKeyValue(ctx context.Context, cfg config.Config) (persistence.KeyValue, func() error, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.New(), func() error { return nil }, nil
	case config.DriverFile:
		store, err := file.Open(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return nil, nil, errors.New("unknown storage driver")
}

// newIDGenerator yields millisecond-timestamp identifiers, bumped when two
// calls land in the same millisecond so IDs stay unique within the process.
func newIDGenerator(now func() time.Time) func() int64 {
	var mu sync.Mutex
	var last int64
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		id := now().UnixMilli()
		if id <= last {
			id = last + 1
		}
		last = id
		return id
	}
}

type resourceRepositoryAdapter struct {
	repo persistence.ResourceRepository
}

func newResourceRepositoryAdapter(repo persistence.ResourceRepository) *resourceRepositoryAdapter {
	return &resourceRepositoryAdapter{repo: repo}
}

func (a *resourceRepositoryAdapter) CreateResource(ctx context.Context, resource application.Resource) (application.Resource, error) {
	if err := a.repo.CreateResource(ctx, toPersistenceResource(resource)); err != nil {
		return application.Resource{}, err
	}
	stored, err := a.repo.GetResource(ctx, resource.ID)
	if err != nil {
		return application.Resource{}, err
	}
	return toApplicationResource(stored), nil
}

func (a *resourceRepositoryAdapter) GetResource(ctx context.Context, id int64) (application.Resource, error) {
	stored, err := a.repo.GetResource(ctx, id)
	if err != nil {
		return application.Resource{}, err
	}
	return toApplicationResource(stored), nil
}

func (a *resourceRepositoryAdapter) UpdateResource(ctx context.Context, resource application.Resource) (application.Resource, error) {
	if err := a.repo.UpdateResource(ctx, toPersistenceResource(resource)); err != nil {
		return application.Resource{}, err
	}
	stored, err := a.repo.GetResource(ctx, resource.ID)
	if err != nil {
		return application.Resource{}, err
	}
	return toApplicationResource(stored), nil
}

func (a *resourceRepositoryAdapter) DeleteResource(ctx context.Context, id int64) error {
	return a.repo.DeleteResource(ctx, id)
}

func (a *resourceRepositoryAdapter) ListResources(ctx context.Context) ([]application.Resource, error) {
	models, err := a.repo.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	resources := make([]application.Resource, 0, len(models))
	for _, model := range models {
		resources = append(resources, toApplicationResource(model))
	}
	return resources, nil
}

type bookingRepositoryAdapter struct {
	repo persistence.BookingRepository
}

func newBookingRepositoryAdapter(repo persistence.BookingRepository) *bookingRepositoryAdapter {
	return &bookingRepositoryAdapter{repo: repo}
}

func (a *bookingRepositoryAdapter) CreateBooking(ctx context.Context, booking application.Booking) (application.Booking, error) {
	if err := a.repo.CreateBooking(ctx, toPersistenceBooking(booking)); err != nil {
		return application.Booking{}, err
	}
	stored, err := a.repo.GetBooking(ctx, booking.ID)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) GetBooking(ctx context.Context, id int64) (application.Booking, error) {
	stored, err := a.repo.GetBooking(ctx, id)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) UpdateBooking(ctx context.Context, booking application.Booking) (application.Booking, error) {
	if err := a.repo.UpdateBooking(ctx, toPersistenceBooking(booking)); err != nil {
		return application.Booking{}, err
	}
	stored, err := a.repo.GetBooking(ctx, booking.ID)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) DeleteBooking(ctx context.Context, id int64) error {
	return a.repo.DeleteBooking(ctx, id)
}

func (a *bookingRepositoryAdapter) ListBookings(ctx context.Context) ([]application.Booking, error) {
	models, err := a.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	bookings := make([]application.Booking, 0, len(models))
	for _, model := range models {
		bookings = append(bookings, toApplicationBooking(model))
	}
	return bookings, nil
}

func (a *bookingRepositoryAdapter) DeleteBookingsForResource(ctx context.Context, resourceID int64) error {
	return a.repo.DeleteBookingsForResource(ctx, resourceID)
}

type resourceCatalogAdapter struct {
	repo persistence.ResourceRepository
}

func newResourceCatalogAdapter(repo persistence.ResourceRepository) *resourceCatalogAdapter {
	return &resourceCatalogAdapter{repo: repo}
}

func (a *resourceCatalogAdapter) ResourceExists(ctx context.Context, id int64) (bool, error) {
	if _, err := a.repo.GetResource(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *resourceCatalogAdapter) ResourceName(ctx context.Context, id int64) (string, error) {
	stored, err := a.repo.GetResource(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return "", application.ErrNotFound
		}
		return "", err
	}
	return stored.Name, nil
}

func toApplicationResource(model persistence.Resource) application.Resource {
	return application.Resource{
		ID:          model.ID,
		Name:        model.Name,
		Type:        application.ResourceType(model.Type),
		Capacity:    model.Capacity,
		Attended:    model.Attended,
		Utilization: model.Utilization,
		Status:      application.ResourceStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toPersistenceResource(resource application.Resource) persistence.Resource {
	return persistence.Resource{
		ID:          resource.ID,
		Name:        resource.Name,
		Type:        string(resource.Type),
		Capacity:    resource.Capacity,
		Attended:    resource.Attended,
		Utilization: resource.Utilization,
		Status:      string(resource.Status),
		CreatedAt:   resource.CreatedAt,
		UpdatedAt:   resource.UpdatedAt,
	}
}

func toPersistenceResources(resources []application.Resource) []persistence.Resource {
	out := make([]persistence.Resource, 0, len(resources))
	for _, resource := range resources {
		out = append(out, toPersistenceResource(resource))
	}
	return out
}

func toApplicationBooking(model persistence.Booking) application.Booking {
	return application.Booking{
		ID:         model.ID,
		ResourceID: model.ResourceID,
		Date:       model.Date,
		StartTime:  model.StartTime,
		EndTime:    model.EndTime,
		Purpose:    model.Purpose,
		Status:     application.BookingStatus(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistenceBooking(booking application.Booking) persistence.Booking {
	return persistence.Booking{
		ID:         booking.ID,
		ResourceID: booking.ResourceID,
		Date:       booking.Date,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		Purpose:    booking.Purpose,
		Status:     string(booking.Status),
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}
}
