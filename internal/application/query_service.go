package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/campus-booking/internal/guidance"
)

// QueryService answers the dashboard's read-only questions: search, the
// guidance engine's recommendations, occupancy labels, and summary counters.
// It snapshots both stores and delegates the actual computation to the pure
// guidance package.
type QueryService struct {
	resources ResourceRepository
	bookings  BookingRepository
	logger    *slog.Logger
}

// NewQueryService constructs a query service over the two repositories.
func NewQueryService(resources ResourceRepository, bookings BookingRepository) *QueryService {
	return NewQueryServiceWithLogger(resources, bookings, nil)
}

// NewQueryServiceWithLogger constructs a query service with a specified logger.
func NewQueryServiceWithLogger(resources ResourceRepository, bookings BookingRepository, logger *slog.Logger) *QueryService {
	return &QueryService{resources: resources, bookings: bookings, logger: defaultLogger(logger)}
}

func (s *QueryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "QueryService", operation, attrs...)
}

// Search filters resources by a case-insensitive name substring and a type
// filter; guidance.TypeFilterAll matches every type. Input order is preserved.
func (s *QueryService) Search(ctx context.Context, term, typeFilter string) (results []Resource, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Search", "type_filter", typeFilter)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "search failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(results)).InfoContext(ctx, "search completed")
	}()

	resources, err := s.listResources(ctx)
	if err != nil {
		return nil, err
	}

	matched := guidance.Search(toGuidanceResources(resources), term, typeFilter)
	results = selectByID(resources, matched)
	return
}

// Recommend returns unoccupied, lightly utilized resources sorted ascending
// by utilization.
func (s *QueryService) Recommend(ctx context.Context) (results []Resource, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Recommend")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "recommendation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(results)).InfoContext(ctx, "recommendations computed")
	}()

	resources, err := s.listResources(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := s.occupiedSet(ctx)
	if err != nil {
		return nil, err
	}

	recommended := guidance.Recommend(toGuidanceResources(resources), occupied)
	results = selectByID(resources, recommended)
	return
}

// DisplayStatus derives the occupancy label for one resource, independent of
// its stored status field.
func (s *QueryService) DisplayStatus(ctx context.Context, resourceID int64) (guidance.DisplayStatus, error) {
	if s == nil {
		return "", fmt.Errorf("QueryService is nil")
	}

	occupied, err := s.occupiedSet(ctx)
	if err != nil {
		s.loggerWith(ctx, "DisplayStatus", "resource_id", resourceID).ErrorContext(ctx, "failed to derive status", "error", err, "error_kind", ErrorKind(err))
		return "", err
	}
	return guidance.Derive(resourceID, occupied), nil
}

// Stats computes the dashboard counters over the current snapshot.
func (s *QueryService) Stats(ctx context.Context) (summary guidance.Summary, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Stats")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute stats", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	resources, err := s.listResources(ctx)
	if err != nil {
		return guidance.Summary{}, err
	}

	var bookings []Booking
	if s.bookings != nil {
		bookings, err = s.bookings.ListBookings(ctx)
		if err != nil {
			return guidance.Summary{}, err
		}
	}

	occupied := make(guidance.OccupiedSet, len(bookings))
	for _, booking := range bookings {
		occupied[booking.ResourceID] = true
	}

	summary = guidance.Summarize(toGuidanceResources(resources), len(bookings), occupied)
	return
}

func (s *QueryService) listResources(ctx context.Context) ([]Resource, error) {
	if s.resources == nil {
		return nil, nil
	}
	return s.resources.ListResources(ctx)
}

func (s *QueryService) occupiedSet(ctx context.Context) (guidance.OccupiedSet, error) {
	if s.bookings == nil {
		return guidance.OccupiedSet{}, nil
	}
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	occupied := make(guidance.OccupiedSet, len(bookings))
	for _, booking := range bookings {
		occupied[booking.ResourceID] = true
	}
	return occupied, nil
}

func toGuidanceResources(resources []Resource) []guidance.Resource {
	out := make([]guidance.Resource, 0, len(resources))
	for _, resource := range resources {
		out = append(out, guidance.Resource{
			ID:          resource.ID,
			Name:        resource.Name,
			Type:        string(resource.Type),
			Utilization: resource.Utilization,
		})
	}
	return out
}

// selectByID maps the engine's view records back to the full resources in the
// order the engine produced.
func selectByID(resources []Resource, views []guidance.Resource) []Resource {
	byID := make(map[int64]Resource, len(resources))
	for _, resource := range resources {
		byID[resource.ID] = resource
	}

	out := make([]Resource, 0, len(views))
	for _, view := range views {
		if resource, ok := byID[view.ID]; ok {
			out = append(out, resource)
		}
	}
	return out
}
