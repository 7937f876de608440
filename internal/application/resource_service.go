package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/campus-booking/internal/persistence"
)

// ResourceRepository captures the persistence operations needed by the service.
// DeleteResource must cascade to every booking referencing the resource.
type ResourceRepository interface {
	CreateResource(ctx context.Context, resource Resource) (Resource, error)
	GetResource(ctx context.Context, id int64) (Resource, error)
	UpdateResource(ctx context.Context, resource Resource) (Resource, error)
	DeleteResource(ctx context.Context, id int64) error
	ListResources(ctx context.Context) ([]Resource, error)
}

// ResourceService orchestrates validation and persistence for the resource catalog.
type ResourceService struct {
	resources   ResourceRepository
	idGenerator func() int64
	now         func() time.Time
	logger      *slog.Logger
}

// NewResourceService constructs a resource service with the provided dependencies.
func NewResourceService(resources ResourceRepository, idGenerator func() int64, now func() time.Time) *ResourceService {
	return NewResourceServiceWithLogger(resources, idGenerator, now, nil)
}

// NewResourceServiceWithLogger constructs a resource service with a specified logger.
func NewResourceServiceWithLogger(resources ResourceRepository, idGenerator func() int64, now func() time.Time, logger *slog.Logger) *ResourceService {
	if idGenerator == nil {
		idGenerator = func() int64 { return 0 }
	}
	if now == nil {
		now = time.Now
	}
	return &ResourceService{resources: resources, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *ResourceService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ResourceService", operation, attrs...)
}

// List returns every resource in insertion order.
func (s *ResourceService) List(ctx context.Context) (resources []Resource, err error) {
	if s == nil {
		err = fmt.Errorf("ResourceService is nil")
		return
	}
	if s.resources == nil {
		return nil, nil
	}

	resources, err = s.resources.ListResources(ctx)
	if err != nil {
		s.loggerWith(ctx, "List").ErrorContext(ctx, "failed to list resources", "error", err, "error_kind", ErrorKind(err))
		return
	}
	return
}

// Create validates input and persists a new resource with a fresh identifier.
func (s *ResourceService) Create(ctx context.Context, input ResourceInput) (resource Resource, err error) {
	if s == nil {
		err = fmt.Errorf("ResourceService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Create")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create resource", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("resource_id", resource.ID).InfoContext(ctx, "resource created")
	}()

	vErr := validateResourceInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	resource = Resource{
		ID:          s.idGenerator(),
		Name:        strings.TrimSpace(input.Name),
		Type:        input.Type,
		Capacity:    input.Capacity,
		Attended:    input.Attended,
		Utilization: input.Utilization,
		Status:      ResourceStatusAvailable,
		CreatedAt:   s.now(),
	}
	resource.UpdatedAt = resource.CreatedAt

	if s.resources == nil {
		return
	}

	var persisted Resource
	persisted, err = s.resources.CreateResource(ctx, resource)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	resource = persisted
	return
}

// Update validates input and replaces the mutable fields of an existing
// resource. The identifier and intrinsic status are immutable.
func (s *ResourceService) Update(ctx context.Context, id int64, input ResourceInput) (resource Resource, err error) {
	if s == nil {
		err = fmt.Errorf("ResourceService is nil")
		return
	}
	if s.resources == nil {
		err = fmt.Errorf("resource repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update", "resource_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update resource", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "resource updated")
	}()

	var existing Resource
	existing, err = s.resources.GetResource(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateResourceInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Type = input.Type
	updated.Capacity = input.Capacity
	updated.Attended = input.Attended
	updated.Utilization = input.Utilization
	updated.UpdatedAt = s.now()

	resource, err = s.resources.UpdateResource(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	return
}

// Delete removes a resource. The repository cascades the deletion to every
// booking referencing it, so both effects land in one call.
func (s *ResourceService) Delete(ctx context.Context, id int64) error {
	if s == nil {
		return fmt.Errorf("ResourceService is nil")
	}
	if s.resources == nil {
		return fmt.Errorf("resource repository not configured")
	}

	logger := s.loggerWith(ctx, "Delete", "resource_id", id)

	if err := s.resources.DeleteResource(ctx, id); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete resource", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "resource deleted")
	return nil
}

func validateResourceInput(input ResourceInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if _, err := ParseResourceType(string(input.Type)); err != nil {
		vErr.add("type", "type must be one of lab, classroom, projector, other")
	}
	if input.Capacity < 0 {
		vErr.add("capacity", "capacity must not be negative")
	}
	if input.Attended < 0 {
		vErr.add("attended", "attended must not be negative")
	}
	if input.Utilization < 0 || input.Utilization > 100 {
		vErr.add("utilization", "utilization must be between 0 and 100")
	}

	return vErr
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
