package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/campus-booking/internal/persistence"
)

type resourceRepoStub struct {
	createErr error
	created   Resource

	getResource Resource
	getErr      error

	updateErr error
	updated   Resource

	deleteErr error
	deletedID int64

	list    []Resource
	listErr error
}

func (r *resourceRepoStub) CreateResource(ctx context.Context, resource Resource) (Resource, error) {
	if r.createErr != nil {
		return Resource{}, r.createErr
	}
	r.created = resource
	return resource, nil
}

func (r *resourceRepoStub) GetResource(ctx context.Context, id int64) (Resource, error) {
	if r.getErr != nil {
		return Resource{}, r.getErr
	}
	if r.getResource.ID == 0 {
		return Resource{}, ErrNotFound
	}
	return r.getResource, nil
}

func (r *resourceRepoStub) UpdateResource(ctx context.Context, resource Resource) (Resource, error) {
	if r.updateErr != nil {
		return Resource{}, r.updateErr
	}
	r.updated = resource
	return resource, nil
}

func (r *resourceRepoStub) DeleteResource(ctx context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = id
	return nil
}

func (r *resourceRepoStub) ListResources(ctx context.Context) ([]Resource, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if len(r.list) == 0 {
		return nil, nil
	}
	out := make([]Resource, len(r.list))
	copy(out, r.list)
	return out, nil
}

func TestResourceService_Create(t *testing.T) {
	t.Run("validates required attributes", func(t *testing.T) {
		svc := NewResourceService(nil, nil, nil)

		_, err := svc.Create(context.Background(), ResourceInput{
			Name:        "   ",
			Type:        ResourceType("garage"),
			Capacity:    -1,
			Attended:    -3,
			Utilization: 120,
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}

		for _, field := range []string{"name", "type", "capacity", "attended", "utilization"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("persists valid resources", func(t *testing.T) {
		repo := &resourceRepoStub{}
		now := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
		svc := NewResourceService(repo, func() int64 { return 42 }, func() time.Time { return now })

		created, err := svc.Create(context.Background(), ResourceInput{
			Name:        "  Quantum Lab 1  ",
			Type:        ResourceTypeLab,
			Capacity:    30,
			Attended:    12,
			Utilization: 45,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if repo.created.ID != 42 {
			t.Fatalf("expected repository to receive generated ID, got %d", repo.created.ID)
		}
		if repo.created.Name != "Quantum Lab 1" {
			t.Fatalf("expected name to be trimmed, got %q", repo.created.Name)
		}
		if repo.created.Status != ResourceStatusAvailable {
			t.Fatalf("expected status to be fixed to available, got %q", repo.created.Status)
		}
		if !repo.created.CreatedAt.Equal(now) || !repo.created.UpdatedAt.Equal(now) {
			t.Fatalf("expected timestamps from injected clock, got %v / %v", repo.created.CreatedAt, repo.created.UpdatedAt)
		}
		if created != repo.created {
			t.Fatalf("expected returned resource to match persisted one")
		}
	})

	t.Run("allows zero capacity for non-applicable resources", func(t *testing.T) {
		repo := &resourceRepoStub{}
		svc := NewResourceService(repo, func() int64 { return 3 }, nil)

		_, err := svc.Create(context.Background(), ResourceInput{
			Name:        "Interactive Projector X",
			Type:        ResourceTypeProjector,
			Capacity:    0,
			Attended:    0,
			Utilization: 0,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})
}

func TestResourceService_Update(t *testing.T) {
	t.Run("reports missing resources", func(t *testing.T) {
		repo := &resourceRepoStub{getErr: persistence.ErrNotFound}
		svc := NewResourceService(repo, nil, nil)

		_, err := svc.Update(context.Background(), 99, ResourceInput{
			Name: "Renamed", Type: ResourceTypeLab, Capacity: 10, Utilization: 10,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("replaces mutable fields and keeps identity", func(t *testing.T) {
		existing := Resource{
			ID:          7,
			Name:        "History Wing A",
			Type:        ResourceTypeClassroom,
			Capacity:    45,
			Attended:    15,
			Utilization: 30,
			Status:      ResourceStatusAvailable,
			CreatedAt:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		}
		repo := &resourceRepoStub{getResource: existing}
		now := time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)
		svc := NewResourceService(repo, nil, func() time.Time { return now })

		updated, err := svc.Update(context.Background(), 7, ResourceInput{
			Name:        "History Wing B",
			Type:        ResourceTypeClassroom,
			Capacity:    50,
			Attended:    20,
			Utilization: 35,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if updated.ID != 7 {
			t.Fatalf("expected ID to be immutable, got %d", updated.ID)
		}
		if updated.Name != "History Wing B" || updated.Capacity != 50 {
			t.Fatalf("expected mutable fields replaced, got %+v", updated)
		}
		if !updated.CreatedAt.Equal(existing.CreatedAt) {
			t.Fatalf("expected CreatedAt preserved, got %v", updated.CreatedAt)
		}
		if !updated.UpdatedAt.Equal(now) {
			t.Fatalf("expected UpdatedAt from injected clock, got %v", updated.UpdatedAt)
		}
	})

	t.Run("rejects invalid input before persisting", func(t *testing.T) {
		repo := &resourceRepoStub{getResource: Resource{ID: 7, Name: "Lab"}}
		svc := NewResourceService(repo, nil, nil)

		_, err := svc.Update(context.Background(), 7, ResourceInput{Name: "", Type: ResourceTypeLab})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if repo.updated.ID != 0 {
			t.Fatalf("expected repository untouched on validation failure")
		}
	})
}

func TestResourceService_Delete(t *testing.T) {
	t.Run("reports missing resources", func(t *testing.T) {
		repo := &resourceRepoStub{deleteErr: persistence.ErrNotFound}
		svc := NewResourceService(repo, nil, nil)

		if err := svc.Delete(context.Background(), 5); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delegates deletion to the repository", func(t *testing.T) {
		repo := &resourceRepoStub{}
		svc := NewResourceService(repo, nil, nil)

		if err := svc.Delete(context.Background(), 5); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if repo.deletedID != 5 {
			t.Fatalf("expected repository to receive ID 5, got %d", repo.deletedID)
		}
	})
}

func TestResourceService_List(t *testing.T) {
	repo := &resourceRepoStub{list: []Resource{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	svc := NewResourceService(repo, nil, nil)

	resources, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(resources) != 2 || resources[0].ID != 1 || resources[1].ID != 2 {
		t.Fatalf("expected insertion order preserved, got %+v", resources)
	}
}
