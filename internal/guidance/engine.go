// Package guidance contains the pure query functions of the booking core:
// search, recommendation, and display-status derivation over snapshots of the
// resource and booking collections. Nothing here mutates state.
package guidance

import (
	"sort"
	"strings"
)

// TypeFilterAll matches every resource type.
const TypeFilterAll = "all"

// Resource is the snapshot view the engine operates on.
type Resource struct {
	ID          int64
	Name        string
	Type        string
	Utilization int
}

// DisplayStatus is the occupancy label derived for rendering.
type DisplayStatus string

const (
	// DisplayAvailable indicates no booking references the resource.
	DisplayAvailable DisplayStatus = "available"
	// DisplayOccupied indicates at least one booking references the resource,
	// regardless of that booking's approval state.
	DisplayOccupied DisplayStatus = "occupied"
)

// OccupiedSet reports which resource IDs have at least one referencing booking.
type OccupiedSet map[int64]bool

// Search filters resources by a case-insensitive substring of the name and an
// exact type match. typeFilter equal to TypeFilterAll matches every type.
// Input order is preserved.
func Search(resources []Resource, term, typeFilter string) []Resource {
	needle := strings.ToLower(strings.TrimSpace(term))

	matched := make([]Resource, 0, len(resources))
	for _, resource := range resources {
		if typeFilter != TypeFilterAll && resource.Type != typeFilter {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(resource.Name), needle) {
			continue
		}
		matched = append(matched, resource)
	}
	return matched
}

// recommendationCeiling is the utilization percentage at or above which a
// resource is no longer suggested.
const recommendationCeiling = 50

// Recommend returns unoccupied resources with utilization below the ceiling,
// sorted ascending by utilization. Ties keep their original relative order.
func Recommend(resources []Resource, occupied OccupiedSet) []Resource {
	candidates := make([]Resource, 0, len(resources))
	for _, resource := range resources {
		if occupied[resource.ID] {
			continue
		}
		if resource.Utilization >= recommendationCeiling {
			continue
		}
		candidates = append(candidates, resource)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Utilization < candidates[j].Utilization
	})
	return candidates
}

// Derive returns the occupancy label for a single resource. The stored status
// field is intentionally ignored; occupancy is always derived from bookings.
func Derive(resourceID int64, occupied OccupiedSet) DisplayStatus {
	if occupied[resourceID] {
		return DisplayOccupied
	}
	return DisplayAvailable
}
