package application

import "time"

// SeedResources returns the fixed catalog a fresh deployment starts with when
// no persisted state exists. IDs are stable because persisted bookings from
// earlier sessions reference them.
func SeedResources(now time.Time) []Resource {
	build := func(id int64, name string, kind ResourceType, capacity, attended, utilization int) Resource {
		return Resource{
			ID:          id,
			Name:        name,
			Type:        kind,
			Capacity:    capacity,
			Attended:    attended,
			Utilization: utilization,
			Status:      ResourceStatusAvailable,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	return []Resource{
		build(1, "Quantum Lab 1", ResourceTypeLab, 30, 12, 45),
		build(2, "Main Auditorium", ResourceTypeClassroom, 200, 45, 15),
		build(3, "Interactive Projector X", ResourceTypeProjector, 0, 0, 0),
		build(4, "Neural Network Hub", ResourceTypeLab, 25, 20, 80),
		build(5, "History Wing A", ResourceTypeClassroom, 45, 15, 30),
	}
}
