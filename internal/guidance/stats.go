package guidance

import "math"

// Summary holds the dashboard counters computed from both collections.
type Summary struct {
	TotalResources int
	// ActiveBookings counts every booking regardless of approval state.
	ActiveBookings int
	// AvailableNow is the number of resources without any referencing
	// booking. It subtracts distinct occupied resources rather than raw
	// booking count, so several bookings on one resource do not undercount,
	// and it never goes negative.
	AvailableNow int
	// AvgUtilization is the mean utilization rounded to the nearest integer,
	// zero when no resources exist.
	AvgUtilization int
}

// Summarize computes the dashboard counters for a snapshot.
func Summarize(resources []Resource, bookingCount int, occupied OccupiedSet) Summary {
	summary := Summary{
		TotalResources: len(resources),
		ActiveBookings: bookingCount,
	}

	occupiedCount := 0
	for _, resource := range resources {
		if occupied[resource.ID] {
			occupiedCount++
		}
	}
	if available := summary.TotalResources - occupiedCount; available > 0 {
		summary.AvailableNow = available
	}

	if len(resources) > 0 {
		total := 0
		for _, resource := range resources {
			total += resource.Utilization
		}
		summary.AvgUtilization = int(math.Round(float64(total) / float64(len(resources))))
	}

	return summary
}
