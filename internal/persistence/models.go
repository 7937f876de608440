package persistence

import "time"

// Resource represents a bookable campus asset as stored by the persistence layer.
type Resource struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Capacity    int       `json:"capacity"`
	Attended    int       `json:"attended"`
	Utilization int       `json:"utilization"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Booking represents a booking request as stored by the persistence layer.
type Booking struct {
	ID         int64     `json:"id"`
	ResourceID int64     `json:"resourceId"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Purpose    string    `json:"purpose"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
