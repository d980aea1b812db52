package types

// HabitStatus is the lifecycle status of a habit. Archiving and pausing are
// soft status changes; rows are removed only by an explicit delete.
type HabitStatus string

const (
	HabitStatusActive   HabitStatus = "active"
	HabitStatusArchived HabitStatus = "archived"
	HabitStatusPaused   HabitStatus = "paused"
)
