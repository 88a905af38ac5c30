package engine

import (
	"time"

	"github.com/okaradag/garagelog/internal/models"
)

// BuildSchedule partitions a vehicle's maintenance history into upcoming and
// overdue buckets and folds in generated recommendations.
//
// The date is authoritative over a stale status: an "upcoming" record dated
// today or earlier counts as overdue rather than being rejected, which
// reconciles records nobody updated against the clock. Completed, skipped,
// cancelled, and in-progress records belong to neither bucket.
func BuildSchedule(vehicle models.Vehicle, history []models.Maintenance, now time.Time) models.MaintenanceSchedule {
	schedule := models.MaintenanceSchedule{
		Upcoming:        []models.Maintenance{},
		Overdue:         []models.Maintenance{},
		Recommendations: Recommend(vehicle, history),
	}

	for _, m := range history {
		switch m.Status {
		case models.MaintenanceUpcoming:
			if m.Date.After(now) {
				schedule.Upcoming = append(schedule.Upcoming, m)
			} else {
				schedule.Overdue = append(schedule.Overdue, m)
			}
		case models.MaintenanceDue, models.MaintenanceOverdue:
			schedule.Overdue = append(schedule.Overdue, m)
		}
	}

	return schedule
}
