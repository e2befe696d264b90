// Package lifecycle derives an election's status from its voting window.
package lifecycle

import (
	"time"

	"github.com/mmynk/ballotbox/internal/models"
)

// DeriveStatus returns the lifecycle state of a window at the instant now.
// Both ends of the window are inclusive: now == start and now == end are active.
func DeriveStatus(start, end, now time.Time) models.Status {
	switch {
	case now.Before(start):
		return models.StatusUpcoming
	case now.After(end):
		return models.StatusCompleted
	default:
		return models.StatusActive
	}
}

// Refresh recomputes the status of every election at now and returns the IDs
// whose stored status changed, mapped to their new status.
func Refresh(elections []*models.Election, now time.Time) map[string]models.Status {
	changed := make(map[string]models.Status)
	for _, e := range elections {
		status := DeriveStatus(e.StartAt, e.EndAt, now)
		if status != e.Status {
			changed[e.ID] = status
			e.Status = status
		}
	}
	return changed
}
