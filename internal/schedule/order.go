package schedule

import (
	"sort"

	"reminderd/internal/models"
)

// Both orders treat a nil trigger as sorting after every concrete time.
// The rule lives here, in Go, rather than in a database-specific NULLS LAST
// clause, so listings behave the same no matter what backs the store.

func lessByTriggerFirst(a, b *models.Reminder) bool {
	switch {
	case a.TriggerOn == nil && b.TriggerOn == nil:
		return a.Priority > b.Priority
	case a.TriggerOn == nil:
		return false
	case b.TriggerOn == nil:
		return true
	case a.TriggerOn.Equal(*b.TriggerOn):
		return a.Priority > b.Priority
	default:
		return a.TriggerOn.Before(*b.TriggerOn)
	}
}

func lessByPriorityFirst(a, b *models.Reminder) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	switch {
	case b.TriggerOn == nil:
		return a.TriggerOn != nil
	case a.TriggerOn == nil:
		return false
	default:
		return a.TriggerOn.Before(*b.TriggerOn)
	}
}

// SortByTriggerFirst orders reminders by soonest trigger, breaking ties on
// higher priority.
func SortByTriggerFirst(rs []models.Reminder) {
	sort.SliceStable(rs, func(i, j int) bool { return lessByTriggerFirst(&rs[i], &rs[j]) })
}

// SortByPriorityFirst orders reminders by higher priority, breaking ties on
// soonest trigger. This is the order every listing view returns.
func SortByPriorityFirst(rs []models.Reminder) {
	sort.SliceStable(rs, func(i, j int) bool { return lessByPriorityFirst(&rs[i], &rs[j]) })
}
