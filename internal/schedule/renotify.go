package schedule

import "time"

// PhonePriorityThreshold is the priority at which a reminder opts into the
// phone re-notification channel.
const PhonePriorityThreshold = 100

// minRetrigger guards the decay formula against ever producing a sub-minute
// interval. Unreachable while priorities are capped at 4800 (the shortest
// interval there is 30 minutes), but cheap to keep.
const minRetrigger = time.Minute

// RetriggerInterval derives the phone re-notification interval from the
// priority: 24/(priority/100/60) minutes. Priority 100 re-notifies daily,
// priority 4800 every 30 minutes.
func RetriggerInterval(priority int) time.Duration {
	minutes := 24 / (float64(priority) / 100.0 / 60.0)
	d := time.Duration(minutes * float64(time.Minute))
	if d < minRetrigger {
		d = minRetrigger
	}
	return d
}

// NeedsPhoneRenotify reports whether a phone-class re-notification is due.
// Reminders below the threshold never qualify; a reminder that has never been
// notified always does.
func NeedsPhoneRenotify(priority int, phoneNotifiedOn *time.Time, now time.Time) bool {
	if priority < PhonePriorityThreshold {
		return false
	}
	if phoneNotifiedOn == nil {
		return true
	}
	return now.Sub(*phoneNotifiedOn) > RetriggerInterval(priority)
}
