package humanize

import "time"

const (
	oneMinute = time.Minute
	oneHour   = time.Hour
	oneDay    = 24 * time.Hour
	oneWeek   = 7 * oneDay
)

// TimeAgo buckets a timestamp's distance from now into the coarse labels the
// listings show. Finer buckets in the first hours, then it flattens out;
// nobody needs minute precision on a week-old reminder.
func TimeAgo(t time.Time) string {
	return timeAgoAt(t, time.Now())
}

func timeAgoAt(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff < oneMinute:
		return "< 1m"
	case diff < oneHour:
		return "< 1h"
	case diff < 2*oneHour:
		return "< 2h"
	case diff < 3*oneHour:
		return "< 3h"
	case diff < 4*oneHour:
		return "< 4h"
	case diff < 8*oneHour:
		return "< 8h"
	case diff < oneDay:
		return "today"
	case diff < oneWeek:
		return "this week"
	default:
		return "> 1w"
	}
}
