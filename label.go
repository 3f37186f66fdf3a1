package cadence

import (
	"fmt"
	"math"
	"time"
)

// IntervalLabel renders a due offset for answer buttons: minutes under an
// hour, hours under a day, days under 30 days, then months ("mo", 30 days)
// and years ("y", 365 days). Each unit is rounded to the nearest integer.
func IntervalLabel(d time.Duration) string {
	mins := math.Round(d.Minutes())
	hours := math.Round(d.Hours())
	days := math.Round(d.Hours() / 24)

	switch {
	case mins < 60:
		return fmt.Sprintf("%dm", int(mins))
	case hours < 24:
		return fmt.Sprintf("%dh", int(hours))
	case days < 30:
		return fmt.Sprintf("%dd", int(days))
	case days < 365:
		return fmt.Sprintf("%dmo", int(math.Round(days/30)))
	default:
		return fmt.Sprintf("%dy", int(math.Round(days/365)))
	}
}
