package utils

import (
	"fmt"
	"time"
)

// TimeAgo humanizes how long ago t happened relative to now.
// Buckets: <1m "Just now", then minutes, hours, days, weeks, months, years.
func TimeAgo(t time.Time, now time.Time) string {
	elapsed := now.Sub(t)

	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	case elapsed < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(elapsed.Hours()/24/7))
	case elapsed < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(elapsed.Hours()/24/30))
	default:
		return fmt.Sprintf("%dy ago", int(elapsed.Hours()/24/365))
	}
}
