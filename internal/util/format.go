package util

import (
	"fmt"
	"time"
)

// FormatSeconds rounds d to whole seconds, e.g. "6"
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.0f", d.Seconds())
}

// FormatClock formats an offset from midnight as HH:MM:SS
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// FormatDuration formats d as a compact human duration
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}
