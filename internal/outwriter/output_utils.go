package outwriter

import (
	"strconv"
	"time"
)

// formatOptionalTime renders a nullable timestamp for display.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

// formatOptionalInt32 renders a nullable integer for display.
func formatOptionalInt32(v *int32) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(int(*v))
}
