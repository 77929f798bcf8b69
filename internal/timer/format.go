package timer

import "fmt"

// Format renders elapsed milliseconds as MM:SS:HH. Fields truncate toward
// zero. Minutes are not capped, so 100 minutes and up widen the first field.
func Format(elapsedMillis int64) string {
	if elapsedMillis < 0 {
		elapsedMillis = 0
	}
	minutes := elapsedMillis / 1000 / 60
	seconds := (elapsedMillis / 1000) % 60
	hundredths := (elapsedMillis % 1000) / 10
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, hundredths)
}
