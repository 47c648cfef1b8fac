package format

import "fmt"

// HHMMSS renders a second count as a clock label: "0:59", "1:30",
// "1:01:01". The hour component appears only at 3600s and above.
// Negative values are clamped to zero.
func HHMMSS(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
