package dashboard

import "fmt"

// FormatVolume renders a cubic-meters-per-year quantity for stat cards and
// the CLI summary: millions above 1M, thousands above 1k, plain below.
func FormatVolume(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.2fM m³", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fk m³", v/1_000)
	default:
		return fmt.Sprintf("%.0f m³", v)
	}
}

// FormatShare renders a [0,1] fraction as a whole-number percentage label.
func FormatShare(share float64) string {
	return fmt.Sprintf("%.0f%%", share*100)
}
