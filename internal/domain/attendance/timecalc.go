package attendance

import (
	"fmt"
	"time"
)

// BreakMinutes sums the closed intervals in whole minutes. Open intervals
// contribute nothing until they are closed.
func BreakMinutes(breaks []BreakInterval) int {
	total := 0
	for _, b := range breaks {
		if b.End == nil {
			continue
		}
		total += int(b.End.Sub(b.Start).Minutes())
	}
	return total
}

// NetWorkMinutes returns the worked minutes net of breaks, or nil when
// either punch is missing. The result is floored at zero so a malformed
// break total (e.g. exceeding the shift after a bad correction) never
// surfaces as negative time.
func NetWorkMinutes(clockIn, clockOut *time.Time, breakMinutes int) *int {
	if clockIn == nil || clockOut == nil {
		return nil
	}
	net := int(clockOut.Sub(*clockIn).Minutes()) - breakMinutes
	if net < 0 {
		net = 0
	}
	return &net
}

// FormatMinutes renders a minute count as "H:MM" (no leading zero on the
// hours, minutes zero-padded).
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// FormatMinutesBlank is the list-display variant: a missing value or an
// exact zero renders as empty, not "0:00".
func FormatMinutesBlank(minutes *int) string {
	if minutes == nil || *minutes == 0 {
		return ""
	}
	return FormatMinutes(*minutes)
}
