// internal/chat/temporal.go
package chat

import (
	"fmt"
	"time"
)

// Clock abstracts time.Now so temporal replies are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TemporalResponder renders the current date/time the way the shop
// presents it to customers.
type TemporalResponder struct {
	clock    Clock
	location *time.Location
	weekdays []string // Sunday first, 7 entries
	strict   bool
	open     string // "HH:MM", empty when not configured
	close    string
}

func NewTemporalResponder(clock Clock, loc *time.Location, weekdays []string, strict bool, open, close string) *TemporalResponder {
	return &TemporalResponder{
		clock:    clock,
		location: loc,
		weekdays: weekdays,
		strict:   strict,
		open:     open,
		close:    close,
	}
}

// NowSummary returns "<weekday>, dd/mm/yyyy — HH:MM" in the configured
// timezone. Outside strict mode, when opening hours are configured, it
// appends whether the shop is currently open. The HH:MM comparison is
// lexical, which is correct for zero-padded 24h times.
func (t *TemporalResponder) NowSummary() string {
	now := t.clock.Now().In(t.location)

	weekday := ""
	if idx := int(now.Weekday()); idx < len(t.weekdays) {
		weekday = t.weekdays[idx]
	}

	base := fmt.Sprintf("%s, %s — %s", weekday, now.Format("02/01/2006"), now.Format("15:04"))

	if t.strict {
		return base
	}
	if t.open != "" && t.close != "" {
		nowHM := now.Format("15:04")
		state := "ngoài"
		if nowHM >= t.open && nowHM <= t.close {
			state = "trong"
		}
		return fmt.Sprintf("%s (đang %s giờ làm việc %s–%s)", base, state, t.open, t.close)
	}
	return base
}
