// internal/chat/temporal_test.go
package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time { return f.t }

var testWeekdays = []string{
	"Chủ nhật", "Thứ hai", "Thứ ba", "Thứ tư", "Thứ năm", "Thứ sáu", "Thứ bảy",
}

func TestNowSummary(t *testing.T) {
	// 2025-03-15 is a Saturday.
	saturdayAfternoon := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	mondayNight := time.Date(2025, 3, 17, 23, 5, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		strict   bool
		open     string
		close    string
		expected string
	}{
		{
			name:     "strict mode is date and time only",
			now:      saturdayAfternoon,
			strict:   true,
			open:     "08:00",
			close:    "21:30",
			expected: "Thứ bảy, 15/03/2025 — 14:30",
		},
		{
			name:     "conversational inside opening hours",
			now:      saturdayAfternoon,
			open:     "08:00",
			close:    "21:30",
			expected: "Thứ bảy, 15/03/2025 — 14:30 (đang trong giờ làm việc 08:00–21:30)",
		},
		{
			name:     "conversational outside opening hours",
			now:      mondayNight,
			open:     "08:00",
			close:    "21:30",
			expected: "Thứ hai, 17/03/2025 — 23:05 (đang ngoài giờ làm việc 08:00–21:30)",
		},
		{
			name:     "conversational without configured hours",
			now:      saturdayAfternoon,
			expected: "Thứ bảy, 15/03/2025 — 14:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responder := NewTemporalResponder(
				fixedClock{t: tt.now}, time.UTC, testWeekdays, tt.strict, tt.open, tt.close,
			)
			assert.Equal(t, tt.expected, responder.NowSummary())
		})
	}
}
