package hijri

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupEvent(t *testing.T) {
	tests := []struct {
		name       string
		day, month int
		wantKey    string
	}{
		{"new year", 1, 1, "new_year"},
		{"ashura", 10, 1, "ashura"},
		{"mawlid", 12, 3, "mawlid"},
		{"isra", 27, 7, "isra"},
		{"baraat", 15, 8, "baraat"},
		{"first of ramadan", 1, 9, "ramadan_start"},
		{"qadr range start", 21, 9, "qadr"},
		{"qadr range end", 30, 9, "qadr"},
		{"fitr", 1, 10, "fitr"},
		{"fitr third day", 3, 10, "fitr"},
		{"hajj season", 8, 12, "hajj"},
		{"arafah", 9, 12, "arafah"},
		{"adha", 10, 12, "adha"},
		{"tashriq", 13, 12, "adha"},
		{"ordinary day", 2, 1, ""},
		{"ramadan middle", 15, 9, ""},
		{"after fitr", 4, 10, ""},
		{"after adha", 14, 12, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupEvent(tt.day, tt.month)
			if tt.wantKey == "" {
				assert.False(t, ok, "unexpected event %q", got.Key)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantKey, got.Key)
		})
	}
}

func TestEvents_DoNotOverlap(t *testing.T) {
	for month := 1; month <= 12; month++ {
		for day := 1; day <= 30; day++ {
			matches := 0
			for _, e := range Events {
				if e.contains(month, day) {
					matches++
				}
			}
			assert.LessOrEqual(t, matches, 1, "%d/%d", day, month)
		}
	}
}

func TestEventFor_ConvertedDates(t *testing.T) {
	tests := []struct {
		greg    string
		wantKey string
	}{
		{"2024-03-10", "ramadan_start"},
		{"2024-03-30", "qadr"},
		{"2024-04-09", "fitr"},
		{"2024-06-14", "hajj"},
		{"2024-06-15", "arafah"},
		{"2024-06-16", "adha"},
		{"2024-06-20", ""},
	}

	for _, tt := range tests {
		t.Run(tt.greg, func(t *testing.T) {
			d, err := parseDay(tt.greg)
			require.NoError(t, err)
			e, ok := EventFor(Convert(d, 0))
			if tt.wantKey == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantKey, e.Key)
		})
	}
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
