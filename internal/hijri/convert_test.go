package hijri

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestJulianDayNumber(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             int
	}{
		{"J2000", 2000, 1, 1, 2451545},
		{"first gregorian day", 1582, 10, 15, 2299161},
		{"last julian day", 1582, 10, 4, 2299160},
		{"julian period start", -4712, 1, 1, 0},
		{"unix epoch", 1970, 1, 1, 2440588},
		{"leap day", 2024, 2, 29, 2460370},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JulianDayNumber(tt.year, tt.month, tt.day))
		})
	}
}

func TestJulianDayNumber_CutoverIsContiguous(t *testing.T) {
	// 4 October 1582 (Julian) is followed directly by 15 October 1582 (Gregorian).
	assert.Equal(t, JulianDayNumber(1582, 10, 4)+1, JulianDayNumber(1582, 10, 15))
}

func TestFromJDN_FirstMuharram(t *testing.T) {
	assert.Equal(t, Date{Day: 1, Month: 1, Year: 1}, FromJDN(1948439))
}

func TestConvert_ReferencePairs(t *testing.T) {
	tests := []struct {
		greg time.Time
		want Date
	}{
		{date(2000, 1, 1), Date{25, 9, 1420}},
		{date(1970, 1, 1), Date{23, 10, 1389}},
		{date(2023, 3, 22), Date{1, 9, 1444}},
		{date(2024, 3, 10), Date{1, 9, 1445}},
		{date(2024, 4, 9), Date{1, 10, 1445}},
		{date(2024, 6, 16), Date{10, 12, 1445}},
		{date(2024, 7, 7), Date{1, 1, 1446}},
		{date(2025, 3, 1), Date{2, 9, 1446}},
		{date(2025, 6, 26), Date{1, 1, 1447}},
		{date(2026, 2, 17), Date{1, 9, 1447}},
		{date(2026, 10, 16), Date{5, 5, 1448}},
	}

	for _, tt := range tests {
		t.Run(tt.greg.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.greg, 0))
		})
	}
}

func TestConvert_UsesCivilDateOfLocation(t *testing.T) {
	yangon := time.FixedZone("MMT", 6*3600+1800)
	// 00:30 local on 17 Feb is still 16 Feb in UTC; the local civil date wins.
	local := time.Date(2026, 2, 17, 0, 30, 0, 0, yangon)
	assert.Equal(t, Date{1, 9, 1447}, Convert(local, 0))
}

func TestConvert_OffsetLinearity(t *testing.T) {
	start := date(2023, 1, 1)
	for i := 0; i < 3*366; i++ {
		d := start.AddDate(0, 0, i)
		assert.Equal(t, Convert(d.AddDate(0, 0, 1), 0), Convert(d, 1), d.Format("2006-01-02"))
		assert.Equal(t, Convert(d.AddDate(0, 0, -1), 0), Convert(d, -1), d.Format("2006-01-02"))
	}
}

func TestConvert_MonthsAreContiguous(t *testing.T) {
	prev := Convert(date(2020, 1, 1), 0)
	for i := 1; i < 5000; i++ {
		cur := Convert(date(2020, 1, 1).AddDate(0, 0, i), 0)
		if cur.Day == 1 {
			assert.Contains(t, []int{29, 30}, prev.Day, "month %d/%d length", prev.Month, prev.Year)
			assert.Equal(t, prev.Month%12+1, cur.Month)
		} else {
			assert.Equal(t, prev.Day+1, cur.Day)
			assert.Equal(t, prev.Month, cur.Month)
		}
		prev = cur
	}
}

func TestDate_Format(t *testing.T) {
	d := Date{Day: 1, Month: 9, Year: 1447}
	assert.Equal(t, "Ramadan", d.MonthName())
	assert.Equal(t, "1 Ramadan 1447 AH", d.Format())
	assert.Equal(t, "", Date{Month: 13}.MonthName())
}
