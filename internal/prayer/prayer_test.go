package prayer

import (
	"testing"
	"time"
)

// helper to build a time.Time on a given date in UTC.
func makeTime(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 10, 16, hour, min, 0, 0, time.UTC)
}

// sampleSet is a fixed TimeSet for the Yangon reference day.
func sampleSet() TimeSet {
	return TimeSet{
		Fajr:    newTime(Fajr, 4+46.5/60),
		Sunrise: newTime(Sunrise, 5+58.5/60),
		Zawal:   newTime(Dhuhr, 11+50.5/60),
		Asr:     newTime(Asr, 16+3.5/60),
		Maghrib: newTime(Maghrib, 17+41.5/60),
		Isha:    newTime(Isha, 18+53.5/60),
	}
}

// ---------------------------------------------------------------------------
// newTime
// ---------------------------------------------------------------------------

func TestNewTime(t *testing.T) {
	tests := []struct {
		name      string
		raw       float64
		wantMin   int
		wantShift int
		wantClock string
	}{
		{"morning", 4.77477, 286, 0, "4:46 AM"},
		{"noon", 12.0, 720, 0, "12:00 PM"},
		{"midnight", 0, 0, 0, "12:00 AM"},
		{"last minute", 23.999, 1439, 0, "11:59 PM"},
		{"past midnight", 25.5, 90, 1, "1:30 AM"},
		{"before midnight", -0.25, 1425, -1, "11:45 PM"},
		{"floor not round", 10 + 59.9/60, 659, 0, "10:59 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTime(Fajr, tt.raw)
			if got.Minute != tt.wantMin || got.DayShift != tt.wantShift || got.Clock != tt.wantClock {
				t.Errorf("newTime(%v) = {%d %d %q}, want {%d %d %q}",
					tt.raw, got.Minute, got.DayShift, got.Clock, tt.wantMin, tt.wantShift, tt.wantClock)
			}
			if got.Hours < 0 || got.Hours >= 24 {
				t.Errorf("newTime(%v).Hours = %v, want [0,24)", tt.raw, got.Hours)
			}
		})
	}
}

func TestNewTime_RoundingGuard(t *testing.T) {
	got := newTime(Isha, 24-1e-15)
	if got.Minute < 0 || got.Minute >= minutesPerDay {
		t.Fatalf("minute %d out of range", got.Minute)
	}
}

func TestTime_Format24(t *testing.T) {
	if got := newTime(Asr, 16+3.5/60).Format24(); got != "16:03" {
		t.Errorf("Format24 = %q, want 16:03", got)
	}
	if got := undefinedTime(Isha).Format24(); got != "--:--" {
		t.Errorf("undefined Format24 = %q, want --:--", got)
	}
}

func TestTime_On(t *testing.T) {
	loc := Zone(6.5)
	date := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	got := newTime(Isha, 25.5).On(date, loc)
	want := time.Date(2026, 10, 17, 1, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("On = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// Prayers
// ---------------------------------------------------------------------------

func TestPrayers_DefaultPrayers(t *testing.T) {
	date := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	prayers, err := Prayers(sampleSet(), date, time.UTC, DefaultPrayerNames)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prayers) != len(DefaultPrayerNames) {
		t.Fatalf("expected %d prayers, got %d", len(DefaultPrayerNames), len(prayers))
	}
	for i, name := range DefaultPrayerNames {
		if prayers[i].Name != name {
			t.Errorf("prayer[%d].Name = %q, want %q", i, prayers[i].Name, name)
		}
	}
	if prayers[0].Time.Hour() != 4 || prayers[0].Time.Minute() != 46 {
		t.Errorf("Fajr time = %v, want 04:46", prayers[0].Time.Format("15:04"))
	}
}

func TestPrayers_SelectedSubsetAndAliases(t *testing.T) {
	date := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	selected := []string{"fajr", "Zawal", "ISHA"}
	prayers, err := Prayers(sampleSet(), date, time.UTC, selected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prayers) != 3 {
		t.Fatalf("expected 3 prayers, got %d", len(prayers))
	}
	if prayers[0].Name != Fajr || prayers[1].Name != Dhuhr || prayers[2].Name != Isha {
		t.Errorf("unexpected prayer names: %v", prayers)
	}
}

func TestPrayers_UnknownPrayer(t *testing.T) {
	date := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	_, err := Prayers(sampleSet(), date, time.UTC, []string{"Tahajjud"})
	if err == nil {
		t.Fatal("expected error for unknown prayer, got nil")
	}
}

func TestPrayers_SkipsUndefined(t *testing.T) {
	set := sampleSet()
	set.Isha = undefinedTime(Isha)

	date := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	prayers, err := Prayers(set, date, time.UTC, DefaultPrayerNames)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prayers) != 5 {
		t.Fatalf("expected 5 prayers, got %d", len(prayers))
	}
	if prayers[4].Name != Maghrib {
		t.Errorf("last prayer = %s, want Maghrib", prayers[4].Name)
	}
}

// ---------------------------------------------------------------------------
// NextPrayer / CurrentPrayer
// ---------------------------------------------------------------------------

func samplePrayers(t *testing.T) []Prayer {
	t.Helper()
	date := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	prayers, err := Prayers(sampleSet(), date, time.UTC, DefaultPrayerNames)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prayers
}

func TestNextPrayer(t *testing.T) {
	prayers := samplePrayers(t)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before first prayer", makeTime(t, 3, 0), Fajr},
		{"middle of day", makeTime(t, 13, 0), Asr},
		{"exact time moves on", makeTime(t, 11, 50), Asr},
		{"after all prayers", makeTime(t, 22, 0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := NextPrayer(prayers, tt.now)
			got := ""
			if next != nil {
				got = next.Name
			}
			if got != tt.want {
				t.Errorf("NextPrayer at %s = %q, want %q", tt.now.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestNextPrayer_EmptyList(t *testing.T) {
	if next := NextPrayer([]Prayer{}, makeTime(t, 12, 0)); next != nil {
		t.Errorf("expected nil for empty prayer list, got %v", next)
	}
}

func TestCurrentPrayer(t *testing.T) {
	prayers := samplePrayers(t)

	if cur := CurrentPrayer(prayers, makeTime(t, 3, 0)); cur != nil {
		t.Errorf("expected nil before Fajr, got %s", cur.Name)
	}
	if cur := CurrentPrayer(prayers, makeTime(t, 11, 50)); cur == nil || cur.Name != Dhuhr {
		t.Errorf("expected Dhuhr at its start, got %v", cur)
	}
	if cur := CurrentPrayer(prayers, makeTime(t, 23, 0)); cur == nil || cur.Name != Isha {
		t.Errorf("expected Isha late at night, got %v", cur)
	}
}

// ---------------------------------------------------------------------------
// TimeRemaining / FormatRemaining
// ---------------------------------------------------------------------------

func TestTimeRemaining(t *testing.T) {
	p := Prayer{Name: Asr, Time: makeTime(t, 16, 3)}

	d := TimeRemaining(p, makeTime(t, 14, 0))
	if d.Hours() < 2.0 || d.Hours() > 2.1 {
		t.Errorf("expected ~2h, got %v", d)
	}
	if d := TimeRemaining(p, makeTime(t, 17, 0)); d >= 0 {
		t.Errorf("expected negative duration, got %v", d)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"hours and minutes", 2*time.Hour + 15*time.Minute, "2h 15m"},
		{"only minutes", 45 * time.Minute, "45m"},
		{"exactly one hour", 1 * time.Hour, "1h 0m"},
		{"zero", 0, "0m"},
		{"negative", -30 * time.Minute, "0m"},
		{"large", 10*time.Hour + 59*time.Minute, "10h 59m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRemaining(tt.duration)
			if got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Names
// ---------------------------------------------------------------------------

func TestShortNames_AllPrayers(t *testing.T) {
	for _, name := range AllPrayerNames {
		if _, ok := ShortNames[name]; !ok {
			t.Errorf("ShortNames missing entry for prayer %q", name)
		}
	}
}

func TestCanonicalName(t *testing.T) {
	tests := map[string]string{
		"fajr":    Fajr,
		" Asr ":   Asr,
		"zuhr":    Dhuhr,
		"zawal":   Dhuhr,
		"MAGHRIB": Maghrib,
	}
	for in, want := range tests {
		if got, ok := CanonicalName(in); !ok || got != want {
			t.Errorf("CanonicalName(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := CanonicalName("witr"); ok {
		t.Error("CanonicalName(witr) should fail")
	}
}
