package prayer

import (
	"strings"
	"testing"
	"time"
)

// helper: a fixed prayer and "now" time for format tests.
func formatTestPrayer() (Prayer, time.Time) {
	pTime := time.Date(2026, 10, 16, 16, 3, 0, 0, time.UTC)
	now := time.Date(2026, 10, 16, 13, 48, 0, 0, time.UTC)
	return Prayer{Name: Asr, Time: pTime}, now
}

func TestFormatOutput_AllBuiltinModes(t *testing.T) {
	p, now := formatTestPrayer()

	tests := []struct {
		mode string
		want string
	}{
		{FormatTimeRemaining, "2h 15m"},
		{FormatNextPrayerTime, "16:03"},
		{FormatNameAndTime, "Asr 16:03"},
		{FormatNameAndRemaining, "Asr 2h 15m"},
		{FormatShortNameAndTime, "A 16:03"},
		{FormatShortNameAndRemain, "A 2h 15m"},
		{FormatFull, "Asr 16:03 (2h 15m)"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got := FormatOutput(p, now, tt.mode, Layout24h)
			if got != tt.want {
				t.Errorf("FormatOutput(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_12HourFormat(t *testing.T) {
	p, now := formatTestPrayer()

	got := FormatOutput(p, now, FormatNameAndTime, Layout12h)
	if got != "Asr 4:03 PM" {
		t.Errorf("12h format = %q, want %q", got, "Asr 4:03 PM")
	}
}

func TestFormatOutput_AdjustedIsMarked(t *testing.T) {
	now := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	p := Prayer{Name: Fajr, Time: time.Date(2026, 6, 21, 3, 12, 0, 0, time.UTC), Adjusted: true}

	if got := FormatOutput(p, now, FormatNameAndTime, Layout24h); got != "Fajr 03:12*" {
		t.Errorf("adjusted = %q, want %q", got, "Fajr 03:12*")
	}
	if got := FormatOutput(p, now, "{{if .Adjusted}}adj{{end}}", Layout24h); got != "adj" {
		t.Errorf("adjusted template = %q, want %q", got, "adj")
	}
}

func TestFormatOutput_UnknownModeDefaultsToNameAndTime(t *testing.T) {
	p, now := formatTestPrayer()

	got := FormatOutput(p, now, "nonexistent-format", Layout24h)
	if got != "Asr 16:03" {
		t.Errorf("unknown mode = %q, want %q", got, "Asr 16:03")
	}
}

func TestFormatOutput_CustomTemplate(t *testing.T) {
	p, now := formatTestPrayer()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{
			"name and remaining",
			"{{.Name}} in {{.Remaining}}",
			"Asr in 2h 15m",
		},
		{
			"short name and time",
			"{{.ShortName}} @ {{.Time}}",
			"A @ 16:03",
		},
		{
			"hours and minutes fields",
			"{{.Hours}}h {{.Minutes}}m until {{.Name}}",
			"2h 15m until Asr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatOutput(p, now, tt.tmpl, Layout24h)
			if got != tt.want {
				t.Errorf("custom template %q = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_InvalidTemplate(t *testing.T) {
	p, now := formatTestPrayer()

	got := FormatOutput(p, now, "{{.Invalid", Layout24h)
	if !strings.HasPrefix(got, "template-err:") {
		t.Errorf("invalid template should return 'template-err:...', got %q", got)
	}

	got = FormatOutput(p, now, "{{.NonExistent}}", Layout24h)
	if !strings.HasPrefix(got, "template-err:") {
		t.Errorf("bad field template should return 'template-err:...', got %q", got)
	}
}

func TestFormatOutput_ZeroRemaining(t *testing.T) {
	now := time.Date(2026, 10, 16, 16, 3, 0, 0, time.UTC)
	p := Prayer{Name: Asr, Time: now}

	got := FormatOutput(p, now, FormatTimeRemaining, Layout24h)
	if got != "0m" {
		t.Errorf("zero remaining = %q, want %q", got, "0m")
	}
}

func TestLayoutFor(t *testing.T) {
	if LayoutFor("24h") != Layout24h {
		t.Error("24h should map to Layout24h")
	}
	if LayoutFor("12h") != Layout12h || LayoutFor("") != Layout12h {
		t.Error("12h and empty should map to Layout12h")
	}
}
