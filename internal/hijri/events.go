package hijri

// Event is a notable occasion in the Hijri calendar. A zero or one Days value
// marks a single day; larger values cover Days consecutive days from Day.
type Event struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Days  int    `json:"days,omitempty"`
}

// Events is the static occasion table. Ranges do not overlap; lookups return
// the first match in this order.
var Events = []Event{
	{Key: "new_year", Name: "Islamic New Year", Month: 1, Day: 1},
	{Key: "ashura", Name: "Day of Ashura", Month: 1, Day: 10},
	{Key: "mawlid", Name: "Mawlid al-Nabi", Month: 3, Day: 12},
	{Key: "isra", Name: "Isra' and Mi'raj", Month: 7, Day: 27},
	{Key: "baraat", Name: "Laylat al-Bara'at", Month: 8, Day: 15},
	{Key: "ramadan_start", Name: "Ramadan Start", Month: 9, Day: 1},
	{Key: "qadr", Name: "Laylat al-Qadr (Last 10 Nights)", Month: 9, Day: 21, Days: 10},
	{Key: "fitr", Name: "Eid al-Fitr", Month: 10, Day: 1, Days: 3},
	{Key: "hajj", Name: "Hajj Season", Month: 12, Day: 1, Days: 8},
	{Key: "arafah", Name: "Day of Arafah", Month: 12, Day: 9},
	{Key: "adha", Name: "Eid al-Adha", Month: 12, Day: 10, Days: 4},
}

// contains reports whether (month, day) falls on the event.
func (e Event) contains(month, day int) bool {
	if e.Month != month {
		return false
	}
	span := e.Days
	if span < 1 {
		span = 1
	}
	return day >= e.Day && day < e.Day+span
}

// LookupEvent returns the occasion falling on the given Hijri day and month.
func LookupEvent(day, month int) (Event, bool) {
	for _, e := range Events {
		if e.contains(month, day) {
			return e, true
		}
	}
	return Event{}, false
}

// EventFor is LookupEvent for a converted Date.
func EventFor(d Date) (Event, bool) {
	return LookupEvent(d.Day, d.Month)
}
