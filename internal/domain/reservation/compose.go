package reservation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is the concrete (start, end) instant pair derived from a calendar
// date and a catalog slot. Both instants are wall-clock values in the zone
// the window was composed in; they are never UTC-normalized. All catalog
// slots are same-day ranges, so Start and End share a calendar date.
type Window struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the window has not been composed yet.
func (w Window) IsZero() bool { return w.Start.IsZero() && w.End.IsZero() }

const (
	isoDateLayout  = "2006-01-02"
	readableLayout = "2006-01-02 3:04 PM"
)

// InvalidDateDisplay is what FormatReadable returns for an instant it cannot
// render. Display stays total so it can never block the flow.
const InvalidDateDisplay = "Invalid date"

// ComposeWindow turns a calendar date (YYYY-MM-DD) and a catalog slot label
// into the slot's start and end instants on that date. loc is the wall-clock
// zone policy; nil means the device-local zone.
func ComposeWindow(isoDate, slotLabel string, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(isoDateLayout, isoDate, loc)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidDate, isoDate)
	}
	slot, ok := SlotByLabel(slotLabel)
	if !ok {
		return Window{}, fmt.Errorf("%w: %q", ErrUnknownSlot, slotLabel)
	}

	at := func(c Clock) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), c.Hour24(), c.Minute, 0, 0, loc)
	}
	return Window{Start: at(slot.StartClock), End: at(slot.EndClock)}, nil
}

// parseSlotLabel splits a catalog label ("7:00 AM - 8:30 AM") into its two
// clock readings.
func parseSlotLabel(label string) (SlotDefinition, error) {
	halves := strings.Split(label, " - ")
	if len(halves) != 2 {
		return SlotDefinition{}, fmt.Errorf("label %q is not two clock readings", label)
	}
	start, err := parseClock(halves[0])
	if err != nil {
		return SlotDefinition{}, err
	}
	end, err := parseClock(halves[1])
	if err != nil {
		return SlotDefinition{}, err
	}
	return SlotDefinition{Label: label, StartClock: start, EndClock: end}, nil
}

// parseClock parses "H:MM AM|PM".
func parseClock(s string) (Clock, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Clock{}, fmt.Errorf("clock %q: want \"H:MM AM|PM\"", s)
	}
	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 {
		return Clock{}, fmt.Errorf("clock %q: missing minutes", s)
	}
	h, err := strconv.Atoi(hm[0])
	if err != nil || h < 1 || h > 12 {
		return Clock{}, fmt.Errorf("clock %q: bad hour", s)
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("clock %q: bad minute", s)
	}
	mer := Meridiem(fields[1])
	if mer != AM && mer != PM {
		return Clock{}, fmt.Errorf("clock %q: bad meridiem", s)
	}
	return Clock{Hour: h, Minute: m, Meridiem: mer}, nil
}

// FormatReadable renders an instant for display: "YYYY-MM-DD h:mm AM|PM"
// with a 12-hour hour and no leading zero. Midnight renders as 12:00 AM and
// noon as 12:00 PM. A zero instant renders as the "Invalid date" marker
// instead of failing.
func FormatReadable(t time.Time) string {
	if t.IsZero() {
		return InvalidDateDisplay
	}
	return t.Format(readableLayout)
}

// FormatReadableString parses a backend datetime string and renders it for
// display, falling back to the "Invalid date" marker when it does not parse.
func FormatReadableString(s string, loc *time.Location) string {
	t, err := ParseInstant(s, loc)
	if err != nil {
		return InvalidDateDisplay
	}
	return FormatReadable(t)
}

// instantLayouts are the shapes the backend echoes datetimes in. Layouts
// without an offset are read as wall-clock values in the given zone so that
// equal wall-clock values always display identically.
var instantLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseInstant parses a backend datetime string. loc is the zone applied to
// offset-less layouts; nil means the device-local zone.
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	var lastErr error
	for _, layout := range instantLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q: %w", s, lastErr)
}

// FormatWire renders an instant in the reservation endpoint's body format:
// 24-hour, zero-padded, seconds forced to 00. This is the wire format, not
// the display format; the two must stay separate.
func FormatWire(t time.Time) string {
	return t.Format("2006-01-02 15:04") + ":00"
}
