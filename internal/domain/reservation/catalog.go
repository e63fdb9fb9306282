package reservation

import "fmt"

// Meridiem is the AM/PM half of a 12-hour clock reading.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// Clock is a 12-hour wall-clock reading as it appears in a slot label.
type Clock struct {
	Hour     int // 1..12
	Minute   int
	Meridiem Meridiem
}

// Hour24 converts the reading to a 24-hour value: PM adds 12 except for
// 12 PM itself, and 12 AM is midnight.
func (c Clock) Hour24() int {
	h := c.Hour
	if c.Meridiem == PM && h != 12 {
		h += 12
	}
	if c.Meridiem == AM && h == 12 {
		h = 0
	}
	return h
}

// SlotDefinition is one named time range offered for reservation within a
// single day. Definitions are immutable; the catalog is identical every day.
type SlotDefinition struct {
	Label      string
	StartClock Clock
	EndClock   Clock
}

// The slot labels offered by the lending desk. Order matters: it is the
// order the picker presents them in.
var catalog = []SlotDefinition{
	mustSlot("7:00 AM - 8:30 AM"),
	mustSlot("9:00 AM - 11:30 AM"),
	mustSlot("12:00 PM - 1:30 PM"),
	mustSlot("2:00 PM - 3:30 PM"),
	mustSlot("4:00 PM - 5:30 PM"),
	mustSlot("6:00 PM - 7:30 PM"),
	mustSlot("8:00 PM - 9:30 PM"),
}

func mustSlot(label string) SlotDefinition {
	s, err := parseSlotLabel(label)
	if err != nil {
		panic(fmt.Sprintf("bad catalog slot %q: %v", label, err))
	}
	return s
}

// Slots returns the fixed ordered slot catalog. The result is a copy; the
// same sequence comes back on every call.
func Slots() []SlotDefinition {
	out := make([]SlotDefinition, len(catalog))
	copy(out, catalog)
	return out
}

// SlotByLabel looks up a catalog entry by its exact label.
func SlotByLabel(label string) (SlotDefinition, bool) {
	for _, s := range catalog {
		if s.Label == label {
			return s, true
		}
	}
	return SlotDefinition{}, false
}
