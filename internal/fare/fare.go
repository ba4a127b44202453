// Package fare holds the fare-class vocabulary shared by the schedule
// reader, the seat counters and the booking flow, together with the pure
// functions that derive seat totals and ticket prices from it.
package fare

import (
	"fmt"

	"github.com/iliyamo/train-booking/internal/model"
)

// Class is one of the four bookable fare classes.
type Class string

const (
	Class1A Class = "1A" // AC first class
	Class2A Class = "2A" // AC two tier
	Class3A Class = "3A" // AC three tier
	ClassSL Class = "SL" // sleeper
)

// Classes lists every fare class in display order.
var Classes = []Class{Class1A, Class2A, Class3A, ClassSL}

// columns maps each class to its seat counter column in train_schedule.
// Only values from this map are ever interpolated into SQL.
var columns = map[Class]string{
	Class1A: "seats_1a",
	Class2A: "seats_2a",
	Class3A: "seats_3a",
	ClassSL: "seats_sl",
}

var descriptions = map[Class]string{
	Class1A: "AC First Class",
	Class2A: "AC 2 Tier",
	Class3A: "AC 3 Tier",
	ClassSL: "Sleeper Class",
}

// ParseClass validates a raw class label. Codes are matched exactly, so
// "sl" or " 1A" are rejected.
func ParseClass(raw string) (Class, error) {
	c := Class(raw)
	if _, ok := columns[c]; !ok {
		return "", fmt.Errorf("%w: invalid class %q", model.ErrValidation, raw)
	}
	return c, nil
}

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	_, ok := columns[c]
	return ok
}

// Column returns the seat counter column for c, or "" when c is unknown.
func (c Class) Column() string { return columns[c] }

// Describe returns the human readable name shown next to a class code.
func Describe(c Class) string { return descriptions[c] }
