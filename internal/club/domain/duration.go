package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type DurationUnit string

const (
	UnitDay   DurationUnit = "day"
	UnitWeek  DurationUnit = "week"
	UnitMonth DurationUnit = "month"
	UnitYear  DurationUnit = "year"
)

var ErrInvalidDuration = errors.New("invalid duration spec")

// DurationSpec is how long a membership lasts, e.g. "30 days" or "1 year".
type DurationSpec struct {
	Value int
	Unit  DurationUnit
}

// ParseDurationSpec parses "<n> <unit>" where unit is day, week, month or year
// (singular or plural, any case). n must be positive.
func ParseDurationSpec(s string) (DurationSpec, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return DurationSpec{}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	value, err := strconv.Atoi(parts[0])
	if err != nil || value <= 0 {
		return DurationSpec{}, fmt.Errorf("%w: bad count in %q", ErrInvalidDuration, s)
	}

	unit := DurationUnit(strings.TrimSuffix(strings.ToLower(parts[1]), "s"))
	switch unit {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
	default:
		return DurationSpec{}, fmt.Errorf("%w: unsupported unit %q", ErrInvalidDuration, parts[1])
	}

	return DurationSpec{Value: value, Unit: unit}, nil
}

func (d DurationSpec) String() string {
	if d.Value == 1 {
		return fmt.Sprintf("%d %s", d.Value, d.Unit)
	}
	return fmt.Sprintf("%d %ss", d.Value, d.Unit)
}

func (d DurationSpec) IsZero() bool { return d.Value == 0 }

// Extend adds the duration times n to t using calendar arithmetic, so
// "1 month" from Jan 31 normalises the same way time.AddDate does.
func (d DurationSpec) Extend(t time.Time, n int) time.Time {
	v := d.Value * n
	switch d.Unit {
	case UnitDay:
		return t.AddDate(0, 0, v)
	case UnitWeek:
		return t.AddDate(0, 0, 7*v)
	case UnitMonth:
		return t.AddDate(0, v, 0)
	case UnitYear:
		return t.AddDate(v, 0, 0)
	default:
		return t
	}
}
