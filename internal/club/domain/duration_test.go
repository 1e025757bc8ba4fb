package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/stretchr/testify/require"
)

func TestParseDurationSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want domain.DurationSpec
	}{
		{"1 day", domain.DurationSpec{Value: 1, Unit: domain.UnitDay}},
		{"30 days", domain.DurationSpec{Value: 30, Unit: domain.UnitDay}},
		{"2 Weeks", domain.DurationSpec{Value: 2, Unit: domain.UnitWeek}},
		{"  6   MONTHS ", domain.DurationSpec{Value: 6, Unit: domain.UnitMonth}},
		{"1 year", domain.DurationSpec{Value: 1, Unit: domain.UnitYear}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseDurationSpec(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationSpecRejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "month", "1", "0 days", "-1 day", "1.5 days", "3 fortnights", "1 day extra"} {
		_, err := domain.ParseDurationSpec(in)
		require.ErrorIs(t, err, domain.ErrInvalidDuration, "input %q", in)
	}
}

func TestDurationSpecString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1 month", domain.DurationSpec{Value: 1, Unit: domain.UnitMonth}.String())
	require.Equal(t, "3 weeks", domain.DurationSpec{Value: 3, Unit: domain.UnitWeek}.String())
}

func TestDurationSpecExtend(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

	t.Run("days", func(t *testing.T) {
		d := domain.DurationSpec{Value: 10, Unit: domain.UnitDay}
		require.Equal(t, start.AddDate(0, 0, 20), d.Extend(start, 2))
	})

	t.Run("weeks", func(t *testing.T) {
		d := domain.DurationSpec{Value: 1, Unit: domain.UnitWeek}
		require.Equal(t, start.AddDate(0, 0, 7), d.Extend(start, 1))
	})

	t.Run("months", func(t *testing.T) {
		d := domain.DurationSpec{Value: 1, Unit: domain.UnitMonth}
		require.Equal(t, time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC), d.Extend(start, 3))
	})

	t.Run("years", func(t *testing.T) {
		d := domain.DurationSpec{Value: 1, Unit: domain.UnitYear}
		require.Equal(t, time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC), d.Extend(start, 1))
	})
}
