package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laPaz(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("America/La_Paz")
	require.NoError(t, err)
	return loc
}

func TestDateOf_UsesLocation(t *testing.T) {
	loc := laPaz(t)

	// 02:30 UTC — ещё предыдущий день в Ла-Пасе (UTC-4).
	ts := time.Date(2025, 3, 10, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, Date{Year: 2025, Month: time.March, Day: 9}, DateOf(ts, loc))
	assert.Equal(t, Date{Year: 2025, Month: time.March, Day: 10}, DateOf(ts, time.UTC))
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{name: "same day", from: Date{2025, 1, 31}, to: Date{2025, 1, 31}, want: 0},
		{name: "next month", from: Date{2025, 1, 31}, to: Date{2025, 2, 1}, want: 1},
		{name: "leap year", from: Date{2024, 2, 28}, to: Date{2024, 3, 1}, want: 2},
		{name: "backwards", from: Date{2025, 1, 10}, to: Date{2025, 1, 3}, want: -7},
		{name: "across year", from: Date{2024, 12, 31}, to: Date{2025, 1, 1}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.DaysUntil(tt.to))
		})
	}
}

func TestCompare(t *testing.T) {
	a := Date{2025, 5, 1}
	b := Date{2025, 5, 2}

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(Date{2025, 5, 1}))
	assert.Equal(t, Date{2025, 5, 31}, a.AddDays(30))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-07-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-04", d.String())

	_, err = ParseDate("04/07/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestRelative_Labels(t *testing.T) {
	today := Date{2025, 6, 15}

	tests := []struct {
		target Date
		want   string
		past   bool
	}{
		{target: Date{2025, 6, 15}, want: "Hoy"},
		{target: Date{2025, 6, 16}, want: "Mañana"},
		{target: Date{2025, 6, 14}, want: "Ayer", past: true},
		{target: Date{2025, 6, 20}, want: "En 5 días"},
		{target: Date{2025, 6, 5}, want: "Hace 10 días", past: true},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			rel := Relative(tt.target, today)
			assert.Equal(t, tt.want, rel.String())
			assert.Equal(t, tt.past, rel.Past())
		})
	}
}

func TestRelativeTo_IgnoresClockTime(t *testing.T) {
	loc := laPaz(t)

	now := time.Date(2025, 6, 15, 23, 59, 0, 0, loc)
	morning := time.Date(2025, 6, 15, 0, 1, 0, 0, loc)
	yesterdayLate := time.Date(2025, 6, 14, 23, 59, 0, 0, loc)

	assert.True(t, RelativeTo(morning, now, loc).Today())

	rel := RelativeTo(yesterdayLate, now, loc)
	assert.True(t, rel.Past())
	assert.NotContains(t, []string{"Hoy", "Mañana"}, rel.String())
}

func TestParseDateTime(t *testing.T) {
	loc := laPaz(t)

	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2025-06-15T14:00:00Z", want: time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)},
		{in: "2025-06-15T14:00", want: time.Date(2025, 6, 15, 14, 0, 0, 0, loc)},
		{in: "2025-06-15T14:00:00", want: time.Date(2025, 6, 15, 14, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateTime(tt.in, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}

	_, err := ParseDateTime("mañana", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestTimestamp_JSON(t *testing.T) {
	var v struct {
		At Timestamp `json:"at"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"at":"2025-06-15T14:00:00"}`), &v))
	assert.True(t, v.At.Equal(time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2025-06-15T14:00:00Z"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"at":null}`), &v))
	assert.True(t, v.At.IsZero())
}
