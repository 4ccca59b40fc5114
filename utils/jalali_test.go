package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDisplay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"nowruz 1403", "1403/01/01", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
		{"nowruz 1404", "1404/01/01", time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)},
		{"leap esfand", "1403/12/30", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)},
		{"last day 1402", "1402/12/29", time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC)},
		{"unpadded", "1403/7/1", time.Date(2024, 9, 22, 0, 0, 0, 0, time.UTC)},
		{"persian digits", "۱۴۰۳/۰۱/۰۱", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
		{"surrounding spaces", " 1403/01/01 ", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromDisplay(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestFromDisplayInvalid(t *testing.T) {
	inputs := []string{
		"",
		"1403-01-01",
		"1403/01",
		"1403/01/01/01",
		"14a3/01/01",
		"1403/13/01",
		"1403/00/10",
		"1403/07/31",
		"1402/12/30",
		"1403//01",
		"-1/01/01",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := FromDisplay(in)
			assert.ErrorIs(t, err, ErrInvalidDateFormat)
		})
	}
}

func TestToDisplay(t *testing.T) {
	assert.Equal(t, "1403/01/01", ToDisplay(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1402/12/29", ToDisplay(time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1403/12/30", ToDisplay(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1404/01/01", ToDisplay(time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)))
}

func TestDisplayRoundTrip(t *testing.T) {
	inputs := []string{
		"1399/01/01", "1399/12/30", "1400/06/31", "1400/07/01",
		"1401/11/15", "1402/12/29", "1403/12/30", "1404/05/17",
		"1370/01/01", "1420/09/09",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := FromDisplay(in)
			require.NoError(t, err)

			second, err := FromDisplay(ToDisplay(first))
			require.NoError(t, err)
			assert.True(t, first.Equal(second))
		})
	}
}

func TestGregorianJalaliRoundTripOverRange(t *testing.T) {
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() < 2035; d = d.AddDate(0, 0, 1) {
		jd := GregorianToJalali(d)
		back := JalaliToGregorian(jd)
		require.True(t, d.Equal(back), "day %s -> %s -> %s", d.Format("2006-01-02"), jd, back.Format("2006-01-02"))
	}
}

func TestJalaliLeapYears(t *testing.T) {
	for _, y := range []int{1399, 1403, 1408} {
		assert.True(t, IsJalaliLeapYear(y), "year %d", y)
	}
	for _, y := range []int{1400, 1401, 1402, 1404} {
		assert.False(t, IsJalaliLeapYear(y), "year %d", y)
	}
}
