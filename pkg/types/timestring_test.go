package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)
	assert.Equal(t, "10:00", ts.String())

	// Ведущий ноль обязателен, иначе лексикографическое сравнение ломается
	_, err = NewTimeStringFromString("9:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("10:60")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("10.00")
	assert.Error(t, err)
}

func TestTimeString_Comparison(t *testing.T) {
	morning := TimeString("09:30")
	noon := TimeString("12:00")

	assert.True(t, morning.IsBefore(noon))
	assert.False(t, noon.IsBefore(morning))
	assert.True(t, noon.IsAfter(morning))
	assert.False(t, morning.IsBefore(morning))
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("10:30")

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	shifted, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), shifted)

	shifted, err = ts.AddMinutes(-45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), shifted)

	// Выход за границы суток
	_, err = ts.AddMinutes(24 * 60)
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "10:00:00"
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, "10:00", ts.String())

	require.NoError(t, ts.Scan([]byte("14:30:00")))
	assert.Equal(t, "14:30", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, "18:00", ts.String())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	ts := TimeString("10:00")
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)
}
