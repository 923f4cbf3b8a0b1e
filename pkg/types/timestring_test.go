package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/pkg/types"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		assert.NoError(t, types.TimeString(s).Validate(), s)
	}

	invalid := []string{"24:00", "9:30", "09:60", "0930", "morning", "", " 9:30", "09:3x", "09:30 "}
	for _, s := range invalid {
		assert.ErrorIs(t, types.TimeString(s).Validate(), types.ErrInvalidTimeString, s)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := types.TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = types.TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = types.TimeString("9:30").Minutes()
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, types.TimeString("08:00").IsBefore("12:00"))
	assert.False(t, types.TimeString("12:00").IsBefore("12:00"))
	assert.True(t, types.TimeString("12:01").IsAfter("12:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts types.TimeString

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, types.TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("14:15:59")))
	assert.Equal(t, types.TimeString("14:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 8, 5, 0, 0, time.UTC)))
	assert.Equal(t, types.TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestTimeString_Value(t *testing.T) {
	v, err := types.TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = types.TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = types.TimeString("junk").Value()
	assert.Error(t, err)
}
