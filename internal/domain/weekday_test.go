package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

func TestParseWeekdaySet(t *testing.T) {
	set, err := domain.ParseWeekdaySet("mon,tue,fri")
	require.NoError(t, err)

	assert.True(t, set.Contains(time.Monday))
	assert.True(t, set.Contains(time.Tuesday))
	assert.True(t, set.Contains(time.Friday))
	assert.False(t, set.Contains(time.Saturday))
}

func TestParseWeekdaySet_NormalizesInput(t *testing.T) {
	// Регистр, пробелы и дубликаты не меняют результат
	set, err := domain.ParseWeekdaySet(" MON , mon ,Tue")
	require.NoError(t, err)

	assert.Equal(t, "mon,tue", set.String())
}

func TestParseWeekdaySet_Errors(t *testing.T) {
	_, err := domain.ParseWeekdaySet("mon,monday")
	assert.ErrorIs(t, err, domain.ErrInvalidWeekday)

	_, err = domain.ParseWeekdaySet("")
	assert.ErrorIs(t, err, domain.ErrInvalidWeekday)

	_, err = domain.ParseWeekdaySet(" , ,")
	assert.ErrorIs(t, err, domain.ErrInvalidWeekday)
}

func TestWeekdaySet_CanonicalOrder(t *testing.T) {
	// Порядок во входной строке не влияет на каноническое представление
	set, err := domain.ParseWeekdaySet("sun,sat,mon")
	require.NoError(t, err)

	assert.Equal(t, "mon,sat,sun", set.String())
	assert.Equal(t, []string{"mon", "sat", "sun"}, set.Tags())
}
