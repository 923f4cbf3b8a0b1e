package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

func TestMonth_Next(t *testing.T) {
	assert.Equal(t,
		domain.Month{Year: 2026, Month: time.February},
		domain.Month{Year: 2026, Month: time.January}.Next())

	// Переход через границу года
	assert.Equal(t,
		domain.Month{Year: 2027, Month: time.January},
		domain.Month{Year: 2026, Month: time.December}.Next())
}

func TestMonth_After(t *testing.T) {
	jan := domain.Month{Year: 2026, Month: time.January}
	feb := domain.Month{Year: 2026, Month: time.February}
	prevDec := domain.Month{Year: 2025, Month: time.December}

	assert.True(t, feb.After(jan))
	assert.False(t, jan.After(feb))
	assert.False(t, jan.After(jan))
	assert.True(t, jan.After(prevDec))
}

func TestMonthOf(t *testing.T) {
	date := time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, domain.Month{Year: 2026, Month: time.March}, domain.MonthOf(date))
}

func TestMonth_String(t *testing.T) {
	assert.Equal(t, "2026-03", domain.Month{Year: 2026, Month: time.March}.String())
}
