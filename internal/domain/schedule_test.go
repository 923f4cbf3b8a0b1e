package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

func tr(start, end string) domain.TimeRange {
	return domain.TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestTimeRange_IsValid(t *testing.T) {
	assert.True(t, tr("08:00", "12:00").IsValid())
	assert.False(t, tr("12:00", "12:00").IsValid(), "empty range is invalid")
	assert.False(t, tr("14:00", "12:00").IsValid(), "inverted range is invalid")
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.TimeRange
		want bool
	}{
		{"disjoint", tr("08:00", "10:00"), tr("12:00", "14:00"), false},
		{"touching boundaries do not overlap", tr("08:00", "12:00"), tr("12:00", "16:00"), false},
		{"partial overlap", tr("08:00", "12:00"), tr("10:00", "14:00"), true},
		{"contained", tr("08:00", "18:00"), tr("10:00", "14:00"), true},
		{"identical", tr("09:00", "17:00"), tr("09:00", "17:00"), true},
		{"one minute shared", tr("08:00", "10:01"), tr("10:00", "12:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestScheduleWindow_Contains(t *testing.T) {
	window := &domain.ScheduleWindow{
		StartTime: "08:00",
		EndTime:   "12:00",
	}

	assert.True(t, window.Contains("08:00"), "start boundary is inclusive")
	assert.True(t, window.Contains("11:59"))
	assert.False(t, window.Contains("12:00"), "end boundary is exclusive")
	assert.False(t, window.Contains("07:59"))
}

func TestScheduleWindow_AppliesTo(t *testing.T) {
	weekdays, err := domain.ParseWeekdaySet("mon,wed,fri")
	require.NoError(t, err)

	window := &domain.ScheduleWindow{Weekdays: weekdays}

	assert.True(t, window.AppliesTo(time.Monday))
	assert.True(t, window.AppliesTo(time.Friday))
	assert.False(t, window.AppliesTo(time.Tuesday))
	assert.False(t, window.AppliesTo(time.Sunday))
}

func TestScheduleWindow_IsCompanyWide(t *testing.T) {
	serviceID := int64(7)

	companyWide := &domain.ScheduleWindow{}
	serviceBound := &domain.ScheduleWindow{ServiceID: &serviceID}

	assert.True(t, companyWide.IsCompanyWide())
	assert.False(t, serviceBound.IsCompanyWide())
}
