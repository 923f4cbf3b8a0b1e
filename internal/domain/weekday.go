package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday возвращается при неизвестном теге дня недели
var ErrInvalidWeekday = errors.New("domain: invalid weekday tag")

// weekdayTags канонические теги дней недели в порядке хранения
var weekdayTags = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var tagToWeekday = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

var weekdayToTag = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// WeekdaySet is the set of weekdays a schedule window applies to.
// Stored as a comma-separated tag list ("mon,tue,fri").
type WeekdaySet map[time.Weekday]bool

// ParseWeekdaySet parses a comma-separated day-list string.
// Tags are case-insensitive, whitespace around tags is ignored,
// duplicates collapse. An empty string yields an error.
func ParseWeekdaySet(s string) (WeekdaySet, error) {
	set := make(WeekdaySet)
	for _, part := range strings.Split(s, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		day, ok := tagToWeekday[tag]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, tag)
		}
		set[day] = true
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: empty day list", ErrInvalidWeekday)
	}
	return set, nil
}

// Contains returns true if the set includes the given weekday
func (s WeekdaySet) Contains(day time.Weekday) bool {
	return s[day]
}

// String returns the canonical comma-separated representation,
// days ordered monday first
func (s WeekdaySet) String() string {
	tags := make([]string, 0, len(s))
	for _, tag := range weekdayTags {
		if s[tagToWeekday[tag]] {
			tags = append(tags, tag)
		}
	}
	return strings.Join(tags, ",")
}

// Tags returns the tags of the set, days ordered monday first
func (s WeekdaySet) Tags() []string {
	tags := make([]string, 0, len(s))
	for _, tag := range weekdayTags {
		if s[tagToWeekday[tag]] {
			tags = append(tags, tag)
		}
	}
	return tags
}

// WeekdayTag returns the storage tag for a time.Weekday
func WeekdayTag(day time.Weekday) string {
	return weekdayToTag[day]
}
