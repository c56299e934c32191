package models

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall clock time within a single day. Report duration
// arithmetic goes through this type instead of raw string subtraction.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses a fixed-width "HH:MM:SS" string
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("无效的时间格式 %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// Seconds returns the offset from midnight in seconds
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t is earlier in the day than other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Seconds() < other.Seconds()
}

// Sub returns the duration from other to t within the same day
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(t.Seconds()-other.Seconds()) * time.Second
}

// String implements fmt.Stringer
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
