// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// ISODate is the layout used for calendar dates in storage and JSON
const ISODate = "2006-01-02"

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// TehranNow returns the current time in Asia/Tehran
func TehranNow() (time.Time, error) {
	loc, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// LocalToday returns the current calendar date in Asia/Tehran, falling back to UTC
// when the zone database is unavailable.
func LocalToday() time.Time {
	now, err := TehranNow()
	if err != nil {
		now = UTCNow()
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DateOnly truncates t to its calendar date at UTC midnight
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
