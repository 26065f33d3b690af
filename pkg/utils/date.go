package utils

import (
	"time"
)

// ISODate is the layout of every stored record date
const ISODate = "2006-01-02"

// Today returns the current calendar date in loc as YYYY-MM-DD
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format(ISODate)
}

// LoadLocation resolves a timezone name, falling back to UTC
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}
