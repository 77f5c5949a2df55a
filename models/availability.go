package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TimeSlot is a single open/close pair in "HH:MM" 24h format.
type TimeSlot struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// DayAvailability is one weekday's schedule. Slots are only meaningful
// when IsOpen is true; they are unordered and may overlap.
type DayAvailability struct {
	IsOpen bool       `json:"isOpen"`
	Slots  []TimeSlot `json:"slots"`
}

// Availability maps weekday name ("monday".."sunday") to that day's
// schedule.
type Availability map[string]DayAvailability

var DaysOfWeek = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// DefaultAvailability returns the starting schedule: every day closed
// with one 09:00-17:00 slot ready to be enabled.
func DefaultAvailability() Availability {
	availability := make(Availability, len(DaysOfWeek))
	for _, day := range DaysOfWeek {
		availability[day] = DayAvailability{
			IsOpen: false,
			Slots:  []TimeSlot{{Open: "09:00", Close: "17:00"}},
		}
	}
	return availability
}

// Value implements the driver.Valuer interface
func (a Availability) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (a *Availability) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal Availability: unsupported type %T", value)
	}

	return json.Unmarshal(data, a)
}
