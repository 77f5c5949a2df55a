package wizard

import (
	"fmt"
	"regexp"

	"github.com/resernova/resernova-api/models"
)

// timeRE matches 24h "HH:MM" times, single-digit hour allowed.
var timeRE = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// validateStep checks only the current step's field subset. Step 3 has
// no subset of its own: advancing past it is submission, which
// validates everything.
func (s *State) validateStep(step int) map[string]string {
	switch step {
	case StepBasicInfo:
		return s.validateBasicInfo()
	case StepLocation:
		return s.validateLocation()
	default:
		return s.validateAll()
	}
}

func (s *State) validateBasicInfo() map[string]string {
	errs := make(map[string]string)
	if len(s.Form.Name) < 3 {
		errs["name"] = "Name must be at least 3 characters"
	}
	if len(s.Form.Description) < 10 {
		errs["description"] = "Description must be at least 10 characters"
	}
	if s.Form.Price < 0 {
		errs["price"] = "Price must be a positive number"
	}
	if s.Form.Duration < 1 {
		errs["duration"] = "Duration must be at least 1"
	}
	switch s.Form.DurationUnit {
	case models.UnitMinutes, models.UnitHours, models.UnitDays:
	default:
		errs["duration_unit"] = "Duration unit must be minutes, hours or days"
	}
	if s.Form.CategoryID == 0 {
		errs["category_id"] = "Please select a category"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *State) validateLocation() map[string]string {
	if s.Form.LocationID == 0 {
		return map[string]string{"location_id": "Please select a location"}
	}
	return nil
}

// validateAll is the full-schema check run at submission: the basic
// info and location subsets plus every availability slot. An empty
// schedule (no open days) is accepted; nothing requires at least one
// open day.
func (s *State) validateAll() map[string]string {
	errs := make(map[string]string)
	for field, msg := range s.validateBasicInfo() {
		errs[field] = msg
	}
	for field, msg := range s.validateLocation() {
		errs[field] = msg
	}
	for day, dayAvailability := range s.Form.Availability {
		for i, slot := range dayAvailability.Slots {
			if !timeRE.MatchString(slot.Open) {
				errs[fmt.Sprintf("availability.%s.slots.%d.open", day, i)] = "Invalid time format (HH:MM)"
			}
			if !timeRE.MatchString(slot.Close) {
				errs[fmt.Sprintf("availability.%s.slots.%d.close", day, i)] = "Invalid time format (HH:MM)"
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
