// Package wizard implements the three-step service creation/editing
// flow: basic info, location, weekly availability. State lives
// server-side behind a Store so a draft survives page reloads; the
// final record is submitted once, atomically, from step 3.
package wizard

import (
	"github.com/resernova/resernova-api/models"
	"github.com/resernova/resernova-api/utils"
)

const (
	StepBasicInfo    = 1
	StepLocation     = 2
	StepAvailability = 3
)

// Form accumulates the service fields across all steps.
type Form struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Price        float64             `json:"price"`
	Duration     int                 `json:"duration"`
	DurationUnit models.DurationUnit `json:"duration_unit"`
	CategoryID   uint                `json:"category_id"`
	LocationID   uint                `json:"location_id"`
	Availability models.Availability `json:"availability"`
}

// State is one wizard session. ServiceID is set in edit mode.
type State struct {
	ID         string `json:"id"`
	ProviderID uint   `json:"provider_id"`
	ServiceID  uint   `json:"service_id,omitempty"`
	Step       int    `json:"step"`
	Form       Form   `json:"form"`
}

// New starts a blank wizard for a provider with the default schedule:
// all days closed, one 09:00-17:00 slot each.
func New(providerID uint) *State {
	return &State{
		ID:         utils.GenerateUUID(),
		ProviderID: providerID,
		Step:       StepBasicInfo,
		Form: Form{
			Duration:     1,
			DurationUnit: models.UnitHours,
			Availability: models.DefaultAvailability(),
		},
	}
}

// NewFromService starts an edit wizard pre-populated from an existing
// record.
func NewFromService(service *models.Service) *State {
	availability := service.Availability
	if availability == nil {
		availability = models.DefaultAvailability()
	}
	return &State{
		ID:         utils.GenerateUUID(),
		ProviderID: service.ProviderID,
		ServiceID:  service.ID,
		Step:       StepBasicInfo,
		Form: Form{
			Name:         service.Name,
			Description:  service.Description,
			Price:        service.Price,
			Duration:     service.Duration,
			DurationUnit: service.DurationUnit,
			CategoryID:   service.CategoryID,
			LocationID:   service.LocationID,
			Availability: availability,
		},
	}
}

// Next validates only the current step's field subset and advances on
// success. It never skips a step. The returned map is empty on
// success, field-keyed error messages otherwise.
func (s *State) Next() map[string]string {
	errs := s.validateStep(s.Step)
	if len(errs) > 0 {
		return errs
	}
	if s.Step < StepAvailability {
		s.Step++
	}
	return nil
}

// Back unconditionally moves to the previous step; no re-validation.
func (s *State) Back() {
	if s.Step > StepBasicInfo {
		s.Step--
	}
}

// Finalize validates the whole form. Only legal from the last step.
// On success the caller persists the assembled record; failure leaves
// the state untouched so the user can retry.
func (s *State) Finalize() map[string]string {
	if s.Step != StepAvailability {
		return map[string]string{"step": "Submission is only possible from the final step"}
	}
	return s.validateAll()
}

// ToggleDay flips a day's open flag.
func (s *State) ToggleDay(day string) bool {
	dayAvailability, ok := s.Form.Availability[day]
	if !ok {
		return false
	}
	dayAvailability.IsOpen = !dayAvailability.IsOpen
	s.Form.Availability[day] = dayAvailability
	return true
}

// AddSlot appends the default 09:00-17:00 slot to a day.
func (s *State) AddSlot(day string) bool {
	dayAvailability, ok := s.Form.Availability[day]
	if !ok {
		return false
	}
	dayAvailability.Slots = append(dayAvailability.Slots, models.TimeSlot{Open: "09:00", Close: "17:00"})
	s.Form.Availability[day] = dayAvailability
	return true
}

// RemoveSlot deletes a day's slot by index.
func (s *State) RemoveSlot(day string, index int) bool {
	dayAvailability, ok := s.Form.Availability[day]
	if !ok || index < 0 || index >= len(dayAvailability.Slots) {
		return false
	}
	dayAvailability.Slots = append(dayAvailability.Slots[:index], dayAvailability.Slots[index+1:]...)
	s.Form.Availability[day] = dayAvailability
	return true
}

// UpdateSlot overwrites one slot's open/close pair. Values are taken
// as-is; they are checked against the HH:MM format at step validation.
func (s *State) UpdateSlot(day string, index int, open, close string) bool {
	dayAvailability, ok := s.Form.Availability[day]
	if !ok || index < 0 || index >= len(dayAvailability.Slots) {
		return false
	}
	dayAvailability.Slots[index] = models.TimeSlot{Open: open, Close: close}
	s.Form.Availability[day] = dayAvailability
	return true
}
