package models

import (
	"gorm.io/gorm"
)

type DurationUnit string

const (
	UnitMinutes DurationUnit = "minutes"
	UnitHours   DurationUnit = "hours"
	UnitDays    DurationUnit = "days"
)

type ServiceStatus string

const (
	StatusActive   ServiceStatus = "active"
	StatusInactive ServiceStatus = "inactive"
	StatusDraft    ServiceStatus = "draft"
)

type Service struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	// Duration is stored exactly as entered with its unit; "1 day" and
	// "1440 minutes" are distinct representations.
	Duration     int             `json:"duration"`
	DurationUnit DurationUnit    `json:"duration_unit"`
	CategoryID   uint            `json:"category_id"`
	Category     Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ProviderID   uint            `json:"provider_id" gorm:"index"`
	Provider     Provider        `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	LocationID   uint            `json:"location_id"`
	Location     string          `json:"location"` // address snapshot of the chosen location
	Availability Availability    `json:"availability" gorm:"type:jsonb"`
	Status       ServiceStatus   `json:"status" gorm:"default:draft"`
	Options      []ServiceOption `json:"options,omitempty" gorm:"foreignKey:ServiceID"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.Status == "" {
		s.Status = StatusDraft
	}
	return nil
}
