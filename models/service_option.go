package models

import (
	"gorm.io/gorm"
)

// ServiceOption is an add-on managed independently of the service
// record itself.
type ServiceOption struct {
	gorm.Model
	ServiceID uint    `json:"service_id" gorm:"index"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	// Duration is the extra time the option adds, in the owning
	// service's duration unit. Zero means no extra time.
	Duration int `json:"duration"`
}
