package models

import (
	"gorm.io/gorm"
)

// Provider is the business profile attached to a user account. Its
// existence is what makes an account a business account.
type Provider struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"uniqueIndex"`
	Name         string     `json:"name"` // contact person
	BusinessName string     `json:"business_name"`
	Description  string     `json:"description"`
	Locations    []Location `json:"locations,omitempty" gorm:"foreignKey:ProviderID"`
	Services     []Service  `json:"services,omitempty" gorm:"foreignKey:ProviderID"`
}
