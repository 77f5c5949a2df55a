package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// ContactInfo is the structured contact block stored alongside a
// location's address.
type ContactInfo struct {
	Name       string `json:"name"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Value implements the driver.Valuer interface
func (ci ContactInfo) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(ci)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (ci *ContactInfo) Scan(value interface{}) error {
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
		return fmt.Errorf("failed to unmarshal ContactInfo: unsupported type %T", value)
	}

	return json.Unmarshal(data, ci)
}

type Location struct {
	gorm.Model
	ProviderID  uint        `json:"provider_id" gorm:"index"`
	Provider    Provider    `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Address     string      `json:"address"`
	ContactInfo ContactInfo `json:"contact_info" gorm:"type:jsonb"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
}
