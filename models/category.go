package models

import (
	"time"
)

// Category is a flat, read-only classification list seeded at migration
// time.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique"`
	SectorID  *uint     `json:"sector_id"`
	CreatedAt time.Time `json:"created_at"`
}
