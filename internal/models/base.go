package models

import "time"

// Timestamps is embedded by every persisted entity. GORM fills both fields.
type Timestamps struct {
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
