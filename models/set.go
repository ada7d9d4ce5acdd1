package models

import (
	"time"
)

// Set represents a named collection of flashcards
type Set struct {
	ID          uint   `gorm:"primaryKey"`
	PublicID    string `gorm:"size:100;uniqueIndex"`
	Title       string `gorm:"not null;size:200"`
	Description string `gorm:"not null;size:2000"`
	Private     bool   `gorm:"default:true"`
	Creator     string `gorm:"not null;size:100;default:anonymous"`
	Image       Image  `gorm:"embedded;embeddedPrefix:image_"`

	// Denormalized count, maintained on card creation and recomputed only
	// by the seed routine.
	CardCount int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
