package models

import (
	"time"
)

// Card represents an individual question/answer unit. A card belongs to
// exactly one set; the reference never changes after creation.
type Card struct {
	ID       uint   `gorm:"primaryKey"`
	PublicID string `gorm:"size:100;uniqueIndex"`

	SetID uint `gorm:"not null;index"`
	Set   Set  `gorm:"foreignKey:SetID"`

	Question string `gorm:"not null;size:2000"`
	Answer   string `gorm:"not null;size:2000"`
	Image    Image  `gorm:"embedded;embeddedPrefix:image_"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
