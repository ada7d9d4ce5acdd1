package models

import (
	"time"
)

// Learning records the outcome of one completed study session against a
// set. The score is computed once when the session is recorded, not derived
// on read.
type Learning struct {
	ID       uint   `gorm:"primaryKey"`
	PublicID string `gorm:"size:100;uniqueIndex"`

	SetID uint `gorm:"not null;index"`
	Set   Set  `gorm:"foreignKey:SetID"`

	UserID string `gorm:"column:user_id;not null;size:100;index"`

	CardsTotal   int     `gorm:"not null"`
	CardsCorrect int     `gorm:"not null"`
	CardsWrong   int     `gorm:"not null"`
	Score        float64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
