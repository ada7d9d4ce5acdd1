package models

import (
	"time"
)

// UserSet marks a set as one of a user's favorites. The composite unique
// index enforces one record per (user, set) pair at the store, so a racing
// duplicate insert fails instead of slipping past the handler's pre-check.
type UserSet struct {
	ID       uint   `gorm:"primaryKey"`
	PublicID string `gorm:"size:100;uniqueIndex"`

	UserID string `gorm:"column:user_id;not null;size:100;uniqueIndex:idx_user_set"`

	SetID uint `gorm:"not null;uniqueIndex:idx_user_set"`
	Set   Set  `gorm:"foreignKey:SetID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
