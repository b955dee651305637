package model

import (
	"time"

	"gorm.io/gorm"
)

// Vocabulary is a saved translation pair, always owned by exactly one user.
// Entries are created manually or from "save this new word" during translation
// feedback, deleted explicitly, never updated in place.
type Vocabulary struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	Vietnamese       string         `json:"vietnamese" gorm:"not null"`
	English          string         `json:"english" gorm:"not null"`
	Context          string         `json:"context,omitempty" gorm:"type:text"`
	ProficiencyLevel string         `json:"proficiency_level,omitempty"`
	AddedAt          time.Time      `json:"added_at" gorm:"autoCreateTime;index"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
