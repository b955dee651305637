package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringList is stored as a JSON array in a TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Question is a reusable library prompt for the writing tasks. Created by an
// explicit "save to library" action or bulk import, never auto-created by
// grading.
type Question struct {
	ID   uint     `gorm:"primarykey" json:"id"`
	Type TaskType `json:"type" gorm:"not null;index"` // task1, task2, task3

	// Content is the text prompt, or for task1 a JSON-encoded array of
	// {id, scenario, keywords[2]} scenarios.
	Content     string        `json:"content" gorm:"type:text;not null"`
	Description string        `json:"description,omitempty"`
	Level       QuestionLevel `json:"level,omitempty" gorm:"index"`
	Keywords    StringList    `json:"keywords,omitempty" gorm:"type:text"` // task1 only

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
