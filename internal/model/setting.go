package model

import "time"

// Setting is one row of the key-value blob store backing the session/settings
// state. It is a separate logical store from the entity collections: only the
// session layer reads or writes it.
type Setting struct {
	Key       string    `gorm:"primarykey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
