package model

import "time"

// User is created on first login with a given name and never updated or
// deleted afterwards. Name is the natural lookup key at login time; uniqueness
// is resolved by lookup-then-create, not enforced at storage level.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `json:"name" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
