package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel is embedded by every entity except User. Created is set once on
// first save, Updated on every save. Batch updates that bypass GORM hooks
// must stamp "updated" themselves.
type BaseModel struct {
	ID      uint      `gorm:"primarykey" json:"id"`
	Created time.Time `gorm:"not null" json:"created"`
	Updated time.Time `gorm:"not null" json:"updated"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.Created.IsZero() {
		m.Created = now
	}
	m.Updated = now
	return nil
}

func (m *BaseModel) BeforeSave(tx *gorm.DB) error {
	m.Updated = time.Now()
	return nil
}
