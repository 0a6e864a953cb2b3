package models

import (
	"time"

	"gorm.io/datatypes"
)

// GoalStatus is the lifecycle state of a goal. Archived doubles as the
// soft-deleted state: goal deletion is a transition to StatusArchived.
type GoalStatus int16

const (
	StatusToDo GoalStatus = iota + 1
	StatusInProgress
	StatusDone
	StatusArchived
)

func (s GoalStatus) String() string {
	switch s {
	case StatusToDo:
		return "to_do"
	case StatusInProgress:
		return "in_progress"
	case StatusDone:
		return "done"
	case StatusArchived:
		return "archived"
	}
	return "unknown"
}

func (s GoalStatus) Valid() bool {
	return s >= StatusToDo && s <= StatusArchived
}

type GoalPriority int16

const (
	PriorityLow GoalPriority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p GoalPriority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return "unknown"
}

func (p GoalPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

type Goal struct {
	BaseModel

	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	CategoryID   uint           `gorm:"not null;index" json:"category"`
	UserID       uint           `gorm:"not null;index" json:"user"`
	Status       GoalStatus     `gorm:"not null;default:1" json:"status"`
	Priority     GoalPriority   `gorm:"not null;default:2" json:"priority"`
	DueDate      *time.Time     `json:"due_date"`
	CustomFields datatypes.JSON `gorm:"type:jsonb" json:"custom_fields,omitempty"`

	// Relationships
	Category GoalCategory  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User     User          `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT" json:"-"`
	Comments []GoalComment `gorm:"foreignKey:GoalID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
