package models

type Board struct {
	BaseModel

	Title     string `gorm:"not null" json:"title"`
	IsDeleted bool   `gorm:"not null;default:false" json:"is_deleted"`

	// Relationships
	Participants []BoardParticipant `gorm:"foreignKey:BoardID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT" json:"-"`
	Categories   []GoalCategory     `gorm:"foreignKey:BoardID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT" json:"-"`
}
