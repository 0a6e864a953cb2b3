package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	IsStaff      bool   `gorm:"not null;default:false"`
	IsSuperuser  bool   `gorm:"not null;default:false"`

	// Relationships
	Participations []BoardParticipant `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT"`
	Categories     []GoalCategory     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT"`
	Goals          []Goal             `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT"`
	Comments       []GoalComment      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT"`
}
