package models

type GoalCategory struct {
	BaseModel

	Title     string `gorm:"not null" json:"title"`
	BoardID   uint   `gorm:"not null;index" json:"board"`
	UserID    uint   `gorm:"not null;index" json:"user"`
	IsDeleted bool   `gorm:"not null;default:false" json:"is_deleted"`

	// Relationships
	Board Board  `gorm:"foreignKey:BoardID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT" json:"-"`
	User  User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT" json:"-"`
	Goals []Goal `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
