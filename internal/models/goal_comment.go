package models

type GoalComment struct {
	BaseModel

	Text   string `gorm:"not null" json:"text"`
	GoalID uint   `gorm:"not null;index" json:"goal"`
	UserID uint   `gorm:"not null;index" json:"user"`

	// Relationships
	Goal Goal `gorm:"foreignKey:GoalID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT" json:"-"`
}
