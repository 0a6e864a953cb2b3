package models

// Role is a user's permission level on one board.
type Role int16

const (
	RoleOwner Role = iota + 1
	RoleWriter
	RoleReader
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleWriter:
		return "writer"
	case RoleReader:
		return "reader"
	}
	return "unknown"
}

func (r Role) Valid() bool {
	return r >= RoleOwner && r <= RoleReader
}

// Editable reports whether the role may be assigned through board updates.
// The owner role is only ever created together with the board itself.
func (r Role) Editable() bool {
	return r == RoleWriter || r == RoleReader
}

type BoardParticipant struct {
	BaseModel

	BoardID uint `gorm:"not null;uniqueIndex:idx_board_user" json:"board"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_board_user" json:"-"`
	Role    Role `gorm:"not null" json:"role"`

	// Relationships
	Board Board `gorm:"foreignKey:BoardID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:RESTRICT" json:"-"`
}
