// Package access decides what a user may do on a board and what a user may
// see in lists. The two concerns are deliberately separate surfaces: Can
// answers allow/deny for a single mutation target, the Visible* scopes
// restrict list queries to boards the user participates in. Both resolve
// every target to its board through the ownership chain
// (comment -> goal -> category -> board).
package access

import (
	"errors"

	"github.com/goalboard-dev/goalboard/internal/models"
	"gorm.io/gorm"
)

type Action int

const (
	ActionRead Action = iota + 1
	ActionWrite
	ActionAdmin
)

// RoleOn looks up the caller's participant row on a board. The second return
// is false when the user does not participate at all.
func RoleOn(db *gorm.DB, userID uint, boardID uint) (models.Role, bool, error) {
	var participant models.BoardParticipant

	err := db.Where("board_id = ? AND user_id = ?", boardID, userID).First(&participant).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	return participant.Role, true, nil
}

// Can reports whether the user may perform action on the given board.
// Precedence: admin requires owner, write requires owner or writer, read
// requires any participation. Absence of a participant row denies everything.
func Can(db *gorm.DB, userID uint, action Action, boardID uint) (bool, error) {
	role, ok, err := RoleOn(db, userID, boardID)

	if err != nil || !ok {
		return false, err
	}

	switch action {
	case ActionAdmin:
		return role == models.RoleOwner, nil
	case ActionWrite:
		return role == models.RoleOwner || role == models.RoleWriter, nil
	case ActionRead:
		return true, nil
	}

	return false, nil
}

// VisibleBoards scopes a board query to non-deleted boards the user
// participates in.
func VisibleBoards(userID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN board_participants ON board_participants.board_id = boards.id").
			Where("board_participants.user_id = ?", userID).
			Where("boards.is_deleted = ?", false)
	}
}

// VisibleCategories scopes a category query to non-deleted categories on
// boards the user participates in.
func VisibleCategories(userID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN board_participants ON board_participants.board_id = goal_categories.board_id").
			Where("board_participants.user_id = ?", userID).
			Where("goal_categories.is_deleted = ?", false)
	}
}

// VisibleGoals scopes a goal query to boards the user participates in.
// Archived goals stay visible; archiving is a status, not a removal.
func VisibleGoals(userID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
			Joins("JOIN board_participants ON board_participants.board_id = goal_categories.board_id").
			Where("board_participants.user_id = ?", userID)
	}
}

// VisibleComments scopes a comment query to goals on boards the user
// participates in.
func VisibleComments(userID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN goals ON goals.id = goal_comments.goal_id").
			Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
			Joins("JOIN board_participants ON board_participants.board_id = goal_categories.board_id").
			Where("board_participants.user_id = ?", userID)
	}
}
