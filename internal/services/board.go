package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/goalboard-dev/goalboard/internal/access"
	"github.com/goalboard-dev/goalboard/internal/models"
	"gorm.io/gorm"
)

// ParticipantInput is one desired (user, role) pair on a board update.
// Users are addressed by username; only writer and reader are assignable.
type ParticipantInput struct {
	Username string
	Role     models.Role
}

// BoardUpdate carries the updatable board fields. A nil Participants slice
// leaves the participant set untouched; an empty non-nil slice removes every
// participant except the owner.
type BoardUpdate struct {
	Title        string
	Participants []ParticipantInput
}

// CreateBoard creates a board and, in the same transaction, the creator's
// owner participant row. Every board has an owner row from its first moment.
func CreateBoard(db *gorm.DB, userID uint, title string) (*models.Board, error) {
	board := models.Board{Title: title}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}

		owner := models.BoardParticipant{
			BoardID: board.ID,
			UserID:  userID,
			Role:    models.RoleOwner,
		}

		return tx.Create(&owner).Error
	})

	if err != nil {
		return nil, err
	}

	return &board, nil
}

// UpdateBoard updates the board title and, when a participant list is
// supplied, reconciles the participant set. Title-only updates need writer
// access; any participant change is owner-only. All writes share one
// transaction, so a failed reconciliation leaves the title unchanged too.
func UpdateBoard(db *gorm.DB, userID uint, boardID uint, in BoardUpdate) (*models.Board, error) {
	var board models.Board

	if err := db.Scopes(access.VisibleBoards(userID)).First(&board, boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	action := access.ActionWrite
	if in.Participants != nil {
		action = access.ActionAdmin
	}

	allowed, err := access.Can(db, userID, action, board.ID)

	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, ErrForbidden
	}

	var desired map[uint]models.Role

	if in.Participants != nil {
		desired, err = resolveParticipants(db, userID, in.Participants)
		if err != nil {
			return nil, err
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if in.Participants != nil {
			if err := reconcileParticipants(tx, board.ID, userID, desired); err != nil {
				return err
			}
		}

		board.Title = in.Title

		return tx.Save(&board).Error
	})

	if err != nil {
		return nil, err
	}

	return &board, nil
}

// resolveParticipants validates the desired list and maps usernames to user
// ids. Rejected outright: non-assignable roles, unknown usernames, the board
// owner, and the same user listed twice (the last-wins behavior a naive loop
// would give is too surprising to keep).
func resolveParticipants(db *gorm.DB, ownerID uint, in []ParticipantInput) (map[uint]models.Role, error) {
	desired := make(map[uint]models.Role, len(in))

	for _, p := range in {
		if !p.Role.Editable() {
			return nil, newValidationError("role", fmt.Sprintf("role must be writer or reader, got %s", p.Role))
		}

		var user models.User

		err := db.Where("username = ?", p.Username).First(&user).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newValidationError("participants", fmt.Sprintf("user %q does not exist", p.Username))
			}
			return nil, err
		}

		if user.ID == ownerID {
			return nil, newValidationError("participants", "the board owner cannot be reassigned")
		}

		if _, dup := desired[user.ID]; dup {
			return nil, newValidationError("participants", fmt.Sprintf("user %q listed more than once", p.Username))
		}

		desired[user.ID] = p.Role
	}

	return desired, nil
}

// reconcileParticipants moves the board's participant set to the desired one
// with the minimal insert/update/delete set. The owner's row is excluded from
// the current set and desired never contains the owner, so it is never
// touched. Must run inside the board-update transaction.
func reconcileParticipants(tx *gorm.DB, boardID uint, ownerID uint, desired map[uint]models.Role) error {
	remaining := make(map[uint]models.Role, len(desired))
	for userID, role := range desired {
		remaining[userID] = role
	}

	var current []models.BoardParticipant

	err := tx.Where("board_id = ? AND user_id <> ?", boardID, ownerID).Find(&current).Error

	if err != nil {
		return err
	}

	for i := range current {
		role, keep := remaining[current[i].UserID]

		if !keep {
			if err := tx.Delete(&current[i]).Error; err != nil {
				return err
			}
			continue
		}

		if current[i].Role != role {
			current[i].Role = role
			if err := tx.Save(&current[i]).Error; err != nil {
				return err
			}
		}

		delete(remaining, current[i].UserID)
	}

	for userID, role := range remaining {
		participant := models.BoardParticipant{
			BoardID: boardID,
			UserID:  userID,
			Role:    role,
		}

		if err := tx.Create(&participant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: participant already exists", ErrConflict)
			}
			return err
		}
	}

	return nil
}

// DeleteBoard soft-deletes a board: the board and all its categories are
// flagged deleted and every goal under them is archived, atomically. Rows are
// never removed. Deleting an already-deleted board is a no-op, so the board
// is looked up by participation alone, without the is_deleted filter.
func DeleteBoard(db *gorm.DB, userID uint, boardID uint) error {
	var board models.Board

	err := db.
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", userID).
		First(&board, boardID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	allowed, err := access.Can(db, userID, access.ActionAdmin, board.ID)

	if err != nil {
		return err
	}

	if !allowed {
		return ErrForbidden
	}

	now := time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Board{}).
			Where("id = ?", board.ID).
			Updates(map[string]interface{}{"is_deleted": true, "updated": now}).Error

		if err != nil {
			return err
		}

		err = tx.Model(&models.GoalCategory{}).
			Where("board_id = ?", board.ID).
			Updates(map[string]interface{}{"is_deleted": true, "updated": now}).Error

		if err != nil {
			return err
		}

		categoryIDs := tx.Model(&models.GoalCategory{}).
			Select("id").
			Where("board_id = ?", board.ID)

		return tx.Model(&models.Goal{}).
			Where("category_id IN (?)", categoryIDs).
			Updates(map[string]interface{}{"status": models.StatusArchived, "updated": now}).Error
	})
}
