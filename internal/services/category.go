package services

import (
	"errors"
	"time"

	"github.com/goalboard-dev/goalboard/internal/access"
	"github.com/goalboard-dev/goalboard/internal/models"
	"gorm.io/gorm"
)

// CreateCategory creates a category on a board. The board must not be
// deleted (a hard gate, checked before the role check can matter) and the
// caller must be owner or writer of the board.
func CreateCategory(db *gorm.DB, userID uint, boardID uint, title string) (*models.GoalCategory, error) {
	var board models.Board

	if err := db.First(&board, boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("board", "board does not exist")
		}
		return nil, err
	}

	if board.IsDeleted {
		return nil, newValidationError("board", "not allowed for deleted board")
	}

	allowed, err := access.Can(db, userID, access.ActionWrite, board.ID)

	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, ErrForbidden
	}

	category := models.GoalCategory{
		Title:   title,
		BoardID: board.ID,
		UserID:  userID,
	}

	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// UpdateCategory renames a category. Requires owner or writer on the board.
func UpdateCategory(db *gorm.DB, userID uint, categoryID uint, title string) (*models.GoalCategory, error) {
	category, err := visibleCategory(db, userID, categoryID)

	if err != nil {
		return nil, err
	}

	allowed, err := access.Can(db, userID, access.ActionWrite, category.BoardID)

	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, ErrForbidden
	}

	category.Title = title

	if err := db.Save(category).Error; err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory soft-deletes a category and archives every goal under it,
// atomically. Goals under sibling categories are untouched. Re-deleting an
// already-deleted category is a no-op, so the lookup skips the is_deleted
// filter that list queries apply.
func DeleteCategory(db *gorm.DB, userID uint, categoryID uint) error {
	var category models.GoalCategory

	err := db.
		Joins("JOIN board_participants ON board_participants.board_id = goal_categories.board_id").
		Where("board_participants.user_id = ?", userID).
		First(&category, categoryID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	allowed, err := access.Can(db, userID, access.ActionWrite, category.BoardID)

	if err != nil {
		return err
	}

	if !allowed {
		return ErrForbidden
	}

	now := time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.GoalCategory{}).
			Where("id = ?", category.ID).
			Updates(map[string]interface{}{"is_deleted": true, "updated": now}).Error

		if err != nil {
			return err
		}

		return tx.Model(&models.Goal{}).
			Where("category_id = ?", category.ID).
			Updates(map[string]interface{}{"status": models.StatusArchived, "updated": now}).Error
	})
}

func visibleCategory(db *gorm.DB, userID uint, categoryID uint) (*models.GoalCategory, error) {
	var category models.GoalCategory

	err := db.Scopes(access.VisibleCategories(userID)).First(&category, categoryID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &category, nil
}
