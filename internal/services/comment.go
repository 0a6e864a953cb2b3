package services

import (
	"errors"

	"github.com/goalboard-dev/goalboard/internal/access"
	"github.com/goalboard-dev/goalboard/internal/models"
	"gorm.io/gorm"
)

// CreateComment adds a comment to a goal. The caller must be owner or
// writer of the goal's board.
func CreateComment(db *gorm.DB, userID uint, goalID uint, text string) (*models.GoalComment, error) {
	var goal models.Goal

	if err := db.Preload("Category").First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("goal", "goal does not exist")
		}
		return nil, err
	}

	if goal.Category.IsDeleted {
		return nil, newValidationError("goal", "not allowed under deleted category")
	}

	allowed, err := access.Can(db, userID, access.ActionWrite, goal.Category.BoardID)

	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, ErrForbidden
	}

	comment := models.GoalComment{
		Text:   text,
		GoalID: goal.ID,
		UserID: userID,
	}

	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// UpdateComment replaces the comment text. Requires owner or writer on the
// board the comment's goal belongs to.
func UpdateComment(db *gorm.DB, userID uint, commentID uint, text string) (*models.GoalComment, error) {
	comment, boardID, err := visibleComment(db, userID, commentID)

	if err != nil {
		return nil, err
	}

	allowed, err := access.Can(db, userID, access.ActionWrite, boardID)

	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, ErrForbidden
	}

	comment.Text = text

	if err := db.Save(comment).Error; err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment. Comments carry no soft-delete state, so
// this is the one genuinely physical delete in the hierarchy.
func DeleteComment(db *gorm.DB, userID uint, commentID uint) error {
	comment, boardID, err := visibleComment(db, userID, commentID)

	if err != nil {
		return err
	}

	allowed, err := access.Can(db, userID, access.ActionWrite, boardID)

	if err != nil {
		return err
	}

	if !allowed {
		return ErrForbidden
	}

	return db.Delete(comment).Error
}

func visibleComment(db *gorm.DB, userID uint, commentID uint) (*models.GoalComment, uint, error) {
	var comment models.GoalComment

	err := db.Scopes(access.VisibleComments(userID)).
		Preload("Goal.Category").
		First(&comment, commentID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	return &comment, comment.Goal.Category.BoardID, nil
}
