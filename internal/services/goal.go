package services

import (
	"errors"
	"time"

	"github.com/goalboard-dev/goalboard/internal/access"
	"github.com/goalboard-dev/goalboard/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GoalInput carries the caller-settable goal fields. Zero Status and
// Priority fall back to to_do and medium on create.
type GoalInput struct {
	Title        string
	Description  string
	CategoryID   uint
	Status       models.GoalStatus
	Priority     models.GoalPriority
	DueDate      *time.Time
	CustomFields datatypes.JSON
}

// CreateGoal creates a goal in a category. The category must not be deleted
// and the caller must be owner or writer of the category's board.
func CreateGoal(db *gorm.DB, userID uint, in GoalInput) (*models.Goal, error) {
	category, err := writableCategory(db, userID, in.CategoryID)

	if err != nil {
		return nil, err
	}

	if in.Status == 0 {
		in.Status = models.StatusToDo
	}

	if in.Priority == 0 {
		in.Priority = models.PriorityMedium
	}

	if err := validateGoalFields(in); err != nil {
		return nil, err
	}

	goal := models.Goal{
		Title:        in.Title,
		Description:  in.Description,
		CategoryID:   category.ID,
		UserID:       userID,
		Status:       in.Status,
		Priority:     in.Priority,
		DueDate:      in.DueDate,
		CustomFields: in.CustomFields,
	}

	if err := db.Create(&goal).Error; err != nil {
		return nil, err
	}

	return &goal, nil
}

// UpdateGoal replaces the caller-settable fields of a goal. Write access is
// required on the goal's current board, and again on the target category's
// board when the goal is being moved; the target category must not be
// deleted. Zero Status and Priority keep the goal's current values.
func UpdateGoal(db *gorm.DB, userID uint, goalID uint, in GoalInput) (*models.Goal, error) {
	goal, err := visibleGoal(db, userID, goalID)

	if err != nil {
		return nil, err
	}

	allowed, err := access.Can(db, userID, access.ActionWrite, goal.Category.BoardID)

	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, ErrForbidden
	}

	category, err := writableCategory(db, userID, in.CategoryID)

	if err != nil {
		return nil, err
	}

	if in.Status == 0 {
		in.Status = goal.Status
	}

	if in.Priority == 0 {
		in.Priority = goal.Priority
	}

	if err := validateGoalFields(in); err != nil {
		return nil, err
	}

	goal.Title = in.Title
	goal.Description = in.Description
	goal.CategoryID = category.ID
	goal.Status = in.Status
	goal.Priority = in.Priority
	goal.DueDate = in.DueDate
	goal.CustomFields = in.CustomFields

	if err := db.Save(goal).Error; err != nil {
		return nil, err
	}

	return goal, nil
}

// DeleteGoal archives a goal. Comments are untouched and stay queryable;
// there is no further cascade. Archiving an archived goal is a no-op.
func DeleteGoal(db *gorm.DB, userID uint, goalID uint) error {
	goal, err := visibleGoal(db, userID, goalID)

	if err != nil {
		return err
	}

	allowed, err := access.Can(db, userID, access.ActionWrite, goal.Category.BoardID)

	if err != nil {
		return err
	}

	if !allowed {
		return ErrForbidden
	}

	goal.Status = models.StatusArchived

	return db.Save(goal).Error
}

func validateGoalFields(in GoalInput) error {
	if !in.Status.Valid() {
		return newValidationError("status", "status must be to_do, in_progress, done or archived")
	}

	if !in.Priority.Valid() {
		return newValidationError("priority", "priority must be low, medium, high or critical")
	}

	return nil
}

// writableCategory resolves a category reference on goal create/update: the
// category must exist, must not be deleted, and the caller must be owner or
// writer of its board. A deleted category is a validation error even when
// the role check would pass.
func writableCategory(db *gorm.DB, userID uint, categoryID uint) (*models.GoalCategory, error) {
	var category models.GoalCategory

	if err := db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("category", "category does not exist")
		}
		return nil, err
	}

	if category.IsDeleted {
		return nil, newValidationError("category", "not allowed in deleted category")
	}

	allowed, err := access.Can(db, userID, access.ActionWrite, category.BoardID)

	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, ErrForbidden
	}

	return &category, nil
}

func visibleGoal(db *gorm.DB, userID uint, goalID uint) (*models.Goal, error) {
	var goal models.Goal

	err := db.Scopes(access.VisibleGoals(userID)).Preload("Category").First(&goal, goalID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &goal, nil
}
