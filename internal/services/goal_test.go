package services

import (
	"testing"
	"time"

	"github.com/goalboard-dev/goalboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGoalDefaults(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")

	goal, err := CreateGoal(d, owner.ID, GoalInput{Title: "Buy milk", CategoryID: chores.ID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusToDo, goal.Status)
	assert.Equal(t, models.PriorityMedium, goal.Priority)
	assert.Equal(t, owner.ID, goal.UserID)
	assert.Nil(t, goal.DueDate)
}

func TestCreateGoalPermissions(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")
	writer := createUser(t, d, "writer")
	reader := createUser(t, d, "reader")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	addParticipant(t, d, board.ID, writer.ID, models.RoleWriter)
	addParticipant(t, d, board.ID, reader.ID, models.RoleReader)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")

	_, err = CreateGoal(d, writer.ID, GoalInput{Title: "Buy milk", CategoryID: chores.ID})
	assert.NoError(t, err)

	_, err = CreateGoal(d, reader.ID, GoalInput{Title: "Nope", CategoryID: chores.ID})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateGoalInDeletedCategoryRejected(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	require.NoError(t, DeleteCategory(d, owner.ID, chores.ID))

	_, err = CreateGoal(d, owner.ID, GoalInput{Title: "Buy milk", CategoryID: chores.ID})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "category")
}

func TestCreateGoalInvalidEnumsRejected(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")

	_, err = CreateGoal(d, owner.ID, GoalInput{Title: "Buy milk", CategoryID: chores.ID, Status: 42})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "status")

	_, err = CreateGoal(d, owner.ID, GoalInput{Title: "Buy milk", CategoryID: chores.ID, Priority: 42})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "priority")
}

func TestUpdateGoalMove(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	work := createCategory(t, d, board.ID, owner.ID, "Work")
	goal := createGoal(t, d, chores.ID, owner.ID, "Buy milk")

	due := time.Now().Add(48 * time.Hour)

	moved, err := UpdateGoal(d, owner.ID, goal.ID, GoalInput{
		Title:      "Buy milk",
		CategoryID: work.ID,
		Status:     models.StatusInProgress,
		Priority:   models.PriorityHigh,
		DueDate:    &due,
	})
	require.NoError(t, err)
	assert.Equal(t, work.ID, moved.CategoryID)
	assert.Equal(t, models.StatusInProgress, moved.Status)
	assert.Equal(t, models.PriorityHigh, moved.Priority)
	require.NotNil(t, moved.DueDate)
}

func TestUpdateGoalIntoDeletedCategoryRejected(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	graveyard := createCategory(t, d, board.ID, owner.ID, "Old stuff")
	goal := createGoal(t, d, chores.ID, owner.ID, "Buy milk")

	require.NoError(t, DeleteCategory(d, owner.ID, graveyard.ID))

	_, err = UpdateGoal(d, owner.ID, goal.ID, GoalInput{
		Title:      "Buy milk",
		CategoryID: graveyard.ID,
		Status:     models.StatusToDo,
		Priority:   models.PriorityMedium,
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "category")
}

func TestDeleteGoalArchivesAndKeepsComments(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	goal := createGoal(t, d, chores.ID, owner.ID, "Buy milk")

	comment, err := CreateComment(d, owner.ID, goal.ID, "Semi-skimmed please")
	require.NoError(t, err)

	require.NoError(t, DeleteGoal(d, owner.ID, goal.ID))

	var goalAfter models.Goal
	require.NoError(t, d.First(&goalAfter, goal.ID).Error)
	assert.Equal(t, models.StatusArchived, goalAfter.Status)

	var commentAfter models.GoalComment
	assert.NoError(t, d.First(&commentAfter, comment.ID).Error)

	// Archiving again is a no-op.
	require.NoError(t, DeleteGoal(d, owner.ID, goal.ID))
}

func TestArchivedGoalStaysVisible(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	goal := createGoal(t, d, chores.ID, owner.ID, "Buy milk")

	require.NoError(t, DeleteGoal(d, owner.ID, goal.ID))

	got, err := visibleGoal(d, owner.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, got.Status)
}

func TestUpdateGoalNeedsWriteOnCurrentBoard(t *testing.T) {
	d := newTestDB(t)
	alice := createUser(t, d, "alice")
	mallory := createUser(t, d, "mallory")

	aliceBoard, err := CreateBoard(d, alice.ID, "Home")
	require.NoError(t, err)
	addParticipant(t, d, aliceBoard.ID, mallory.ID, models.RoleReader)
	chores := createCategory(t, d, aliceBoard.ID, alice.ID, "Chores")
	goal := createGoal(t, d, chores.ID, alice.ID, "Buy milk")

	malloryBoard, err := CreateBoard(d, mallory.ID, "Mine")
	require.NoError(t, err)
	malloryCat := createCategory(t, d, malloryBoard.ID, mallory.ID, "Loot")

	// A reader on the goal's board cannot move it anywhere, even into a
	// category they fully control.
	_, err = UpdateGoal(d, mallory.ID, goal.ID, GoalInput{
		Title:      "Buy milk",
		CategoryID: malloryCat.ID,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	var after models.Goal
	require.NoError(t, d.First(&after, goal.ID).Error)
	assert.Equal(t, chores.ID, after.CategoryID)
	assert.Equal(t, "Buy milk", after.Title)
}

func TestUpdateGoalKeepsStatusAndPriorityWhenOmitted(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	goal := createGoal(t, d, chores.ID, owner.ID, "Buy milk")

	require.NoError(t, d.Model(&models.Goal{}).Where("id = ?", goal.ID).
		Updates(map[string]interface{}{"status": models.StatusInProgress, "priority": models.PriorityHigh}).Error)

	updated, err := UpdateGoal(d, owner.ID, goal.ID, GoalInput{
		Title:      "Buy oat milk",
		CategoryID: chores.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
}
