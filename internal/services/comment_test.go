package services

import (
	"testing"

	"github.com/goalboard-dev/goalboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentPermissions(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")
	writer := createUser(t, d, "writer")
	reader := createUser(t, d, "reader")
	outsider := createUser(t, d, "outsider")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	addParticipant(t, d, board.ID, writer.ID, models.RoleWriter)
	addParticipant(t, d, board.ID, reader.ID, models.RoleReader)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	goal := createGoal(t, d, chores.ID, owner.ID, "Buy milk")

	comment, err := CreateComment(d, writer.ID, goal.ID, "On it")
	require.NoError(t, err)
	assert.Equal(t, writer.ID, comment.UserID)

	_, err = CreateComment(d, reader.ID, goal.ID, "Me too")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = CreateComment(d, outsider.ID, goal.ID, "Who dis")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateComment(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	goal := createGoal(t, d, chores.ID, owner.ID, "Buy milk")

	comment, err := CreateComment(d, owner.ID, goal.ID, "Semi-skimmed")
	require.NoError(t, err)

	updated, err := UpdateComment(d, owner.ID, comment.ID, "Whole milk actually")
	require.NoError(t, err)
	assert.Equal(t, "Whole milk actually", updated.Text)
}

func TestDeleteCommentIsPhysical(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	goal := createGoal(t, d, chores.ID, owner.ID, "Buy milk")

	comment, err := CreateComment(d, owner.ID, goal.ID, "Semi-skimmed")
	require.NoError(t, err)

	require.NoError(t, DeleteComment(d, owner.ID, comment.ID))

	var count int64
	require.NoError(t, d.Model(&models.GoalComment{}).Where("id = ?", comment.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommentOnInvisibleGoalNotFound(t *testing.T) {
	d := newTestDB(t)
	owner := createUser(t, d, "owner")
	outsider := createUser(t, d, "outsider")

	board, err := CreateBoard(d, owner.ID, "Home")
	require.NoError(t, err)
	chores := createCategory(t, d, board.ID, owner.ID, "Chores")
	goal := createGoal(t, d, chores.ID, owner.ID, "Buy milk")
	comment, err := CreateComment(d, owner.ID, goal.ID, "Semi-skimmed")
	require.NoError(t, err)

	_, err = UpdateComment(d, outsider.ID, comment.ID, "Hijack")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, DeleteComment(d, outsider.ID, comment.ID), ErrNotFound)
}
