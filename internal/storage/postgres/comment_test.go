package postgres

import (
	"context"
	"testing"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentPostgresStorage_CreateComment(t *testing.T) {
	s := NewCommentPostgresStorage()

	t.Run("Creating comment", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "commenter")
		postID := createTestPost(t, userID, "Test post", nil)

		c, err := s.CreateComment(createUserContext(userID), postID, "Test comment")
		require.NoError(t, err)
		assert.NotZero(t, c.ID)
		assert.Equal(t, postID, c.PostID)
		assert.Equal(t, userID, c.AuthorID)
		assert.Equal(t, "commenter", c.Author.Username)

		// Проверяем, что комментарий действительно создан в БД
		var dbComment models.Comment
		err = DB.First(&dbComment, c.ID).Error
		require.NoError(t, err)
		assert.Equal(t, "Test comment", dbComment.Text)
	})

	t.Run("Error when creating comment for non-existent post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "commenter")

		_, err := s.CreateComment(createUserContext(userID), 999, "Test comment")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Contains(t, err.Error(), "post not found")
	})

	t.Run("Error on unauthorized request", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "commenter")
		postID := createTestPost(t, userID, "Test post", nil)

		_, err := s.CreateComment(context.Background(), postID, "Test comment")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unautorized")
	})
}

func TestCommentPostgresStorage_GetCommentsByPost(t *testing.T) {
	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	s := NewCommentPostgresStorage()
	authorID := createTestUser(t, "author")
	readerID := createTestUser(t, "reader")
	postID := createTestPost(t, authorID, "Test post", nil)
	otherPostID := createTestPost(t, authorID, "Other post", nil)

	_, err := s.CreateComment(createUserContext(readerID), postID, "First")
	require.NoError(t, err)
	_, err = s.CreateComment(createUserContext(authorID), postID, "Second")
	require.NoError(t, err)
	_, err = s.CreateComment(createUserContext(authorID), otherPostID, "Elsewhere")
	require.NoError(t, err)

	comments, err := s.GetCommentsByPost(postID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "First", comments[0].Text)
	assert.Equal(t, "reader", comments[0].Author.Username)
	assert.Equal(t, "Second", comments[1].Text)

	empty, err := s.GetCommentsByPost(999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
