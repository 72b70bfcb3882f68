package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	s := newTestStores()
	author := s.createUser(t, "author")
	g, err := s.groups.CreateGroup("Cats", "cats", "")
	require.NoError(t, err)

	t.Run("Success post creation", func(t *testing.T) {
		ctx := createUserContext(author.ID)

		p, err := s.posts.CreatePost(ctx, post.Input{Text: "Test post", GroupID: &g.ID, Image: "posts/a.gif"})
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, "Test post", p.Text)
		assert.Equal(t, author.ID, p.AuthorID)
		assert.Equal(t, "author", p.Author.Username)
		require.NotNil(t, p.Group)
		assert.Equal(t, "cats", p.Group.Slug)
		assert.Equal(t, "posts/a.gif", p.Image)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("Error with unknown group", func(t *testing.T) {
		missing := uint(999)
		_, err := s.posts.CreatePost(createUserContext(author.ID), post.Input{Text: "x", GroupID: &missing})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Error: no authorization", func(t *testing.T) {
		_, err := s.posts.CreatePost(context.Background(), post.Input{Text: "x"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unautorized")
	})
}

func TestPostMemoryStorage_GetPostByID(t *testing.T) {
	s := newTestStores()
	author := s.createUser(t, "author")
	created, err := s.posts.CreatePost(createUserContext(author.ID), post.Input{Text: "Test post"})
	require.NoError(t, err)

	t.Run("Getting existing post", func(t *testing.T) {
		p, err := s.posts.GetPostByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, p.ID)
		assert.Nil(t, p.Group)
	})

	t.Run("Returned post is a copy", func(t *testing.T) {
		p, err := s.posts.GetPostByID(created.ID)
		require.NoError(t, err)
		p.Text = "changed outside"

		again, err := s.posts.GetPostByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Test post", again.Text)
	})

	t.Run("Trying to get not existing post", func(t *testing.T) {
		_, err := s.posts.GetPostByID(23425532)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPostMemoryStorage_UpdatePost(t *testing.T) {
	s := newTestStores()
	author := s.createUser(t, "author")
	other := s.createUser(t, "other")
	g, err := s.groups.CreateGroup("Cats", "cats", "")
	require.NoError(t, err)

	created, err := s.posts.CreatePost(createUserContext(author.ID), post.Input{Text: "Original", Image: "posts/a.gif"})
	require.NoError(t, err)

	t.Run("Author updates text and group, image is kept", func(t *testing.T) {
		updated, err := s.posts.UpdatePost(createUserContext(author.ID), created.ID, post.Input{Text: "Edited", GroupID: &g.ID})
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Text)
		require.NotNil(t, updated.GroupID)
		assert.Equal(t, g.ID, *updated.GroupID)
		assert.Equal(t, "posts/a.gif", updated.Image)
		assert.Equal(t, author.ID, updated.AuthorID)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("Non-author cannot update", func(t *testing.T) {
		_, err := s.posts.UpdatePost(createUserContext(other.ID), created.ID, post.Input{Text: "Hacked"})
		assert.ErrorIs(t, err, storage.ErrForbidden)

		p, err := s.posts.GetPostByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Edited", p.Text)
	})

	t.Run("Unknown post", func(t *testing.T) {
		_, err := s.posts.UpdatePost(createUserContext(author.ID), 999, post.Input{Text: "x"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPostMemoryStorage_DeletePostByID(t *testing.T) {
	s := newTestStores()
	author := s.createUser(t, "author")
	other := s.createUser(t, "other")
	created, err := s.posts.CreatePost(createUserContext(author.ID), post.Input{Text: "Test post"})
	require.NoError(t, err)

	err = s.posts.DeletePostByID(createUserContext(other.ID), created.ID)
	assert.ErrorIs(t, err, storage.ErrForbidden)

	require.NoError(t, s.posts.DeletePostByID(createUserContext(author.ID), created.ID))

	_, err = s.posts.GetPostByID(created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPostMemoryStorage_FindPosts(t *testing.T) {
	s := newTestStores()
	author := s.createUser(t, "author")
	other := s.createUser(t, "other")
	reader := s.createUser(t, "reader")
	g, err := s.groups.CreateGroup("Cats", "cats", "")
	require.NoError(t, err)

	for i := 0; i < 13; i++ {
		_, err := s.posts.CreatePost(createUserContext(author.ID), post.Input{Text: fmt.Sprintf("Post %d", i), GroupID: &g.ID})
		require.NoError(t, err)
	}
	_, err = s.posts.CreatePost(createUserContext(other.ID), post.Input{Text: "Other"})
	require.NoError(t, err)

	t.Run("All posts newest first", func(t *testing.T) {
		count, err := s.posts.CountPosts(post.All())
		require.NoError(t, err)
		assert.Equal(t, 14, count)

		posts, err := s.posts.FindPosts(post.All(), 0, 10)
		require.NoError(t, err)
		require.Len(t, posts, 10)
		assert.Equal(t, "Other", posts[0].Text)
		assert.Equal(t, "Post 12", posts[1].Text)
	})

	t.Run("Offset past the end", func(t *testing.T) {
		posts, err := s.posts.FindPosts(post.All(), 20, 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("By group and by author", func(t *testing.T) {
		count, err := s.posts.CountPosts(post.ByGroup(g.ID))
		require.NoError(t, err)
		assert.Equal(t, 13, count)

		posts, err := s.posts.FindPosts(post.ByAuthor(author.ID), 10, 10)
		require.NoError(t, err)
		assert.Len(t, posts, 3)
		assert.Equal(t, "Post 0", posts[2].Text)
	})

	t.Run("Followed by", func(t *testing.T) {
		count, err := s.posts.CountPosts(post.FollowedBy(reader.ID))
		require.NoError(t, err)
		assert.Zero(t, count)

		_, _, err = s.follows.FollowAuthor(createUserContext(reader.ID), other.ID)
		require.NoError(t, err)

		posts, err := s.posts.FindPosts(post.FollowedBy(reader.ID), 0, 10)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Other", posts[0].Text)
	})
}
