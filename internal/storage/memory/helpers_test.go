package memory

import (
	"context"
	"testing"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/models"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_for_jwt"

func createUserContext(userID uint) context.Context {
	ctx := context.Background()
	return auth.WithUserID(ctx, userID)
}

type testStores struct {
	users    *UserMemoryStorage
	groups   *GroupMemoryStorage
	follows  *FollowMemoryStorage
	posts    *PostMemoryStorage
	comments *CommentMemoryStorage
}

func newTestStores() *testStores {
	users := NewUserMemoryStorage(auth.TokenIssuer{Secret: testSecret, TTL: time.Hour})
	groups := NewGroupMemoryStorage()
	follows := NewFollowMemoryStorage()
	posts := NewPostMemoryStorage(users, groups, follows)
	return &testStores{
		users:    users,
		groups:   groups,
		follows:  follows,
		posts:    posts,
		comments: NewCommentMemoryStorage(posts, users),
	}
}

func (s *testStores) createUser(t *testing.T, username string) *models.User {
	u, err := s.users.RegisterUser(username, username+"@example.com", "password123")
	require.NoError(t, err)
	return u
}
