package follow

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

// FollowStorage manages follow relationships of the user stored in ctx.
type FollowStorage interface {
	// FollowAuthor is get-or-create: created is false when the relationship already existed.
	FollowAuthor(ctx context.Context, authorID uint) (follow *models.Follow, created bool, err error)
	UnfollowAuthor(ctx context.Context, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
	CountFollowers(authorID uint) (int, error)
}
