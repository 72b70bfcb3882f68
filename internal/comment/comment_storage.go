package comment

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

type CommentStorage interface {
	CreateComment(ctx context.Context, postID uint, text string) (*models.Comment, error)
	// GetCommentsByPost returns the post's comments oldest first, with Author loaded.
	GetCommentsByPost(postID uint) ([]*models.Comment, error)
}
