package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/models"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, postID uint, text string) (*models.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unautorized: %w", err)
	}

	var p models.Post
	err = DB.First(&p, postID).Error
	if err != nil {
		return nil, fmt.Errorf("post not found: %w", notFoundOr(err, fmt.Sprintf("post %d", postID)))
	}

	comment := &models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: userID,
	}

	err = DB.Set("gorm:save_associations", false).Create(comment).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	err = DB.Preload("Author").First(comment, comment.ID).Error
	if err != nil {
		return nil, fmt.Errorf("could not reload comment: %w", err)
	}
	return comment, nil
}

func (s *CommentPostgresStorage) GetCommentsByPost(postID uint) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := DB.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}
	return comments, nil
}
