package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, input post.Input) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unautorized: %w", err)
	}
	if err := checkGroup(input.GroupID); err != nil {
		return nil, err
	}

	p := &models.Post{
		Text:     input.Text,
		Image:    input.Image,
		AuthorID: userID,
		GroupID:  input.GroupID,
	}

	// автор и группа уже существуют, сохраняем только сам пост
	err = DB.Set("gorm:save_associations", false).Create(p).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return s.GetPostByID(p.ID)
}

func (s *PostPostgresStorage) GetPostByID(id uint) (*models.Post, error) {
	var p models.Post
	err := DB.Preload("Author").Preload("Group").First(&p, id).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", id))
	}
	return &p, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id uint, input post.Input) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unautorized: %w", err)
	}

	var p models.Post
	err = DB.First(&p, id).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", id))
	}

	if p.AuthorID != userID {
		return nil, storage.ErrForbidden
	}
	if err := checkGroup(input.GroupID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"text":     input.Text,
		"group_id": input.GroupID,
	}
	if input.Image != "" {
		fields["image"] = input.Image
	}

	err = DB.Model(&p).Set("gorm:save_associations", false).Updates(fields).Error
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}

	return s.GetPostByID(id)
}

func (s *PostPostgresStorage) DeletePostByID(ctx context.Context, id uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unautorized: %w", err)
	}

	var p models.Post
	err = DB.First(&p, id).Error
	if err != nil {
		return notFoundOr(err, fmt.Sprintf("post %d", id))
	}

	if p.AuthorID != userID {
		return storage.ErrForbidden
	}

	err = DB.Delete(&p).Error
	if err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	}

	return nil
}

func (s *PostPostgresStorage) CountPosts(filter post.Filter) (int, error) {
	var count int
	err := applyFilter(DB.Model(&models.Post{}), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count posts: %w", err)
	}
	return count, nil
}

func (s *PostPostgresStorage) FindPosts(filter post.Filter, offset, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyFilter(DB.Preload("Author").Preload("Group"), filter).
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}
	return posts, nil
}

func applyFilter(db *gorm.DB, filter post.Filter) *gorm.DB {
	if filter.GroupID != 0 {
		db = db.Where("group_id = ?", filter.GroupID)
	}
	if filter.AuthorID != 0 {
		db = db.Where("author_id = ?", filter.AuthorID)
	}
	if filter.FollowerID != 0 {
		db = db.Where("author_id IN (SELECT author_id FROM follows WHERE user_id = ?)", filter.FollowerID)
	}
	return db
}

func checkGroup(groupID *uint) error {
	if groupID == nil {
		return nil
	}
	var g models.Group
	if err := DB.First(&g, *groupID).Error; err != nil {
		return fmt.Errorf("invalid group: %w", notFoundOr(err, fmt.Sprintf("group %d", *groupID)))
	}
	return nil
}
