package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
)

type FollowPostgresStorage struct{}

func NewFollowPostgresStorage() *FollowPostgresStorage {
	return &FollowPostgresStorage{}
}

func (s *FollowPostgresStorage) FollowAuthor(ctx context.Context, authorID uint) (*models.Follow, bool, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("unautorized: %w", err)
	}
	if userID == authorID {
		return nil, false, storage.ErrSelfFollow
	}

	existing, err := findFollow(userID, authorID)
	if err == nil {
		return existing, false, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, false, fmt.Errorf("could not get follow: %w", err)
	}

	f := &models.Follow{UserID: userID, AuthorID: authorID}
	err = DB.Set("gorm:save_associations", false).Create(f).Error
	if err != nil {
		// параллельный запрос мог создать ту же пару: уникальный индекс отклонил вставку
		if existing, findErr := findFollow(userID, authorID); findErr == nil {
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("could not create follow: %w", err)
	}

	return f, true, nil
}

func (s *FollowPostgresStorage) UnfollowAuthor(ctx context.Context, authorID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unautorized: %w", err)
	}

	res := DB.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if res.Error != nil {
		return fmt.Errorf("could not delete follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow %d -> %d: %w", userID, authorID, storage.ErrNotFound)
	}
	return nil
}

func (s *FollowPostgresStorage) IsFollowing(userID, authorID uint) (bool, error) {
	var count int
	err := DB.Model(&models.Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not check follow: %w", err)
	}
	return count > 0, nil
}

func (s *FollowPostgresStorage) CountFollowers(authorID uint) (int, error) {
	var count int
	err := DB.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count followers: %w", err)
	}
	return count, nil
}

func findFollow(userID, authorID uint) (*models.Follow, error) {
	var f models.Follow
	err := DB.Where("user_id = ? AND author_id = ?", userID, authorID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}
