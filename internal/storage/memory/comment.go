package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

type CommentMemoryStorage struct {
	mu        sync.Mutex
	comments  map[uint]*models.Comment
	nextId    uint
	postStore post.PostStorage
	userStore user.UserStorage
}

func NewCommentMemoryStorage(postStore post.PostStorage, userStore user.UserStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments:  make(map[uint]*models.Comment),
		nextId:    1,
		postStore: postStore,
		userStore: userStore,
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, postID uint, text string) (*models.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unautorized: %w", err)
	}

	_, err = s.postStore.GetPostByID(postID)
	if err != nil {
		return nil, fmt.Errorf("post not found: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c := &models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: userID,
	}
	c.ID = s.nextId
	c.CreatedAt = now
	c.UpdatedAt = now
	s.nextId++

	s.comments[c.ID] = c
	return s.hydrate(c), nil
}

func (s *CommentMemoryStorage) GetCommentsByPost(postID uint) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			result = append(result, s.hydrate(c))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *CommentMemoryStorage) hydrate(c *models.Comment) *models.Comment {
	copied := *c
	if author, err := s.userStore.GetUserByID(c.AuthorID); err == nil {
		copied.Author = *author
	}
	return &copied
}
