package mocks

import (
	"context"
	"sync"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/models"
)

// MockCommentStorage реализует интерфейс comment.CommentStorage для тестирования
type MockCommentStorage struct {
	mu       sync.Mutex
	comments []*models.Comment
	Err      error
}

func NewMockCommentStorage() *MockCommentStorage {
	return &MockCommentStorage{}
}

func (m *MockCommentStorage) CreateComment(ctx context.Context, postID uint, text string) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := &models.Comment{Text: text, PostID: postID, AuthorID: userID}
	c.ID = uint(len(m.comments) + 1)
	m.comments = append(m.comments, c)
	return c, nil
}

func (m *MockCommentStorage) GetCommentsByPost(postID uint) ([]*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*models.Comment, 0)
	for _, c := range m.comments {
		if c.PostID == postID {
			result = append(result, c)
		}
	}
	return result, nil
}
