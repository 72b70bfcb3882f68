package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

// MockPostStorage реализует интерфейс post.PostStorage для тестирования.
// Если Err задан, все методы возвращают его.
type MockPostStorage struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	nextID uint
	Err    error
}

func NewMockPostStorage() *MockPostStorage {
	return &MockPostStorage{
		posts:  make(map[uint]*models.Post),
		nextID: 1,
	}
}

func (m *MockPostStorage) CreatePost(ctx context.Context, input post.Input) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p := &models.Post{Text: input.Text, GroupID: input.GroupID, Image: input.Image, AuthorID: userID}
	p.ID = m.nextID
	m.nextID++
	m.posts[p.ID] = p
	return p, nil
}

func (m *MockPostStorage) GetPostByID(id uint) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	return p, nil
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, id uint, input post.Input) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	p.Text = input.Text
	p.GroupID = input.GroupID
	if input.Image != "" {
		p.Image = input.Image
	}
	return p, nil
}

func (m *MockPostStorage) DeletePostByID(ctx context.Context, id uint) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	delete(m.posts, id)
	return nil
}

// CountPosts ignores the filter.
func (m *MockPostStorage) CountPosts(filter post.Filter) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posts), nil
}

// FindPosts ignores the filter and returns posts in id order.
func (m *MockPostStorage) FindPosts(filter post.Filter, offset, limit int) ([]*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for id := uint(1); id < m.nextID; id++ {
		if p, ok := m.posts[id]; ok {
			posts = append(posts, p)
		}
	}
	if offset >= len(posts) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}
