package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type PostMemoryStorage struct {
	mu      sync.Mutex
	posts   map[uint]*models.Post
	nextId  uint
	users   *UserMemoryStorage
	groups  *GroupMemoryStorage
	follows *FollowMemoryStorage
}

func NewPostMemoryStorage(users *UserMemoryStorage, groups *GroupMemoryStorage, follows *FollowMemoryStorage) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:   make(map[uint]*models.Post),
		nextId:  1,
		users:   users,
		groups:  groups,
		follows: follows,
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, input post.Input) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unautorized: %w", err)
	}
	if err := s.checkGroup(input.GroupID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p := &models.Post{
		Text:     input.Text,
		Image:    input.Image,
		AuthorID: userID,
		GroupID:  copyID(input.GroupID),
	}
	p.ID = s.nextId
	p.CreatedAt = now
	p.UpdatedAt = now
	s.nextId++

	s.posts[p.ID] = p
	return s.hydrate(p), nil
}

func (s *PostMemoryStorage) GetPostByID(id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	return s.hydrate(p), nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id uint, input post.Input) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unautorized: %w", err)
	}
	if err := s.checkGroup(input.GroupID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	if p.AuthorID != userID {
		return nil, storage.ErrForbidden
	}

	p.Text = input.Text
	p.GroupID = copyID(input.GroupID)
	if input.Image != "" {
		p.Image = input.Image
	}
	p.UpdatedAt = time.Now()
	return s.hydrate(p), nil
}

func (s *PostMemoryStorage) DeletePostByID(ctx context.Context, id uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unautorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	if p.AuthorID != userID {
		return storage.ErrForbidden
	}

	delete(s.posts, id)
	return nil
}

func (s *PostMemoryStorage) CountPosts(filter post.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.selectPosts(filter)), nil
}

func (s *PostMemoryStorage) FindPosts(filter post.Filter, offset, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := s.selectPosts(filter)
	if offset >= len(selected) {
		return []*models.Post{}, nil
	}
	end := len(selected)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}

	result := make([]*models.Post, 0, end-offset)
	for _, p := range selected[offset:end] {
		result = append(result, s.hydrate(p))
	}
	return result, nil
}

// selectPosts returns the matching posts newest first; the caller holds s.mu.
func (s *PostMemoryStorage) selectPosts(filter post.Filter) []*models.Post {
	var followed map[uint]bool
	if filter.FollowerID != 0 {
		followed = s.follows.followedAuthors(filter.FollowerID)
	}

	selected := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if filter.GroupID != 0 && (p.GroupID == nil || *p.GroupID != filter.GroupID) {
			continue
		}
		if filter.AuthorID != 0 && p.AuthorID != filter.AuthorID {
			continue
		}
		if filter.FollowerID != 0 && !followed[p.AuthorID] {
			continue
		}
		selected = append(selected, p)
	}

	sort.Slice(selected, func(i, j int) bool {
		if !selected[i].CreatedAt.Equal(selected[j].CreatedAt) {
			return selected[i].CreatedAt.After(selected[j].CreatedAt)
		}
		return selected[i].ID > selected[j].ID
	})
	return selected
}

func (s *PostMemoryStorage) checkGroup(groupID *uint) error {
	if groupID == nil {
		return nil
	}
	if _, err := s.groups.GetGroupByID(*groupID); err != nil {
		return fmt.Errorf("invalid group: %w", err)
	}
	return nil
}

// hydrate copies p and attaches its author and group.
func (s *PostMemoryStorage) hydrate(p *models.Post) *models.Post {
	copied := *p
	copied.GroupID = copyID(p.GroupID)
	if author, err := s.users.GetUserByID(p.AuthorID); err == nil {
		copied.Author = *author
	}
	if p.GroupID != nil {
		if g, err := s.groups.GetGroupByID(*p.GroupID); err == nil {
			copied.Group = g
		}
	}
	return &copied
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
