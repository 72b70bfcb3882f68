package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type GroupMemoryStorage struct {
	mu     sync.Mutex
	groups map[uint]*models.Group
	nextId uint
}

func NewGroupMemoryStorage() *GroupMemoryStorage {
	return &GroupMemoryStorage{
		groups: make(map[uint]*models.Group),
		nextId: 1,
	}
}

func (s *GroupMemoryStorage) CreateGroup(title, slug, description string) (*models.Group, error) {
	if !group.ValidSlug(slug) {
		return nil, fmt.Errorf("slug %q: %w", slug, storage.ErrInvalidSlug)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if g.Slug == slug {
			return nil, fmt.Errorf("group %s: %w", slug, storage.ErrAlreadyExists)
		}
	}

	now := time.Now()
	g := &models.Group{Title: title, Slug: slug, Description: description}
	g.ID = s.nextId
	g.CreatedAt = now
	g.UpdatedAt = now
	s.nextId++

	s.groups[g.ID] = g
	copied := *g
	return &copied, nil
}

func (s *GroupMemoryStorage) GetGroupByID(id uint) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, exists := s.groups[id]
	if !exists {
		return nil, fmt.Errorf("group %d: %w", id, storage.ErrNotFound)
	}
	copied := *g
	return &copied, nil
}

func (s *GroupMemoryStorage) GetGroupBySlug(slug string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if g.Slug == slug {
			copied := *g
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("group %s: %w", slug, storage.ErrNotFound)
}

func (s *GroupMemoryStorage) GetAllGroups() ([]*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]*models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		copied := *g
		groups = append(groups, &copied)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}
