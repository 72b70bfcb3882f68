package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type followKey struct {
	userID   uint
	authorID uint
}

type FollowMemoryStorage struct {
	mu      sync.Mutex
	follows map[followKey]*models.Follow
	nextId  uint
}

func NewFollowMemoryStorage() *FollowMemoryStorage {
	return &FollowMemoryStorage{
		follows: make(map[followKey]*models.Follow),
		nextId:  1,
	}
}

func (s *FollowMemoryStorage) FollowAuthor(ctx context.Context, authorID uint) (*models.Follow, bool, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("unautorized: %w", err)
	}
	if userID == authorID {
		return nil, false, storage.ErrSelfFollow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID: userID, authorID: authorID}
	if existing, ok := s.follows[key]; ok {
		copied := *existing
		return &copied, false, nil
	}

	f := &models.Follow{
		ID:        s.nextId,
		CreatedAt: time.Now(),
		UserID:    userID,
		AuthorID:  authorID,
	}
	s.nextId++
	s.follows[key] = f

	copied := *f
	return &copied, true, nil
}

func (s *FollowMemoryStorage) UnfollowAuthor(ctx context.Context, authorID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unautorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID: userID, authorID: authorID}
	if _, ok := s.follows[key]; !ok {
		return fmt.Errorf("follow %d -> %d: %w", userID, authorID, storage.ErrNotFound)
	}
	delete(s.follows, key)
	return nil
}

func (s *FollowMemoryStorage) IsFollowing(userID, authorID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.follows[followKey{userID: userID, authorID: authorID}]
	return ok, nil
}

func (s *FollowMemoryStorage) CountFollowers(authorID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key := range s.follows {
		if key.authorID == authorID {
			count++
		}
	}
	return count, nil
}

func (s *FollowMemoryStorage) followedAuthors(userID uint) map[uint]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors := make(map[uint]bool)
	for key := range s.follows {
		if key.userID == userID {
			authors[key.authorID] = true
		}
	}
	return authors
}
