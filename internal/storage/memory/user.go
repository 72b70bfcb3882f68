package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"

	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu         sync.Mutex
	users      map[uint]*models.User
	byUsername map[string]uint
	issuer     auth.TokenIssuer
	nextId     uint
}

func NewUserMemoryStorage(issuer auth.TokenIssuer) *UserMemoryStorage {
	return &UserMemoryStorage{
		users:      make(map[uint]*models.User),
		byUsername: make(map[string]uint),
		issuer:     issuer,
		nextId:     1,
	}
}

func (s *UserMemoryStorage) RegisterUser(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrAlreadyExists)
	}

	now := time.Now()
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	user.ID = s.nextId
	user.CreatedAt = now
	user.UpdatedAt = now
	s.nextId++

	s.users[user.ID] = user
	s.byUsername[username] = user.ID

	copied := *user
	return &copied, nil
}

func (s *UserMemoryStorage) LoginUser(username, password string) (*models.User, string, error) {
	s.mu.Lock()
	user, exists := s.lookup(username)
	s.mu.Unlock()
	if !exists {
		return nil, "", fmt.Errorf("user %s: %w", username, storage.ErrInvalidCredentials)
	}

	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, "", fmt.Errorf("password for user %s is incorrect: %w", username, storage.ErrInvalidCredentials)
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserMemoryStorage) GetUserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (s *UserMemoryStorage) GetUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.lookup(username)
	if !exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
	}
	return user, nil
}

// lookup returns a copy; the caller holds s.mu.
func (s *UserMemoryStorage) lookup(username string) (*models.User, bool) {
	id, exists := s.byUsername[username]
	if !exists {
		return nil, false
	}
	copied := *s.users[id]
	return &copied, true
}
