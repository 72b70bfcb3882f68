package postgres

import (
	"fmt"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"

	"golang.org/x/crypto/bcrypt"
)

type UserPostgresStorage struct {
	issuer auth.TokenIssuer
}

func NewUserPostgresStorage(issuer auth.TokenIssuer) *UserPostgresStorage {
	return &UserPostgresStorage{issuer: issuer}
}

func (s *UserPostgresStorage) RegisterUser(username, email, password string) (*models.User, error) {
	// проверка - существует ли такой пользователь
	var existUser models.User
	err := DB.Where("username = ?", username).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("user with username %s: %w", username, storage.ErrAlreadyExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}

	err = DB.Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserPostgresStorage) LoginUser(username, password string) (*models.User, string, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, "", fmt.Errorf("user with username %s not found: %w", username, storage.ErrInvalidCredentials)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, "", fmt.Errorf("invalid password or username: %w", storage.ErrInvalidCredentials)
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *UserPostgresStorage) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := DB.First(&user, id).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("user %d", id))
	}
	return &user, nil
}

func (s *UserPostgresStorage) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, notFoundOr(err, "user "+username)
	}
	return &user, nil
}
