package postgres

import (
	"fmt"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type GroupPostgresStorage struct{}

func NewGroupPostgresStorage() *GroupPostgresStorage {
	return &GroupPostgresStorage{}
}

func (s *GroupPostgresStorage) CreateGroup(title, slug, description string) (*models.Group, error) {
	if !group.ValidSlug(slug) {
		return nil, fmt.Errorf("slug %q: %w", slug, storage.ErrInvalidSlug)
	}

	var existing models.Group
	if err := DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("group %s: %w", slug, storage.ErrAlreadyExists)
	}

	g := &models.Group{Title: title, Slug: slug, Description: description}
	if err := DB.Create(g).Error; err != nil {
		return nil, fmt.Errorf("could not create group: %w", err)
	}
	return g, nil
}

func (s *GroupPostgresStorage) GetGroupByID(id uint) (*models.Group, error) {
	var g models.Group
	if err := DB.First(&g, id).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("group %d", id))
	}
	return &g, nil
}

func (s *GroupPostgresStorage) GetGroupBySlug(slug string) (*models.Group, error) {
	var g models.Group
	if err := DB.Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, notFoundOr(err, "group "+slug)
	}
	return &g, nil
}

func (s *GroupPostgresStorage) GetAllGroups() ([]*models.Group, error) {
	var groups []*models.Group
	if err := DB.Order("title asc").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("could not get groups: %w", err)
	}
	return groups, nil
}
