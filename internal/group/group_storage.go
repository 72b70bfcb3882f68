package group

import (
	"regexp"

	"github.com/VitaminP8/yatube/models"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidSlug reports whether slug is usable in a URL path segment as is.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

type GroupStorage interface {
	CreateGroup(title, slug, description string) (*models.Group, error)
	GetGroupByID(id uint) (*models.Group, error)
	GetGroupBySlug(slug string) (*models.Group, error)
	GetAllGroups() ([]*models.Group, error)
}
