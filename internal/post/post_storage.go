package post

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

// Input carries the editable fields of a post. An empty Image keeps the current one on update.
type Input struct {
	Text    string
	GroupID *uint
	Image   string
}

// Filter selects which posts a listing shows. Zero fields do not filter.
type Filter struct {
	GroupID    uint
	AuthorID   uint
	FollowerID uint
}

func All() Filter {
	return Filter{}
}

func ByGroup(groupID uint) Filter {
	return Filter{GroupID: groupID}
}

func ByAuthor(authorID uint) Filter {
	return Filter{AuthorID: authorID}
}

// FollowedBy selects posts written by the authors userID follows.
func FollowedBy(userID uint) Filter {
	return Filter{FollowerID: userID}
}

// PostStorage returns posts with Author and Group loaded. Listings are newest first.
type PostStorage interface {
	CreatePost(ctx context.Context, input Input) (*models.Post, error)
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(ctx context.Context, id uint, input Input) (*models.Post, error)
	DeletePostByID(ctx context.Context, id uint) error
	CountPosts(filter Filter) (int, error)
	FindPosts(filter Filter, offset, limit int) ([]*models.Post, error)
}
