package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// PostPreviewLength is how many characters of a post's text String returns.
const PostPreviewLength = 15

type User struct {
	gorm.Model
	Username  string `gorm:"unique;not null"`
	Email     string
	FirstName string
	LastName  string
	Password  string
	Posts     []Post    `gorm:"foreignkey:AuthorID"`
	Comments  []Comment `gorm:"foreignkey:AuthorID"`
}

// FullName falls back to the username when no name was given at signup.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

type Group struct {
	gorm.Model
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"unique;not null"`
	Description string
	Posts       []Post `gorm:"foreignkey:GroupID"`
}

func (g Group) String() string {
	return g.Title
}

type Post struct {
	gorm.Model
	Text     string    `gorm:"not null"`
	Image    string    // path relative to the media root, empty when there is no image
	AuthorID uint      `gorm:"not null;index"`
	Author   User      `gorm:"foreignkey:AuthorID"`
	GroupID  *uint     `gorm:"index"`
	Group    *Group    `gorm:"foreignkey:GroupID"`
	Comments []Comment `gorm:"foreignkey:PostID"`
}

func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > PostPreviewLength {
		return string(runes[:PostPreviewLength])
	}
	return p.Text
}

type Comment struct {
	gorm.Model
	Text     string `gorm:"not null"`
	PostID   uint   `gorm:"not null;index"`
	AuthorID uint   `gorm:"not null;index"`
	Author   User   `gorm:"foreignkey:AuthorID"`
}

// Follow has no soft delete: unfollowing removes the row so the pair can be followed again.
type Follow struct {
	ID        uint `gorm:"primary_key"`
	CreatedAt time.Time
	UserID    uint `gorm:"not null;unique_index:idx_follow_user_author"`
	User      User `gorm:"foreignkey:UserID"`
	AuthorID  uint `gorm:"not null;unique_index:idx_follow_user_author"`
	Author    User `gorm:"foreignkey:AuthorID"`
}
