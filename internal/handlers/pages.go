package handlers

import (
	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/paginator"
	"github.com/VitaminP8/yatube/models"
)

// basePage is embedded by every page; the layout reads Viewer to pick the navigation.
type basePage struct {
	Viewer *models.User
}

type listPage struct {
	basePage
	Page  paginator.Page
	Posts []*models.Post
}

type groupPage struct {
	listPage
	Group *models.Group
}

type profilePage struct {
	listPage
	Author         *models.User
	PostsCount     int
	FollowersCount int
	Following      bool
	CanFollow      bool
}

type postDetailPage struct {
	basePage
	Post       *models.Post
	PostsCount int
	Comments   []*models.Comment
	Form       *forms.CommentForm
	CanEdit    bool
}

type postFormPage struct {
	basePage
	Form   *forms.PostForm
	Groups []*models.Group
	IsEdit bool
	Action string
}

type signupPage struct {
	basePage
	Form *forms.SignupForm
}

type loginPage struct {
	basePage
	Form *forms.LoginForm
}

type notFoundPage struct {
	basePage
	Path string
}
