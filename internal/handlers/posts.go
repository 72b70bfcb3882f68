package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/paginator"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/gorilla/mux"
)

// listPosts resolves the requested page of filter and loads its posts.
func (s *Server) listPosts(r *http.Request, filter post.Filter) (listPage, int, error) {
	count, err := s.Posts.CountPosts(filter)
	if err != nil {
		return listPage{}, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	page := paginator.New(count, s.cfg.PostsPerPage).Page(r.URL.Query().Get("page"))
	posts, err := s.Posts.FindPosts(filter, page.Offset, page.Limit)
	if err != nil {
		return listPage{}, 0, fmt.Errorf("failed to load posts: %w", err)
	}

	return listPage{
		basePage: basePage{Viewer: s.viewer(r)},
		Page:     page,
		Posts:    posts,
	}, count, nil
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data, _, err := s.listPosts(r, post.All())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "posts/index.html", data)
}

func (s *Server) groupPosts(w http.ResponseWriter, r *http.Request) {
	g, err := s.Groups.GetGroupBySlug(mux.Vars(r)["slug"])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	list, _, err := s.listPosts(r, post.ByGroup(g.ID))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "posts/group_list.html", groupPage{listPage: list, Group: g})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	author, err := s.Users.GetUserByUsername(mux.Vars(r)["username"])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	list, count, err := s.listPosts(r, post.ByAuthor(author.ID))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	followers, err := s.Follows.CountFollowers(author.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := profilePage{
		listPage:       list,
		Author:         author,
		PostsCount:     count,
		FollowersCount: followers,
	}
	if viewer := list.Viewer; viewer != nil && viewer.ID != author.ID {
		data.CanFollow = true
		data.Following, err = s.Follows.IsFollowing(viewer.ID, author.ID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
	}
	s.render(w, r, http.StatusOK, "posts/profile.html", data)
}

func (s *Server) postDetail(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.Posts.GetPostByID(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	count, err := s.Posts.CountPosts(post.ByAuthor(p.AuthorID))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	comments, err := s.Comments.GetCommentsByPost(p.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	viewer := s.viewer(r)
	s.render(w, r, http.StatusOK, "posts/post_detail.html", postDetailPage{
		basePage:   basePage{Viewer: viewer},
		Post:       p,
		PostsCount: count,
		Comments:   comments,
		Form:       forms.NewCommentForm(),
		CanEdit:    viewer != nil && viewer.ID == p.AuthorID,
	})
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	viewer := s.viewer(r)
	if viewer == nil {
		s.fail(w, r, errors.New("session user is missing"))
		return
	}
	data := postFormPage{
		basePage: basePage{Viewer: viewer},
		Form:     forms.NewPostForm(nil),
		Action:   s.mustReverse("create_post"),
	}

	if r.Method == http.MethodPost {
		form, ok := s.parsePostForm(w, r)
		if !ok {
			return
		}
		data.Form = form

		valid, err := form.Validate(s.Groups)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if valid {
			image, err := s.saveImage(form)
			if err != nil {
				s.fail(w, r, err)
				return
			}
			input := post.Input{Text: form.Text, GroupID: form.GroupID, Image: image}
			if _, err := s.Posts.CreatePost(r.Context(), input); err != nil {
				s.discardImage(image)
				s.fail(w, r, err)
				return
			}
			s.redirect(w, r, http.StatusSeeOther, "profile", "username", viewer.Username)
			return
		}
	}

	s.renderPostForm(w, r, data)
}

func (s *Server) postEdit(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.Posts.GetPostByID(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	viewer := s.viewer(r)
	if viewer == nil {
		s.fail(w, r, errors.New("session user is missing"))
		return
	}
	if p.AuthorID != viewer.ID {
		s.redirect(w, r, http.StatusSeeOther, "profile", "username", viewer.Username)
		return
	}

	data := postFormPage{
		basePage: basePage{Viewer: viewer},
		Form:     forms.NewPostForm(p),
		IsEdit:   true,
		Action:   s.mustReverse("post_edit", "post_id", p.ID),
	}

	if r.Method == http.MethodPost {
		form, ok := s.parsePostForm(w, r)
		if !ok {
			return
		}
		data.Form = form

		valid, err := form.Validate(s.Groups)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if valid {
			image, err := s.saveImage(form)
			if err != nil {
				s.fail(w, r, err)
				return
			}
			input := post.Input{Text: form.Text, GroupID: form.GroupID, Image: image}
			_, err = s.Posts.UpdatePost(r.Context(), p.ID, input)
			if errors.Is(err, storage.ErrForbidden) {
				s.discardImage(image)
				s.redirect(w, r, http.StatusSeeOther, "profile", "username", viewer.Username)
				return
			}
			if err != nil {
				s.discardImage(image)
				s.fail(w, r, err)
				return
			}
			s.redirect(w, r, http.StatusSeeOther, "post_detail", "post_id", p.ID)
			return
		}
	}

	s.renderPostForm(w, r, data)
}

func (s *Server) renderPostForm(w http.ResponseWriter, r *http.Request, data postFormPage) {
	groups, err := s.Groups.GetAllGroups()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data.Groups = groups
	s.render(w, r, http.StatusOK, "posts/create_post.html", data)
}

// parsePostForm reads a multipart or urlencoded post submission. It answers the request itself
// when the body cannot be read.
func (s *Server) parsePostForm(w http.ResponseWriter, r *http.Request) (*forms.PostForm, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1<<20)
	err := r.ParseMultipartForm(s.cfg.MaxUploadBytes)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		log.Printf("Error parsing post form: %v\n", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, false
	}

	form, err := forms.ParsePostForm(r, s.cfg.MaxUploadBytes)
	if err != nil {
		log.Printf("Error reading post form: %v\n", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, false
	}
	return form, true
}

// saveImage stores a validated upload and returns its media path, or "" when nothing was uploaded.
func (s *Server) saveImage(form *forms.PostForm) (string, error) {
	if form.Image == nil {
		return "", nil
	}
	name, err := s.media.Save("posts", form.Image.Ext(), form.Image.Data)
	if err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return name, nil
}

func (s *Server) discardImage(name string) {
	if err := s.media.Delete(name); err != nil {
		log.Printf("Error removing unused image %s: %v\n", name, err)
	}
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.Posts.GetPostByID(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	form := forms.ParseCommentForm(r)
	if form.Validate() {
		if _, err := s.Comments.CreateComment(r.Context(), p.ID, form.Text); err != nil {
			s.fail(w, r, err)
			return
		}
	} else {
		log.Printf("comment on post %d discarded: %v", p.ID, form.Errors)
	}

	s.redirect(w, r, http.StatusSeeOther, "post_detail", "post_id", p.ID)
}
