package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/gorilla/mux"
)

func (s *Server) followIndex(w http.ResponseWriter, r *http.Request) {
	userID, err := s.viewerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, _, err := s.listPosts(r, post.FollowedBy(userID))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "posts/follow.html", data)
}

func (s *Server) profileFollow(w http.ResponseWriter, r *http.Request) {
	userID, err := s.viewerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	author, err := s.Users.GetUserByUsername(mux.Vars(r)["username"])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	form := forms.NewFollowForm(userID, author.ID)
	if !form.Validate() {
		log.Printf("follow of %s by user %d skipped: %v", author.Username, userID, form.Errors)
		s.redirect(w, r, http.StatusFound, "follow_index")
		return
	}

	if _, _, err := s.Follows.FollowAuthor(r.Context(), author.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	s.redirect(w, r, http.StatusFound, "follow_index")
}

func (s *Server) profileUnfollow(w http.ResponseWriter, r *http.Request) {
	author, err := s.Users.GetUserByUsername(mux.Vars(r)["username"])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.Follows.UnfollowAuthor(r.Context(), author.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	s.redirect(w, r, http.StatusFound, "profile", "username", author.Username)
}

func (s *Server) viewerID(r *http.Request) (uint, error) {
	viewer := s.viewer(r)
	if viewer == nil {
		return 0, errors.New("session user is missing")
	}
	return viewer.ID, nil
}
