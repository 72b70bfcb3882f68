package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type viewerKey struct{}

// loadViewer resolves the session user once per request. A session whose user no longer
// exists continues as anonymous, so private routes send it to the login page.
func (s *Server) loadViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.GetUserIDFromContext(r.Context())
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		u, err := s.Users.GetUserByID(userID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Printf("session user %d no longer exists, continuing anonymously", userID)
			r = r.WithContext(auth.WithoutUser(r.Context()))
		case err != nil:
			s.fail(w, r.WithContext(auth.WithoutUser(r.Context())), fmt.Errorf("failed to load session user %d: %w", userID, err))
			return
		default:
			r = r.WithContext(context.WithValue(r.Context(), viewerKey{}, u))
		}
		next.ServeHTTP(w, r)
	})
}

// viewer returns the logged-in user loaded by loadViewer, or nil for anonymous requests.
func (s *Server) viewer(r *http.Request) *models.User {
	u, _ := r.Context().Value(viewerKey{}).(*models.User)
	return u
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.RequestURI(), sw.status, time.Since(start))
	})
}
