// Package handlers serves the yatube web pages.
package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/pagecache"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/gorilla/mux"
)

// Stores is the set of repositories the handlers read and write.
type Stores struct {
	Users    user.UserStorage
	Groups   group.GroupStorage
	Posts    post.PostStorage
	Comments comment.CommentStorage
	Follows  follow.FollowStorage
}

type Server struct {
	Stores

	cfg    config.Config
	media  media.Storage
	cache  *pagecache.Cache
	router *mux.Router
	pages  *renderer

	handler http.Handler
}

func NewServer(cfg config.Config, stores Stores, files media.Storage) (*Server, error) {
	s := &Server{
		Stores: stores,
		cfg:    cfg,
		media:  files,
		cache:  pagecache.New(cfg.PageCacheSize, cfg.IndexCacheTTL),
		router: mux.NewRouter(),
	}

	pages, err := newRenderer(s.templateFuncs())
	if err != nil {
		return nil, err
	}
	s.pages = pages

	s.routes()
	s.handler = logRequests(auth.AuthMiddleware(cfg.JWTSecret)(s.loadViewer(s.router)))
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Cache is the page cache in front of the index page.
func (s *Server) Cache() *pagecache.Cache {
	return s.cache
}

func (s *Server) routes() {
	r := s.router
	r.NotFoundHandler = http.HandlerFunc(s.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	r.Handle("/", s.cache.Middleware(http.HandlerFunc(s.index))).Methods(http.MethodGet).Name("index")
	r.HandleFunc("/group/{slug}/", s.groupPosts).Methods(http.MethodGet).Name("group_posts")
	r.HandleFunc("/profile/{username}/", s.profile).Methods(http.MethodGet).Name("profile")
	r.HandleFunc("/posts/{post_id:[0-9]+}/", s.postDetail).Methods(http.MethodGet).Name("post_detail")

	r.HandleFunc("/auth/signup/", s.signup).Methods(http.MethodGet, http.MethodPost).Name("signup")
	r.HandleFunc("/auth/login/", s.login).Methods(http.MethodGet, http.MethodPost).Name("login")
	r.HandleFunc("/auth/logout/", s.logout).Methods(http.MethodGet).Name("logout")

	s.private("/create/", "create_post", s.createPost, http.MethodGet, http.MethodPost)
	s.private("/posts/{post_id:[0-9]+}/edit/", "post_edit", s.postEdit, http.MethodGet, http.MethodPost)
	s.private("/posts/{post_id:[0-9]+}/comment/", "add_comment", s.addComment, http.MethodPost)
	s.private("/follow/", "follow_index", s.followIndex, http.MethodGet)
	s.private("/profile/{username}/follow/", "profile_follow", s.profileFollow, http.MethodGet)
	s.private("/profile/{username}/unfollow/", "profile_unfollow", s.profileUnfollow, http.MethodGet)

	r.HandleFunc("/about/author/", s.static("about/author.html")).Methods(http.MethodGet).Name("about_author")
	r.HandleFunc("/about/tech/", s.static("about/tech.html")).Methods(http.MethodGet).Name("about_tech")

	files := http.StripPrefix(media.URLPrefix, http.FileServer(http.Dir(s.cfg.MediaRoot)))
	r.PathPrefix(media.URLPrefix).Handler(files).Methods(http.MethodGet).Name("media")
}

// private registers a route that requires a logged-in user. The login route must exist already.
func (s *Server) private(path, name string, h http.HandlerFunc, methods ...string) {
	s.router.Handle(path, auth.LoginRequired(s.mustReverse("login"), h)).Methods(methods...).Name(name)
}

func (s *Server) reverse(name string, pairs ...interface{}) (string, error) {
	route := s.router.Get(name)
	if route == nil {
		return "", fmt.Errorf("unknown route %q", name)
	}

	values := make([]string, len(pairs))
	for i, p := range pairs {
		values[i] = fmt.Sprint(p)
	}
	u, err := route.URL(values...)
	if err != nil {
		return "", fmt.Errorf("could not build url for %s: %w", name, err)
	}
	return u.Path, nil
}

// mustReverse is for routes registered in routes(); a failure there is a programming error.
func (s *Server) mustReverse(name string, pairs ...interface{}) string {
	u, err := s.reverse(name, pairs...)
	if err != nil {
		panic(err)
	}
	return u
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, status int, name string, pairs ...interface{}) {
	http.Redirect(w, r, s.mustReverse(name, pairs...), status)
}

// postID parses the post_id path variable. Values that do not fit a uint are reported as not found.
func postID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["post_id"], 10, 64)
	if err != nil || id == 0 || uint64(uint(id)) != id {
		return 0, fmt.Errorf("post id %q: %w", mux.Vars(r)["post_id"], storage.ErrNotFound)
	}
	return uint(id), nil
}

// fail renders the 404 page for missing objects and the 500 page for everything else.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	log.Printf("Error handling %s %s: %v\n", r.Method, r.URL.Path, err)
	s.render(w, r, http.StatusInternalServerError, "core/500.html", basePage{Viewer: s.viewer(r)})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "core/404.html", notFoundPage{
		basePage: basePage{Viewer: s.viewer(r)},
		Path:     r.URL.Path,
	})
}

func (s *Server) static(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, name, basePage{Viewer: s.viewer(r)})
	}
}
