package handlers

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage/memory"
	"github.com/VitaminP8/yatube/models"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_for_jwt"

type testApp struct {
	server *Server
	issuer auth.TokenIssuer
	users  *memory.UserMemoryStorage
	groups *memory.GroupMemoryStorage
	posts  *memory.PostMemoryStorage
	notes  *memory.CommentMemoryStorage
	follow *memory.FollowMemoryStorage
	root   string
}

// newTestApp wires the server to memory stores; override replaces any of them before the
// server is built.
func newTestApp(t *testing.T, override ...func(*Stores)) *testApp {
	t.Helper()

	cfg := config.Config{
		Addr:           ":0",
		PostsPerPage:   10,
		IndexCacheTTL:  20 * time.Second,
		PageCacheSize:  128,
		MediaRoot:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
		JWTSecret:      testSecret,
		SessionTTL:     time.Hour,
	}
	issuer := auth.TokenIssuer{Secret: cfg.JWTSecret, TTL: cfg.SessionTTL}

	users := memory.NewUserMemoryStorage(issuer)
	groups := memory.NewGroupMemoryStorage()
	follows := memory.NewFollowMemoryStorage()
	posts := memory.NewPostMemoryStorage(users, groups, follows)
	comments := memory.NewCommentMemoryStorage(posts, users)

	files, err := media.NewFileSystem(cfg.MediaRoot)
	require.NoError(t, err)

	stores := Stores{
		Users:    users,
		Groups:   groups,
		Posts:    posts,
		Comments: comments,
		Follows:  follows,
	}
	for _, o := range override {
		o(&stores)
	}

	server, err := NewServer(cfg, stores, files)
	require.NoError(t, err)

	return &testApp{
		server: server,
		issuer: issuer,
		users:  users,
		groups: groups,
		posts:  posts,
		notes:  comments,
		follow: follows,
		root:   cfg.MediaRoot,
	}
}

func (a *testApp) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := a.users.RegisterUser(username, username+"@example.com", "password123")
	require.NoError(t, err)
	return u
}

func (a *testApp) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	g, err := a.groups.CreateGroup("Group "+slug, slug, "about "+slug)
	require.NoError(t, err)
	return g
}

func (a *testApp) createPost(t *testing.T, author *models.User, text string, groupID *uint) *models.Post {
	t.Helper()
	p, err := a.posts.CreatePost(userContext(author), post.Input{Text: text, GroupID: groupID})
	require.NoError(t, err)
	return p
}

func userContext(u *models.User) context.Context {
	return auth.WithUserID(context.Background(), u.ID)
}

// do sends a request as u, or anonymously when u is nil.
func (a *testApp) do(t *testing.T, req *http.Request, u *models.User) *httptest.ResponseRecorder {
	t.Helper()
	if u != nil {
		token, err := a.issuer.Issue(u.ID, u.Username)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	a.server.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(t *testing.T, target string, u *models.User) *httptest.ResponseRecorder {
	return a.do(t, httptest.NewRequest(http.MethodGet, target, nil), u)
}

func (a *testApp) postForm(t *testing.T, target string, values url.Values, u *models.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, req, u)
}

func (a *testApp) postMultipart(t *testing.T, target string, fields map[string]string, filename string, file []byte, u *models.User) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(t, req, u)
}

func countPosts(body string) int {
	return strings.Count(body, `<article class="post">`)
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func countFiles(root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count, err
}
