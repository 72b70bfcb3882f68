package pagecache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "render %d", *calls)
	})
}

func get(h http.Handler, target string, userID uint) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	t.Run("replays cached page", func(t *testing.T) {
		calls := 0
		cache := New(16, time.Minute)
		h := cache.Middleware(countingHandler(&calls))

		first := get(h, "/", 0)
		second := get(h, "/", 0)

		assert.Equal(t, 1, calls)
		assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
		assert.Equal(t, "text/plain; charset=utf-8", second.Header().Get("Content-Type"))
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("keyed by uri and viewer", func(t *testing.T) {
		calls := 0
		h := New(16, time.Minute).Middleware(countingHandler(&calls))

		get(h, "/", 0)
		get(h, "/?page=2", 0)
		get(h, "/", 7)
		get(h, "/", 7)

		assert.Equal(t, 3, calls)
	})

	t.Run("clear", func(t *testing.T) {
		calls := 0
		cache := New(16, time.Minute)
		h := cache.Middleware(countingHandler(&calls))

		get(h, "/", 0)
		cache.Clear()
		rec := get(h, "/", 0)

		assert.Equal(t, 2, calls)
		assert.Equal(t, "render 2", rec.Body.String())
	})

	t.Run("expires", func(t *testing.T) {
		calls := 0
		h := New(16, 20*time.Millisecond).Middleware(countingHandler(&calls))

		get(h, "/", 0)
		time.Sleep(60 * time.Millisecond)
		get(h, "/", 0)

		assert.Equal(t, 2, calls)
	})

	t.Run("skips errors and non-get", func(t *testing.T) {
		calls := 0
		cache := New(16, time.Minute)
		h := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

		get(h, "/", 0)
		get(h, "/", 0)
		assert.Equal(t, 2, calls)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, 3, calls)
		require.Equal(t, 0, cache.Len())
	})
}
