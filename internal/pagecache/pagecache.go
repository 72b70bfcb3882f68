// Package pagecache keeps rendered pages for a fixed time.
//
// Entries are keyed by request URI and viewer and are never invalidated by writes: a cached
// page stays stale until its TTL passes or Clear is called.
package pagecache

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type page struct {
	status int
	header http.Header
	body   []byte
}

type Cache struct {
	pages *expirable.LRU[string, *page]
}

func New(size int, ttl time.Duration) *Cache {
	return &Cache{pages: expirable.NewLRU[string, *page](size, nil, ttl)}
}

// Middleware replays cached GET responses and stores successful ones.
func (c *Cache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cacheKey(r)
		if p, ok := c.pages.Get(key); ok {
			for name, values := range p.header {
				w.Header()[name] = append([]string(nil), values...)
			}
			w.WriteHeader(p.status)
			w.Write(p.body)
			return
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			c.pages.Add(key, &page{
				status: rec.status,
				header: rec.Header().Clone(),
				body:   rec.body.Bytes(),
			})
		}
	})
}

func (c *Cache) Clear() {
	c.pages.Purge()
}

func (c *Cache) Len() int {
	return c.pages.Len()
}

func cacheKey(r *http.Request) string {
	viewer := "anonymous"
	if userID, err := auth.GetUserIDFromContext(r.Context()); err == nil {
		viewer = strconv.FormatUint(uint64(userID), 10)
	}
	return viewer + " " + r.URL.RequestURI()
}

type recorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *recorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
