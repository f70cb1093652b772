package mw

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"shepherd-laundry/internal/labels"
	"shepherd-laundry/internal/reactive"
	"shepherd-laundry/internal/store"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// cacheKey separates responses by negotiated language, since records are
// decorated with labels.
func cacheKey(c *gin.Context) string {
	return labels.Negotiate(c.GetHeader("Accept-Language")).Language + " " + c.Request.RequestURI
}

// ResponseCache caches successful GET responses until the next Flush.
type ResponseCache struct {
	store *cache.Cache
	ttl   time.Duration

	mu  sync.Mutex
	gen uint64
}

// NewResponseCache creates a cache whose entries expire after ttl at the latest.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{store: cache.New(ttl, 2*ttl), ttl: ttl}
}

// Flush drops every entry. Responses still being computed from data read before
// the flush are not stored.
func (rc *ResponseCache) Flush() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.gen++
	rc.store.Flush()
}

// Len returns the number of cached responses.
func (rc *ResponseCache) Len() int {
	return rc.store.ItemCount()
}

func (rc *ResponseCache) generation() uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.gen
}

// setIfCurrent stores resp unless the cache was flushed since gen was read.
func (rc *ResponseCache) setIfCurrent(gen uint64, key string, resp cachedResponse) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.gen != gen {
		return
	}
	rc.store.Set(key, resp, rc.ttl)
}

// Cache is a middleware for in-memory caching of GET requests.
func Cache(rc *ResponseCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		if resp, found := rc.store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		gen := rc.generation()
		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only cache successful responses
		if blw.Status() >= 200 && blw.Status() < 300 {
			response := cachedResponse{
				status: blw.Status(),
				// Make a copy of the header map.
				headers: blw.Header().Clone(),
				body:    blw.body.Bytes(),
			}
			rc.setIfCurrent(gen, key, response)
		}
	}
}

// FlushOnChange flushes rc whenever any store of app publishes a new value. The
// returned func removes the subscriptions.
func FlushOnChange(rc *ResponseCache, app *store.App) func() {
	unsubs := []func(){
		flushOn(rc, app.Members),
		flushOn(rc, app.Items),
		flushOn(rc, app.Cycles),
		flushOn(rc, app.Drying),
		flushOn(rc, app.Consumables),
		flushOn(rc, app.Today),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func flushOn[T any](rc *ResponseCache, src reactive.Readable[T]) func() {
	first := true
	return src.Subscribe(func(T) {
		if first {
			first = false
			return
		}
		rc.Flush()
	})
}
