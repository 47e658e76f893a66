// Package session keeps per-browser values server-side, keyed by a random cookie id.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	CookieName = "amco_session"
	contextKey = "session"

	AdminLoggedInKey = "admin_logged_in"
)

type Session struct {
	id     string
	mu     sync.RWMutex
	values map[string]any
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *Session) IsAdmin() bool {
	value, ok := s.Get(AdminLoggedInKey)
	if !ok {
		return false
	}
	loggedIn, _ := value.(bool)
	return loggedIn
}

type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{cache: gocache.New(ttl, 2*ttl), ttl: ttl}
}

func (st *Store) load(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	if value, found := st.cache.Get(id); found {
		return value.(*Session), true
	}
	return nil, false
}

func (st *Store) create() *Session {
	return &Session{id: uuid.NewString(), values: map[string]any{}}
}

// Middleware attaches the caller's session to the gin context, creating one when
// the cookie is absent or expired. Sessions are refreshed on every request.
func (st *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(CookieName)
		sess, ok := st.load(id)
		if !ok {
			sess = st.create()
		}

		st.cache.Set(sess.id, sess, gocache.DefaultExpiration)
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     CookieName,
			Value:    sess.id,
			Path:     "/",
			MaxAge:   int(st.ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		c.Set(contextKey, sess)
		c.Next()
	}
}

// FromContext returns the session attached by Middleware.
func FromContext(c *gin.Context) *Session {
	if value, ok := c.Get(contextKey); ok {
		if sess, ok := value.(*Session); ok {
			return sess
		}
	}
	return &Session{values: map[string]any{}}
}
