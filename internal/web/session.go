package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/catalogadmin/internal/core"
	"github.com/JonMunkholm/catalogadmin/internal/datatable"
	"github.com/JonMunkholm/catalogadmin/internal/kvstore"
)

// sessionCookieMaxAge keeps the cookie, and with it the column
// preferences stored under its id, for a year.
const sessionCookieMaxAge = 365 * 24 * 60 * 60

type listView = datatable.View[datatable.Record]

// session holds the list views a browser has mounted.
// Callers lock mu while they read or change a view.
type session struct {
	id    string
	mu    sync.Mutex
	views map[string]*listView

	lastSeen time.Time // guarded by sessionStore.mu
}

// view returns the mounted view of entity, mounting it on first use.
func (s *session) view(entity string, mount func() (*listView, error)) (*listView, error) {
	if v, ok := s.views[entity]; ok {
		return v, nil
	}
	v, err := mount()
	if err != nil {
		return nil, err
	}
	s.views[entity] = v
	return v, nil
}

// update runs fn on the view of entity under the session lock.
// A panicking fn unmounts the view before the panic continues,
// so the next request starts from a fresh one.
func (s *session) update(entity string, mount func() (*listView, error), fn func(*listView) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if p := recover(); p != nil {
			s.unmount(entity)
			panic(p)
		}
	}()

	v, err := s.view(entity, mount)
	if err != nil {
		return err
	}
	return fn(v)
}

// unmount discards the view of entity. Callers hold mu.
func (s *session) unmount(entity string) {
	delete(s.views, entity)
}

// reset locks the session and discards the view of entity.
func (s *session) reset(entity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmount(entity)
}

// sessionStore tracks browser sessions and drops the views of
// sessions idle for longer than ttl. Preferences outlive the views.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	prefs    kvstore.Store
	now      func() time.Time
	logger   *slog.Logger
}

func newSessionStore(prefs kvstore.Store, ttl time.Duration, logger *slog.Logger) *sessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		prefs:    prefs,
		now:      time.Now,
		logger:   logger,
	}
}

// acquire returns the session id, creating it if needed,
// and marks it as used now.
func (st *sessionStore) acquire(id string) *session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		s = &session{id: id, views: make(map[string]*listView)}
		st.sessions[id] = s
	}
	s.lastSeen = st.now()
	return s
}

// preferences returns the preference store of session id,
// or nil when preferences are not persisted.
func (st *sessionStore) preferences(id string) datatable.Store {
	if st.prefs == nil {
		return nil
	}
	return kvstore.NewPrefixed(st.prefs, "session:"+id+":")
}

// sweep removes sessions idle for longer than the ttl and
// returns how many it removed.
func (st *sessionStore) sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-st.ttl)
	removed := 0
	for id, s := range st.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// run sweeps every interval until ctx is done.
func (st *sessionStore) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.sweep(); n > 0 {
				st.logger.Debug("idle sessions removed", "count", n, "active", st.len())
			}
		}
	}
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// sessionMiddleware makes sure every request carries a session cookie and
// stores the session id and client address in the request context.
func sessionMiddleware(cookieName string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(cookieName); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   sessionCookieMaxAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := core.ContextWithSessionID(r.Context(), id)
			ctx = WithRequestMetadata(ctx, r)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
