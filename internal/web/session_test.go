package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/catalogadmin/internal/core"
	"github.com/JonMunkholm/catalogadmin/internal/kvstore"
)

func TestSessionStore_Sweep(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	st := newSessionStore(nil, 10*time.Minute, nil)
	st.now = func() time.Time { return now }

	st.acquire("old")
	now = now.Add(8 * time.Minute)
	st.acquire("recent")
	now = now.Add(5 * time.Minute)

	assert.Equal(t, 1, st.sweep())
	assert.Equal(t, 1, st.len())

	s := st.acquire("recent")
	assert.Equal(t, "recent", s.id)
	assert.Equal(t, 0, st.sweep())
}

func TestSessionStore_AcquireReturnsSameSession(t *testing.T) {
	st := newSessionStore(nil, time.Minute, nil)
	a := st.acquire("a")
	assert.Same(t, a, st.acquire("a"))
	assert.NotSame(t, a, st.acquire("b"))
}

func TestSessionStore_Preferences(t *testing.T) {
	assert.Nil(t, newSessionStore(nil, time.Minute, nil).preferences("a"))

	mem := kvstore.NewMemory()
	st := newSessionStore(mem, time.Minute, nil)
	require.NoError(t, st.preferences("a").Set("k", "v"))

	v, ok, err := mem.Get("session:a:k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, ok, err = st.preferences("b").Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_ViewMountsOnce(t *testing.T) {
	s := &session{views: make(map[string]*listView)}
	mounts := 0
	mount := func() (*listView, error) {
		mounts++
		return &listView{}, nil
	}

	v1, err := s.view("products", mount)
	require.NoError(t, err)
	v2, err := s.view("products", mount)
	require.NoError(t, err)
	assert.Same(t, v1, v2)
	assert.Equal(t, 1, mounts)

	s.unmount("products")
	_, err = s.view("products", mount)
	require.NoError(t, err)
	assert.Equal(t, 2, mounts)
}

func TestSessionMiddleware(t *testing.T) {
	var gotID string
	h := sessionMiddleware("sid", true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = core.SessionIDFromContext(r.Context())
	}))

	t.Run("keeps a valid cookie", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: id})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, id, gotID)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("replaces an invalid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "not-a-uuid"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, cookies[0].Value, gotID)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, sessionCookieMaxAge, cookies[0].MaxAge)
	})
}

func TestSession_UpdateReleasesLockOnPanic(t *testing.T) {
	s := &session{views: make(map[string]*listView)}
	mount := func() (*listView, error) { return &listView{}, nil }

	require.NoError(t, s.update("products", mount, func(*listView) error { return nil }))
	require.Contains(t, s.views, "products")

	assert.Panics(t, func() {
		_ = s.update("products", mount, func(*listView) error { panic("format failed") })
	})

	assert.NotContains(t, s.views, "products", "the failing view is unmounted")
	require.True(t, s.mu.TryLock(), "the session lock is released")
	s.mu.Unlock()
}
