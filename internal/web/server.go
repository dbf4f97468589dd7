// Package web provides the HTTP server and handlers for the catalog admin UI.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/catalogadmin/internal/config"
	"github.com/JonMunkholm/catalogadmin/internal/core"
	"github.com/JonMunkholm/catalogadmin/internal/kvstore"
	appmw "github.com/JonMunkholm/catalogadmin/internal/web/middleware"
	"github.com/JonMunkholm/catalogadmin/internal/web/templates"
)

//go:embed static
var staticFiles embed.FS

// sessionSweepInterval is how often idle sessions are collected.
const sessionSweepInterval = time.Minute

var errRateLimited = errors.New("rate limit exceeded")

// Server is the HTTP server for the catalog admin application.
type Server struct {
	service  *core.Service
	cfg      *config.Config
	sessions *sessionStore
	router   *chi.Mux
	server   *http.Server
	limiters []*rateLimiter
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewServer creates a new Server instance.
// Column preferences are persisted in prefs; nil keeps them per view only.
func NewServer(service *core.Service, prefs kvstore.Store, cfg *config.Config) *Server {
	s := &Server{
		service:  service,
		cfg:      cfg,
		sessions: newSessionStore(prefs, cfg.Session.IdleTTL, slog.Default()),
		router:   chi.NewRouter(),
		logger:   slog.Default(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(appmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(appmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	// Security hardening
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute).middleware)
	}

	s.router.Use(sessionMiddleware(s.cfg.Session.CookieName, s.cfg.Session.SecureCookie))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Pages
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/table/{entity}", s.handleTableView)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(appmw.APIKeyAuth(&s.cfg.Security))

		r.Get("/tables", s.handleListTables)

		r.Route("/table/{entity}", func(r chi.Router) {
			r.Get("/", s.handleTable)

			// Search and filters
			r.Post("/search", s.tableAction("search", setSearch))
			r.Post("/filter/{column}", s.tableAction("filter", setFilter))
			r.Delete("/filter/{column}", s.tableAction("clear filter", clearFilter))
			r.Delete("/filters", s.tableAction("clear filters", clearFilters))

			// Sorting
			r.Post("/sort/{column}", s.tableAction("sort", toggleSort))
			r.Delete("/sort", s.tableAction("clear sort", clearSort))

			// Paging
			r.Post("/page/{page}", s.tableAction("page", setPage))
			r.Post("/page-size/{size}", s.tableAction("page size", s.setPageSize))

			// Selection
			r.Post("/select/{rowID}", s.tableAction("toggle row", toggleRow))
			r.Post("/select-page", s.tableAction("select page", selectPage))
			r.Post("/clear-page", s.tableAction("clear page", clearPage))
			r.Delete("/selection", s.tableAction("clear selection", clearSelection))

			// Column visibility
			r.Post("/columns/show-all", s.tableAction("show all columns", showAllColumns))
			r.Post("/columns/hide-all", s.tableAction("hide all columns", hideAllColumns))
			r.Post("/columns/{column}/toggle", s.tableAction("toggle column", toggleColumn))

			r.Delete("/view", s.handleResetView)
		})

		r.Group(func(r chi.Router) {
			if s.cfg.Rate.Enabled {
				r.Use(s.newRateLimiter(s.cfg.Rate.ExportLimit, time.Minute).middleware)
			}
			r.Get("/export/{entity}", s.handleExport)
		})
	})
}

// Start begins listening for HTTP requests and blocks until the server stops.
func (s *Server) Start(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	srv := s.server
	s.mu.Unlock()

	go s.sessions.run(ctx, sessionSweepInterval)
	for _, l := range s.limiters {
		go l.cleanup(ctx)
	}

	s.logger.Info("starting server", "addr", addr)
	return srv.ListenAndServe()
}

// Shutdown gracefully stops the server and its background sweepers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// contentSecurityPolicy allows same-origin resources plus the htmx script.
const contentSecurityPolicy = "default-src 'self'; script-src 'self' https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self'"

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			if enableCSP {
				w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
			}

			// Control referrer information
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimiter implements a simple token bucket rate limiter per IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
	now      func() time.Time
	respond  func(http.ResponseWriter, *http.Request, error)
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a rate limiter with the specified rate per window.
// Its cleanup runs while the server is started.
func (s *Server) newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      time.Now,
		respond:  s.respondError,
	}
	s.limiters = append(s.limiters, rl)
	return rl
}

// cleanup removes stale visitor entries every window until ctx is done.
func (rl *rateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if rl.now().Sub(v.lastReset) > rl.window*2 {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1, // consume one token
			lastReset: now,
		}
		return true
	}

	// Reset tokens if window has passed
	if now.Sub(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = now
		return true
	}

	// Check if we have tokens left
	if v.tokens <= 0 {
		return false
	}

	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by IP.
// RemoteAddr has already been rewritten by TrustedRealIP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			rl.respond(w, r, errRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sidebar returns the registered entities by group.
// With counts set, each entry carries the current number of rows.
func (s *Server) sidebar(ctx context.Context, counts bool) []templates.EntityGroup {
	byGroup := s.service.ListEntitiesByGroup()
	var groups []templates.EntityGroup
	for _, name := range core.Groups() {
		g := templates.EntityGroup{Name: name}
		for _, info := range byGroup[name] {
			link := templates.EntityLink{Key: info.Key, Label: info.Label}
			if counts {
				rows, err := s.service.Rows(ctx, info.Key)
				if err != nil {
					s.logger.Warn("row count unavailable", "entity", info.Key, "error", err)
				}
				link.Rows = len(rows)
			}
			g.Entities = append(g.Entities, link)
		}
		groups = append(groups, g)
	}
	return groups
}
