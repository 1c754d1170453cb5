package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/Denizcan35/barin/internal/cache"
	"github.com/Denizcan35/barin/internal/core"
	applog "github.com/Denizcan35/barin/internal/log"
	"github.com/Denizcan35/barin/internal/service"
	"github.com/Denizcan35/barin/internal/view"
	appweb "github.com/Denizcan35/barin/web"
)

const sessionCookie = "barin_session"

type Server struct {
	http.Server
	templates   *template.Template
	svc         *service.ReceiptService
	rateLimiter *rateLimiter
	log         *applog.Logger

	// Per-session list state, keyed by the session cookie. Entries expire
	// with the cookie's inactivity window and are evicted LRU beyond the
	// size cap.
	sessions *cache.LRUCache[*view.ListState]

	// Shared stats document, refreshed on TTL expiry.
	statsCache *cache.LRUCache[core.Stats]

	// Cache cleanup management
	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, svc *service.ReceiptService, sessionTTL, statsTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:          svc,
		rateLimiter:  newRateLimiter(),
		log:          applog.Default(applog.ComponentHTTP),
		sessions:     cache.NewLRUCache[*view.ListState](1000, sessionTTL),
		statsCache:   cache.NewLRUCache[core.Stats](1, statsTTL),
		cacheManager: cache.NewManager(),
	}

	// Start periodic cache cleanup
	s.cacheManager.Register(s.sessions)
	s.cacheManager.Register(s.statsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.log.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Tiny cache for static assets
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.log.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	// Full page
	mux.HandleFunc("GET /{$}", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("GET /receipts", s.withSecurityHeaders(s.handleIndex))

	// UI partials
	mux.HandleFunc("GET /ui/stats", s.withSecurityHeaders(s.handleStats))
	mux.HandleFunc("GET /ui/receipts", s.withSecurityHeaders(s.handleReceiptList))
	mux.HandleFunc("GET /ui/receipts/{id}/edit", s.withSecurityHeaders(s.handleEditModal))
	mux.HandleFunc("GET /ui/activity", s.withSecurityHeaders(s.handleActivity))

	// Mutations
	mux.HandleFunc("PUT /receipts/{id}", s.withSecurityHeaders(s.handleUpdateReceipt))
	mux.HandleFunc("DELETE /receipts/{id}", s.withSecurityHeaders(s.handleDeleteReceipt))

	// Spreadsheet export
	mux.HandleFunc("GET /receipts/export/excel", s.withSecurityHeaders(s.handleExportExcel))

	return s
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ip := clientIP(r)

		// Generate request ID for tracing
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.log.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, ip,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		// Apply rate limiting to mutating requests
		if isMutating(r.Method) && !s.rateLimiter.allow(ip) {
			s.log.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, ip,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Create a custom response writer to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		// Log request completion
		duration := time.Since(start)
		s.log.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds(),
			applog.FieldClientIP, ip)
	}
}

type requestIDKey struct{}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// session returns the caller's list state, minting a session cookie on
// first contact. Repeat requests with the same cookie share one state, so
// concurrent partials for a session see a single generation counter.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *view.ListState {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	} else {
		id = generateSessionID()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s.sessions.GetOrCreate(id, view.NewListState)
}

// stats returns the cached aggregate document, fetching on miss.
func (s *Server) stats(ctx context.Context) (core.Stats, error) {
	if data, found := s.statsCache.Get("stats"); found {
		s.log.DebugContext(ctx, "Stats cache hit")
		return data, nil
	}

	data, err := s.svc.Stats(ctx)
	if err != nil {
		return core.Stats{}, err
	}

	s.statsCache.Set("stats", data)
	return data, nil
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}

		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}

		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
