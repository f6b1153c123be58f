// Package http exposes the ledger over a small JSON API. The handlers
// translate user intents into service calls and re-read state; the
// server itself keeps no ledger data beyond a summary cache.
package http

import (
	"net/http"
	"strings"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

const summaryCacheKey = "summary"

type Server struct {
	http.Server

	svc     *services.LedgerService
	limiter *ratelimit.Limiter

	// Summary reads are memoized between mutations.
	summaryCache *cache.LRUCache[services.Summary]
	cacheManager *cache.Manager
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, svc *services.LedgerService, summaryTTL time.Duration) *Server {
	s := &Server{
		svc:          svc,
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		summaryCache: cache.NewLRUCache[services.Summary](4, summaryTTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/sort/", s.handleSort)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/categories", s.handleCategories)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware()

	s.Server = http.Server{
		Addr:           addr,
		Handler:        tracer.Wrap(headers.Wrap(s.withRateLimit(mux))),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return s
}

// Close stops the background helpers in addition to the embedded server.
func (s *Server) Close() error {
	s.limiter.Stop()
	s.cacheManager.Stop()
	return s.Server.Close()
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// invalidateSummary drops the memoized summary after any mutation.
func (s *Server) invalidateSummary() {
	s.summaryCache.Delete(summaryCacheKey)
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
