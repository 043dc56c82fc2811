package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/NicolasRojas07/LFbackend/internal/store"
)

type Server struct {
	cfg    Config
	mux    *http.ServeMux
	store  store.TestCaseStore
	logger *log.Logger

	rlWrite *ipLimiter
}

// New wires the router over an already-connected store. The store is the
// only shared resource; the Server itself holds no per-request state.
func New(cfg Config, st store.TestCaseStore, logger *log.Logger) *Server {
	cfg.setDefaults()
	s := &Server{
		cfg:    cfg,
		mux:    http.NewServeMux(),
		store:  st,
		logger: logger,
	}

	// 60 mutating calls per minute per client IP, burst 10.
	s.rlWrite = newIPLimiter(rate.Limit(1), 10, time.Hour)

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}()

	if s.cfg.Debug {
		s.logger.Printf("%s %s from %s", r.Method, r.URL.Path, clientIP(r))
	}

	if s.isMutating(r) && !s.rlWrite.allowRequest(r) {
		tooMany(w, 60)
		return
	}

	s.mux.ServeHTTP(w, r)
}

func (s *Server) isMutating(r *http.Request) bool {
	if !strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	return r.Method == http.MethodPost || r.Method == http.MethodDelete
}
