package server

import (
	"context"
	"net/http"
	"time"
)

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/health", s.handleHealth)

	s.mux.HandleFunc("/api/jwt/encode", s.handleEncode)
	s.mux.HandleFunc("/api/jwt/decode", s.handleDecode)
	s.mux.HandleFunc("/api/jwt/verify", s.handleVerify)
	s.mux.HandleFunc("/api/jwt/inspect", s.handleInspect)

	s.mux.HandleFunc("/api/jwt/save-test", s.handleSaveTest)
	s.mux.HandleFunc("/api/jwt/tests", s.handleListTests)
	s.mux.HandleFunc("/api/jwt/tests/", s.handleTestByID)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// "/" is the mux catch-all; anything unrouted lands here.
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, map[string]string{
		"service": "lf-jwt-backend",
		"message": "JWT encode/decode/verify playground",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Printf("health: store unreachable: %v", err)
		writeJSONStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
