package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/NicolasRojas07/LFbackend/internal/store"
)

type saveTestReq struct {
	Token       string `json:"token"`
	Secret      string `json:"secret"`
	Description string `json:"description"`
	Metadata    string `json:"metadata"`
}

type deleteResp struct {
	Deleted bool `json:"deleted"`
}

func (s *Server) handleSaveTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req saveTestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		writeError(w, http.StatusBadRequest, "missing 'token' field")
		return
	}

	saved, err := s.store.Insert(r.Context(), &store.TestCase{
		Token:       req.Token,
		Secret:      req.Secret,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, saved)
}

func (s *Server) handleListTests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cases, err := s.store.ListAll(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	if cases == nil {
		cases = []store.TestCase{}
	}
	writeJSON(w, cases)
}

func (s *Server) handleTestByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/jwt/tests/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	deleted, err := s.store.DeleteByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	if !deleted {
		writeJSONStatus(w, http.StatusNotFound, deleteResp{Deleted: false})
		return
	}
	writeJSON(w, deleteResp{Deleted: true})
}

// storeError maps store failures onto the API's status codes. Anything that
// is not a caller mistake counts as the store being unavailable.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Printf("store: %v", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
	}
}
