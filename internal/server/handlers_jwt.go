package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NicolasRojas07/LFbackend/internal/token"
)

type encodeReq struct {
	Claims    map[string]any `json:"claims"`
	Secret    string         `json:"secret"`
	Algorithm string         `json:"algorithm"`
}

type encodeResp struct {
	Token string `json:"token"`
}

type decodeReq struct {
	Token string `json:"token"`
}

type decodeResp struct {
	Claims    map[string]any `json:"claims"`
	Header    map[string]any `json:"header"`
	Signature string         `json:"signature"`
}

type verifyReq struct {
	Token     string `json:"token"`
	Secret    string `json:"secret"`
	Algorithm string `json:"algorithm"`
}

type verifyResp struct {
	Claims map[string]any `json:"claims"`
	Valid  bool           `json:"valid"`
}

type inspectReq struct {
	Token string `json:"token"`
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req encodeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Claims == nil {
		writeError(w, http.StatusBadRequest, "missing 'claims' field")
		return
	}
	secret := req.Secret
	if secret == "" {
		secret = s.cfg.DefaultSecret
	}

	tok, err := token.Encode(req.Claims, secret, req.Algorithm)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, encodeResp{Token: tok})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req decodeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "missing 'token' field")
		return
	}

	dec, err := token.Decode(req.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, decodeResp{Claims: dec.Claims, Header: dec.Header, Signature: dec.Signature})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req verifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Token == "" || req.Secret == "" {
		writeError(w, http.StatusBadRequest, "missing 'token' or 'secret' field")
		return
	}

	claims, err := token.Verify(req.Token, req.Secret, req.Algorithm)
	switch {
	case err == nil:
		writeJSON(w, verifyResp{Claims: claims, Valid: true})
	case errors.Is(err, token.ErrMalformedToken):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		// SignatureInvalid and TokenExpired both refuse trust.
		writeError(w, http.StatusUnauthorized, err.Error())
	}
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req inspectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "missing 'token' field")
		return
	}

	// The report is the payload; an invalid token is still a 200.
	writeJSON(w, token.Inspect(req.Token))
}
