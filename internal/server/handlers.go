package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jpalmerr/presence/internal/status"
)

// maxBodySize caps publish request bodies.
const maxBodySize = 1 << 20 // 1MB

// handleRoot routes by path and method. Anything but GET or POST on "/" is 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeText(w, http.StatusNotFound, "Not Found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetStatus(w, r)
	case http.MethodPost:
		s.handleSetStatus(w, r)
	default:
		writeText(w, http.StatusNotFound, "Not Found")
	}
}

// handleGetStatus returns the last published record with staleness applied.
func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	raw, ok, err := s.store.Get(r.Context(), StatusKey)
	if err != nil {
		s.internalError(w, r, "failed to read status record", err)
		return
	}
	if !ok {
		writeText(w, http.StatusBadGateway, "No status published")
		return
	}

	rec, err := status.ParseRecord(raw)
	if err != nil {
		s.internalError(w, r, "stored status record is invalid", err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, http.StatusOK, rec.Derive(s.now(), s.staleAfter))
}

// handleSetStatus authenticates the caller and stores a freshly stamped record.
//
// Authentication runs before the body is read, so a bad token is 401 whatever
// the body contains.
func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	token, hasToken := bearerToken(r)

	secret, hasSecret, err := s.store.Get(r.Context(), SecretKey)
	if err != nil {
		s.internalError(w, r, "failed to read secret", err)
		return
	}
	if !hasSecret || len(secret) == 0 || !hasToken || !tokenEqual(token, secret) {
		s.logger.Warn("unauthorized publish", "remote_addr", r.RemoteAddr, "token_present", hasToken)
		writeText(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, status.Issues{{
			Code:    status.CodeInvalidJSON,
			Path:    []string{},
			Message: "Invalid JSON: " + err.Error(),
		}})
		return
	}

	st, err := status.ParseUpdate(body)
	if err != nil {
		if issues, ok := status.AsIssues(err); ok {
			writeJSON(w, http.StatusBadRequest, issues)
			return
		}
		s.internalError(w, r, "failed to parse publish body", err)
		return
	}

	rec := status.NewRecord(st, s.now())
	data, err := rec.Encode()
	if err != nil {
		s.internalError(w, r, "failed to encode status record", err)
		return
	}
	if err := s.store.Set(r.Context(), StatusKey, data); err != nil {
		s.internalError(w, r, "failed to write status record", err)
		return
	}

	s.logger.Info("status published", "status", st.String(), "timestamp", rec.Timestamp)
	writeText(w, http.StatusOK, "OK")
}

// internalError logs err under a fresh correlation ID and answers 500 without
// detail.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	correlationID := uuid.NewString()
	s.logger.Error(msg,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
		"correlation_id", correlationID,
	)
	w.Header().Set("X-Correlation-Id", correlationID)
	writeText(w, http.StatusInternalServerError, "Server Error")
}

// bearerToken returns the second space-separated field of the Authorization
// header. A missing or malformed header yields ok == false.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	fields := strings.Split(h, " ")
	if len(fields) < 2 || fields[1] == "" {
		return "", false
	}
	return fields[1], true
}

func tokenEqual(token string, secret []byte) bool {
	return subtle.ConstantTimeCompare([]byte(token), secret) == 1
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.New("request body too large")
		}
		return nil, err
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, msg)
}
