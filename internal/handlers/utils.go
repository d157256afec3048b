package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PranamRaj/football-connect/internal/services"
	"github.com/PranamRaj/football-connect/internal/store"
	"github.com/PranamRaj/football-connect/internal/token"
	"go.uber.org/zap"
)

type contextKey string

const contextClaimsKey contextKey = "claims"

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the envelope for mutations that return no body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func claimsFromContext(ctx context.Context) (token.Claims, error) {
	claims, ok := ctx.Value(contextClaimsKey).(token.Claims)
	if !ok || claims.AccountID < 1 {
		return token.Claims{}, errors.New("missing claims")
	}
	return claims, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps workflow errors onto response classes. Anything
// unrecognized is a storage-level failure: logged for operators, opaque to
// the caller.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case services.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
