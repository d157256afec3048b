package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/PranamRaj/football-connect/internal/services"
	"github.com/PranamRaj/football-connect/types"
	"go.uber.org/zap"
)

const defaultMatchLimit = 50

// MatchHandler provides match listing and creation endpoints.
type MatchHandler struct {
	matchService *services.MatchService
	logger       *zap.Logger
}

func NewMatchHandler(matchService *services.MatchService, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{matchService: matchService, logger: logger}
}

// MatchRouter registers the public listing plus the protected create route.
func MatchRouter(
	r chi.Router,
	matchService *services.MatchService,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) {
	handler := NewMatchHandler(matchService, logger)

	r.Get("/", handler.List)
	r.With(authMiddleware).Post("/", handler.Create)
}

// CreateMatchRequest is the payload for announcing a match.
type CreateMatchRequest struct {
	Title     string `json:"title"`
	TeamA     string `json:"team_a"`
	TeamB     string `json:"team_b"`
	MatchDate string `json:"match_date"`
	Location  string `json:"location"`
}

// MatchListResponse wraps the upcoming match listing.
type MatchListResponse struct {
	Success bool          `json:"success"`
	Matches []types.Match `json:"matches"`
}

// List returns recent matches, newest match date first.
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultMatchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	matches, err := h.matchService.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MatchListResponse{Success: true, Matches: matches})
}

// Create records a match announced by the calling account.
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	match := types.Match{
		Title:    req.Title,
		TeamA:    req.TeamA,
		TeamB:    req.TeamB,
		Location: optString(req.Location),
	}
	if req.MatchDate != "" {
		matchDate, err := time.Parse(dateLayout, req.MatchDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid match_date")
			return
		}
		match.MatchDate = &matchDate
	}

	created, err := h.matchService.Create(r.Context(), claims.AccountID, match)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
