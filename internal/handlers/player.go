package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/PranamRaj/football-connect/internal/services"
	"github.com/PranamRaj/football-connect/types"
	"go.uber.org/zap"
)

// PlayerHandler provides player profile and skill endpoints.
type PlayerHandler struct {
	profileService *services.ProfileService
	playerService  *services.PlayerService
	logger         *zap.Logger
}

func NewPlayerHandler(profileService *services.ProfileService, playerService *services.PlayerService, logger *zap.Logger) *PlayerHandler {
	return &PlayerHandler{
		profileService: profileService,
		playerService:  playerService,
		logger:         logger,
	}
}

// PlayerRouter registers the public player routes plus the protected skill
// upsert.
func PlayerRouter(
	r chi.Router,
	profileService *services.ProfileService,
	playerService *services.PlayerService,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) {
	handler := NewPlayerHandler(profileService, playerService, logger)

	r.Route("/{playerID}", func(r chi.Router) {
		r.Get("/", handler.GetPlayer)
		r.With(authMiddleware).Post("/skills", handler.UpsertSkill)
	})
}

// MeRouter registers the authenticated self-profile routes.
func MeRouter(
	r chi.Router,
	profileService *services.ProfileService,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) {
	handler := NewPlayerHandler(profileService, nil, logger)

	r.With(authMiddleware, RequireRole(types.RoleIndividual)).Get("/player", handler.OwnProfile)
}

// OwnProfileResponse wraps the composite profile of the calling player.
type OwnProfileResponse struct {
	Success bool                `json:"success"`
	Profile types.PlayerProfile `json:"profile"`
}

// SkillRequest is the payload for a skill upsert.
type SkillRequest struct {
	SkillName string   `json:"skill_name"`
	Rating    *float64 `json:"rating"`
}

// OwnProfile returns the composite profile of the authenticated player.
func (h *PlayerHandler) OwnProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.profileService.OwnPlayerProfile(r.Context(), claims.AccountID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, OwnProfileResponse{Success: true, Profile: profile})
}

// GetPlayer returns the public view of a player by profile id.
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "playerID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	profile, err := h.profileService.PlayerProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// UpsertSkill sets or replaces one skill rating on a player. Owner or
// admin only.
func (h *PlayerHandler) UpsertSkill(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "playerID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var req SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Rating == nil {
		writeError(w, http.StatusBadRequest, "skill_name and rating required")
		return
	}

	skill := types.Skill{SkillName: req.SkillName, Rating: *req.Rating}
	if err := h.playerService.UpsertSkill(r.Context(), claims, id, skill); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func parseIDParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
