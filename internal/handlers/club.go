package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/PranamRaj/football-connect/internal/services"
	"github.com/PranamRaj/football-connect/types"
	"go.uber.org/zap"
)

// ClubHandler provides club profile and membership endpoints.
type ClubHandler struct {
	profileService *services.ProfileService
	playerService  *services.PlayerService
	logger         *zap.Logger
}

func NewClubHandler(profileService *services.ProfileService, playerService *services.PlayerService, logger *zap.Logger) *ClubHandler {
	return &ClubHandler{
		profileService: profileService,
		playerService:  playerService,
		logger:         logger,
	}
}

// ClubRouter registers the public club profile route and the protected
// join route.
func ClubRouter(
	r chi.Router,
	profileService *services.ProfileService,
	playerService *services.PlayerService,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) {
	handler := NewClubHandler(profileService, playerService, logger)

	r.Route("/{clubID}", func(r chi.Router) {
		r.Get("/", handler.GetClub)
		r.With(authMiddleware, RequireRole(types.RoleIndividual)).Post("/join", handler.Join)
	})
}

// GetClub returns the public view of a club with its member list.
func (h *ClubHandler) GetClub(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "clubID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid club id")
		return
	}

	profile, err := h.profileService.ClubProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Join requests membership for the calling player. Repeating the request
// succeeds without creating a second membership.
func (h *ClubHandler) Join(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "clubID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid club id")
		return
	}

	if err := h.playerService.RequestMembership(r.Context(), claims, id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "join request sent"})
}
