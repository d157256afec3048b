package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/PranamRaj/football-connect/internal/services"
	"github.com/PranamRaj/football-connect/types"
	"go.uber.org/zap"
)

const (
	defaultFeedLimit = 50

	formFieldMedia = "media"
)

// SocialHandler provides the community feed endpoints.
type SocialHandler struct {
	socialService *services.SocialService
	logger        *zap.Logger
}

func NewSocialHandler(socialService *services.SocialService, logger *zap.Logger) *SocialHandler {
	return &SocialHandler{socialService: socialService, logger: logger}
}

// SocialRouter registers the feed routes. Reads are public, writes require
// authentication.
func SocialRouter(
	r chi.Router,
	socialService *services.SocialService,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) {
	handler := NewSocialHandler(socialService, logger)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", handler.ListFeed)
		r.With(authMiddleware).Post("/", handler.CreatePost)

		r.Route("/{postID}", func(r chi.Router) {
			r.Get("/", handler.GetPost)
			r.With(authMiddleware).Post("/like", handler.Like)
			r.With(authMiddleware).Post("/comment", handler.Comment)
		})
	})
}

// FeedResponse wraps the post listing.
type FeedResponse struct {
	Success bool         `json:"success"`
	Posts   []types.Post `json:"posts"`
}

// CommentRequest is the payload for commenting on a post.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// ListFeed returns recent posts, newest first.
func (h *SocialHandler) ListFeed(w http.ResponseWriter, r *http.Request) {
	limit := defaultFeedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	posts, err := h.socialService.ListFeed(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, FeedResponse{Success: true, Posts: posts})
}

// CreatePost publishes a post from a multipart form with optional media
// attachments.
func (h *SocialHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	media, err := parseAttachments(r.MultipartForm, formFieldMedia, services.MaxPostMedia)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.socialService.CreatePost(r.Context(), claims.AccountID, r.FormValue("content"), media)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// GetPost returns one post with its like count and comments.
func (h *SocialHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	detail, err := h.socialService.PostDetail(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Like records a like from the calling account. Liking twice is a no-op.
func (h *SocialHandler) Like(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.socialService.Like(r.Context(), id, claims.AccountID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Comment adds a comment to a post.
func (h *SocialHandler) Comment(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	comment, err := h.socialService.Comment(r.Context(), id, claims.AccountID, req.Comment)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}
