package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/PranamRaj/football-connect/internal/services"
	"github.com/PranamRaj/football-connect/internal/token"
	"github.com/PranamRaj/football-connect/types"
	"go.uber.org/zap"
)

const (
	maxMultipartMemory = 32 << 20
	maxAttachmentBytes = 16 << 20
	dateLayout         = "2006-01-02"

	formFieldCertificate  = "certificate"
	formFieldGroundPhotos = "groundPhotos"
)

// AuthHandler provides the registration and login endpoints.
type AuthHandler struct {
	authService *services.AuthService
	logger      *zap.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, authService *services.AuthService, logger *zap.Logger) {
	handler := NewAuthHandler(authService, logger)

	r.Post("/register/player", handler.RegisterPlayer)
	r.Post("/register/club", handler.RegisterClub)
	r.Post("/login", handler.Login)
}

// RequireAuth enforces bearer-token authentication and injects the token's
// claims into the request context.
func RequireAuth(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := issuer.Verify(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates an already-authenticated route on the caller's role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if claims.Role != role {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterPlayerRequest is the JSON payload for individual registration.
// Only email, password and full_name are required.
type RegisterPlayerRequest struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	FullName        string   `json:"full_name"`
	Phone           string   `json:"phone"`
	BirthDate       string   `json:"birth_date"`
	Gender          string   `json:"gender"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Locality        string   `json:"locality"`
	Position        string   `json:"position"`
	ExperienceLevel string   `json:"experience_level"`
	PreferredFoot   string   `json:"preferred_foot"`
	Height          *float64 `json:"height"`
	Weight          *float64 `json:"weight"`
	Bio             string   `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned by both registration variants.
type RegisterResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	AccountID int    `json:"accountId"`
	ProfileID int    `json:"profileId"`
	Role      string `json:"role"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	AccountID int    `json:"accountId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// RegisterPlayer creates an individual account with its player profile.
func (h *AuthHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	profile := types.Player{
		FullName:        req.FullName,
		Phone:           optString(req.Phone),
		Gender:          optString(req.Gender),
		City:            optString(req.City),
		State:           optString(req.State),
		Locality:        optString(req.Locality),
		Position:        optString(req.Position),
		ExperienceLevel: optString(req.ExperienceLevel),
		PreferredFoot:   optString(req.PreferredFoot),
		Height:          req.Height,
		Weight:          req.Weight,
		Bio:             optString(req.Bio),
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid birth_date")
			return
		}
		profile.BirthDate = &birthDate
	}

	result, err := h.authService.RegisterPlayer(r.Context(), req.Email, req.Password, profile)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Success:   true,
		Token:     result.Token,
		AccountID: result.Account.ID,
		ProfileID: result.ProfileID,
		Role:      result.Account.Role,
	})
}

// RegisterClub creates an organization account with its club profile from a
// multipart form carrying optional attachments.
func (h *AuthHandler) RegisterClub(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	profile := types.Club{
		Name:          strings.TrimSpace(r.FormValue("name")),
		ContactPerson: optString(r.FormValue("contact_person")),
		ContactPhone:  optString(r.FormValue("contact_phone")),
		Website:       optString(r.FormValue("website")),
		City:          optString(r.FormValue("city")),
		State:         optString(r.FormValue("state")),
		PostalCode:    optString(r.FormValue("postal_code")),
		Locality:      optString(r.FormValue("locality")),
		Description:   optString(r.FormValue("description")),
	}
	if raw := strings.TrimSpace(r.FormValue("established_date")); raw != "" {
		establishedDate, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid established_date")
			return
		}
		profile.EstablishedDate = &establishedDate
	}
	if raw := strings.TrimSpace(r.FormValue("member_count")); raw != "" {
		memberCount, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid member_count")
			return
		}
		profile.MemberCount = &memberCount
	}

	certificate, err := parseSingleAttachment(r.MultipartForm, formFieldCertificate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	photos, err := parseAttachments(r.MultipartForm, formFieldGroundPhotos, services.MaxGroundPhotos)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authService.RegisterClub(r.Context(), r.FormValue("email"), r.FormValue("password"), profile, certificate, photos)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Success:   true,
		Token:     result.Token,
		AccountID: result.Account.ID,
		ProfileID: result.ProfileID,
		Role:      result.Account.Role,
	})
}

// Login verifies credentials and returns a token with basic account info.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		Token:     result.Token,
		AccountID: result.Account.ID,
		Email:     result.Account.Email,
		Role:      result.Account.Role,
	})
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", errors.New("invalid authorization")
	}
	return tokenString, nil
}

func optString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func parseSingleAttachment(form *multipart.Form, field string) (*services.Attachment, error) {
	attachments, err := parseAttachments(form, field, 1)
	if err != nil {
		return nil, err
	}
	if len(attachments) == 0 {
		return nil, nil
	}
	return &attachments[0], nil
}

func parseAttachments(form *multipart.Form, field string, maxCount int) ([]services.Attachment, error) {
	if form == nil {
		return nil, nil
	}

	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxCount {
		return nil, fmt.Errorf("at most %d %s file(s) allowed", maxCount, field)
	}

	attachments := make([]services.Attachment, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s upload", field)
		}
		data, err := readFileLimited(file, maxAttachmentBytes)
		_ = file.Close()
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, services.Attachment{
			Filename: fileHeader.Filename,
			Data:     data,
		})
	}
	return attachments, nil
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
