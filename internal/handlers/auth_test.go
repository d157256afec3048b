package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/PranamRaj/football-connect/internal/services"
	"github.com/PranamRaj/football-connect/internal/store"
	"github.com/PranamRaj/football-connect/internal/token"
	"github.com/PranamRaj/football-connect/types"
	"go.uber.org/zap"
)

// memoryBackend is an in-memory stand-in for the account, player and club
// repositories behind the auth and profile services.
type memoryBackend struct {
	nextID      int
	accounts    map[string]types.Account
	players     map[int]types.Player
	clubs       map[int]types.Club
	skills      map[int][]types.Skill
	memberships map[int][]types.Membership
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		nextID:      1,
		accounts:    map[string]types.Account{},
		players:     map[int]types.Player{},
		clubs:       map[int]types.Club{},
		skills:      map[int][]types.Skill{},
		memberships: map[int][]types.Membership{},
	}
}

func (b *memoryBackend) GetByID(ctx context.Context, id int) (types.Account, error) {
	for _, account := range b.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return types.Account{}, store.ErrNotFound
}

func (b *memoryBackend) GetByEmail(ctx context.Context, email string) (types.Account, error) {
	account, ok := b.accounts[email]
	if !ok {
		return types.Account{}, store.ErrNotFound
	}
	return account, nil
}

func (b *memoryBackend) CreateWithAccount(ctx context.Context, account types.Account, player types.Player) (types.Account, types.Player, error) {
	if _, exists := b.accounts[account.Email]; exists {
		return types.Account{}, types.Player{}, store.ErrDuplicate
	}
	account.ID = b.nextID
	b.nextID++
	b.accounts[account.Email] = account
	player.ID = b.nextID
	b.nextID++
	player.AccountID = account.ID
	b.players[player.ID] = player
	return account, player, nil
}

type memoryClubBackend struct{ *memoryBackend }

func (b *memoryClubBackend) CreateWithAccount(ctx context.Context, account types.Account, club types.Club) (types.Account, types.Club, error) {
	if _, exists := b.accounts[account.Email]; exists {
		return types.Account{}, types.Club{}, store.ErrDuplicate
	}
	account.ID = b.nextID
	b.nextID++
	b.accounts[account.Email] = account
	club.ID = b.nextID
	b.nextID++
	club.AccountID = account.ID
	b.clubs[club.ID] = club
	return account, club, nil
}

func (b *memoryBackend) GetByAccountID(ctx context.Context, accountID int) (types.Player, error) {
	for _, player := range b.players {
		if player.AccountID == accountID {
			return player, nil
		}
	}
	return types.Player{}, store.ErrNotFound
}

func (b *memoryBackend) getPlayer(ctx context.Context, id int) (types.Player, error) {
	player, ok := b.players[id]
	if !ok {
		return types.Player{}, store.ErrNotFound
	}
	return player, nil
}

func (b *memoryBackend) UpsertSkill(ctx context.Context, playerID int, skill types.Skill) error {
	for i, existing := range b.skills[playerID] {
		if existing.SkillName == skill.SkillName {
			b.skills[playerID][i] = skill
			return nil
		}
	}
	b.skills[playerID] = append(b.skills[playerID], skill)
	return nil
}

func (b *memoryBackend) ListSkills(ctx context.Context, playerID int) ([]types.Skill, error) {
	return b.skills[playerID], nil
}

func (b *memoryBackend) RequestMembership(ctx context.Context, playerID, clubID int) error {
	for _, m := range b.memberships[playerID] {
		if m.ClubID == clubID {
			return nil
		}
	}
	b.memberships[playerID] = append(b.memberships[playerID], types.Membership{ClubID: clubID, Status: "pending"})
	return nil
}

func (b *memoryBackend) ListMemberships(ctx context.Context, playerID int) ([]types.Membership, error) {
	return b.memberships[playerID], nil
}

// playerRepoView adapts memoryBackend to the profile-side player interface,
// where GetByID addresses the player rather than the account.
type playerRepoView struct{ *memoryBackend }

func (v playerRepoView) GetByID(ctx context.Context, id int) (types.Player, error) {
	return v.getPlayer(ctx, id)
}

type clubRepoView struct{ *memoryBackend }

func (v clubRepoView) GetByID(ctx context.Context, id int) (types.Club, error) {
	club, ok := v.clubs[id]
	if !ok {
		return types.Club{}, store.ErrNotFound
	}
	return club, nil
}

func (v clubRepoView) ListMembers(ctx context.Context, clubID int) ([]types.ClubMember, error) {
	return nil, nil
}

type nullBlobs struct{}

func (nullBlobs) Store(ctx context.Context, data []byte, originalName string) (string, error) {
	return originalName, nil
}

type zeroMatches struct{}

func (zeroMatches) CountForTeamName(ctx context.Context, name string) (int, error) {
	return 0, nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *token.Issuer) {
	t.Helper()

	backend := newMemoryBackend()
	issuer := token.NewIssuer("handler-test-secret")
	logger := zap.NewNop()

	authService := services.NewAuthService(
		backend,
		backend,
		&memoryClubBackend{memoryBackend: backend},
		nullBlobs{},
		issuer,
		nil,
		logger,
	)
	profileService := services.NewProfileService(playerRepoView{backend}, clubRepoView{backend}, zeroMatches{})
	playerService := services.NewPlayerService(playerRepoView{backend}, clubRepoView{backend}, nil)

	authMiddleware := RequireAuth(issuer)

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, authService, logger)
	})
	router.Route("/me", func(r chi.Router) {
		MeRouter(r, profileService, authMiddleware, logger)
	})
	router.Route("/players", func(r chi.Router) {
		PlayerRouter(r, profileService, playerService, authMiddleware, logger)
	})
	return router, issuer
}

func doJSON(t *testing.T, router http.Handler, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router, issuer := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register/player", "", map[string]string{
		"email":     "a@x.com",
		"password":  "pw123456",
		"full_name": "A B",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status %d: %s", rec.Code, rec.Body.String())
	}

	var reg RegisterResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if !reg.Success || reg.Token == "" || reg.AccountID == 0 {
		t.Fatalf("incomplete register response: %+v", reg)
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "pw123456",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", rec.Code, rec.Body.String())
	}

	var login LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	claims, err := issuer.Verify(login.Token)
	if err != nil {
		t.Fatalf("verify login token: %v", err)
	}
	if claims.AccountID != reg.AccountID {
		t.Fatalf("token account %d, want %d", claims.AccountID, reg.AccountID)
	}
	if claims.Role != types.RoleIndividual {
		t.Fatalf("token role %q, want %q", claims.Role, types.RoleIndividual)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := map[string]string{"email": "a@x.com", "password": "pw123456", "full_name": "A B"}
	if rec := doJSON(t, router, http.MethodPost, "/auth/register/player", "", payload); rec.Code != http.StatusCreated {
		t.Fatalf("first register status %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/auth/register/player", "", payload)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status %d, want 409", rec.Code)
	}
}

func TestRegisterValidationBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register/player", "", map[string]string{
		"email":    "a@x.com",
		"password": "pw123456",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/auth/register/player", "", map[string]string{
		"email": "a@x.com", "password": "pw123456", "full_name": "A B",
	})

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@x.com", "password": "pw123456",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email status %d, want 401", rec.Code)
	}
}

func TestOwnProfileRequiresToken(t *testing.T) {
	router, issuer := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/me/player", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token status %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/me/player", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status %d, want 401", rec.Code)
	}

	orgToken, err := issuer.Issue(token.Claims{AccountID: 5, Role: types.RoleOrganization})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec = doJSON(t, router, http.MethodGet, "/me/player", orgToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("organization token status %d, want 403", rec.Code)
	}
}

func TestOwnProfileRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register/player", "", map[string]string{
		"email": "a@x.com", "password": "pw123456", "full_name": "A B", "city": "Pune",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status %d", rec.Code)
	}
	var reg RegisterResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, router, http.MethodGet, "/me/player", reg.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status %d: %s", rec.Code, rec.Body.String())
	}

	var profile OwnProfileResponse
	if err := json.NewDecoder(rec.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Profile.FullName != "A B" {
		t.Fatalf("full name %q", profile.Profile.FullName)
	}
	if profile.Profile.ID != reg.ProfileID {
		t.Fatalf("profile id %d, want %d", profile.Profile.ID, reg.ProfileID)
	}
}

func TestSkillUpsertEndpoint(t *testing.T) {
	router, issuer := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register/player", "", map[string]string{
		"email": "a@x.com", "password": "pw123456", "full_name": "A B",
	})
	var reg RegisterResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	path := "/players/" + strconv.Itoa(reg.ProfileID) + "/skills"

	rec = doJSON(t, router, http.MethodPost, path, reg.Token, map[string]any{
		"skill_name": "passing", "rating": 8,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert status %d: %s", rec.Code, rec.Body.String())
	}

	// Missing rating is rejected before it reaches the service.
	rec = doJSON(t, router, http.MethodPost, path, reg.Token, map[string]any{
		"skill_name": "passing",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing rating status %d, want 400", rec.Code)
	}

	// Another individual cannot write someone else's skills.
	otherToken, err := issuer.Issue(token.Claims{AccountID: 999, Role: types.RoleIndividual})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec = doJSON(t, router, http.MethodPost, path, otherToken, map[string]any{
		"skill_name": "passing", "rating": 1,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign write status %d, want 403", rec.Code)
	}
}
