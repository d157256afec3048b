package services

import (
	"context"
	"errors"
	"strings"

	"github.com/PranamRaj/football-connect/internal/events"
	"github.com/PranamRaj/football-connect/internal/store"
	"github.com/PranamRaj/football-connect/internal/token"
	"github.com/PranamRaj/football-connect/types"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a valid bcrypt hash compared against when the email is
// unknown, so login does the same work on both failure paths.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// MaxGroundPhotos caps the number of ground photos accepted on club
// registration.
const MaxGroundPhotos = 10

// AccountRepository defines the credential store reads used by workflows.
type AccountRepository interface {
	GetByID(ctx context.Context, id int) (types.Account, error)
	GetByEmail(ctx context.Context, email string) (types.Account, error)
}

// PlayerRegistrar is the transactional account+profile insert for players.
type PlayerRegistrar interface {
	CreateWithAccount(ctx context.Context, account types.Account, player types.Player) (types.Account, types.Player, error)
}

// ClubRegistrar is the transactional account+profile insert for clubs.
type ClubRegistrar interface {
	CreateWithAccount(ctx context.Context, account types.Account, club types.Club) (types.Account, types.Club, error)
}

// BlobStore persists uploaded bytes and returns an opaque key.
type BlobStore interface {
	Store(ctx context.Context, data []byte, originalName string) (string, error)
}

// Attachment is an uploaded file carried through a registration or post.
type Attachment struct {
	Filename string
	Data     []byte
}

// RegistrationResult is the outcome of either registration variant.
type RegistrationResult struct {
	Account   types.Account
	ProfileID int
	Token     string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Account types.Account
	Token   string
}

// AuthService implements the registration and authentication workflows.
type AuthService struct {
	accounts AccountRepository
	players  PlayerRegistrar
	clubs    ClubRegistrar
	blobs    BlobStore
	issuer   *token.Issuer
	events   *events.Publisher
	logger   *zap.Logger
}

func NewAuthService(
	accounts AccountRepository,
	players PlayerRegistrar,
	clubs ClubRegistrar,
	blobs BlobStore,
	issuer *token.Issuer,
	publisher *events.Publisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		players:  players,
		clubs:    clubs,
		blobs:    blobs,
		issuer:   issuer,
		events:   publisher,
		logger:   logger,
	}
}

// RegisterPlayer creates an individual account and its player profile as
// one transaction and returns a fresh token.
func (s *AuthService) RegisterPlayer(ctx context.Context, email, password string, profile types.Player) (RegistrationResult, error) {
	email = strings.TrimSpace(email)
	profile.FullName = strings.TrimSpace(profile.FullName)
	if email == "" {
		return RegistrationResult{}, validationErr("email is required")
	}
	if password == "" {
		return RegistrationResult{}, validationErr("password is required")
	}
	if profile.FullName == "" {
		return RegistrationResult{}, validationErr("full_name is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return RegistrationResult{}, err
	}

	account, player, err := s.players.CreateWithAccount(ctx, types.Account{
		Email:        email,
		Role:         types.RoleIndividual,
		PasswordHash: string(hashed),
	}, profile)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return RegistrationResult{}, ErrDuplicateEmail
		}
		return RegistrationResult{}, err
	}

	signed, err := s.issuer.Issue(token.Claims{AccountID: account.ID, Role: account.Role})
	if err != nil {
		return RegistrationResult{}, err
	}

	s.events.RegistrationCompleted(ctx, account.ID, account.Role)
	return RegistrationResult{Account: account, ProfileID: player.ID, Token: signed}, nil
}

// RegisterClub creates an organization account and its club profile as one
// transaction. Attachments go to the blob store first; if the transaction
// then fails, the stored blobs are left behind as accepted garbage.
func (s *AuthService) RegisterClub(ctx context.Context, email, password string, profile types.Club, certificate *Attachment, photos []Attachment) (RegistrationResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return RegistrationResult{}, validationErr("email is required")
	}
	if password == "" {
		return RegistrationResult{}, validationErr("password is required")
	}
	if len(photos) > MaxGroundPhotos {
		return RegistrationResult{}, validationErr("too many ground photos")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return RegistrationResult{}, err
	}

	if certificate != nil {
		key, err := s.blobs.Store(ctx, certificate.Data, certificate.Filename)
		if err != nil {
			return RegistrationResult{}, err
		}
		profile.Certificate = &key
	}
	profile.Photos = make([]string, 0, len(photos))
	for _, photo := range photos {
		key, err := s.blobs.Store(ctx, photo.Data, photo.Filename)
		if err != nil {
			return RegistrationResult{}, err
		}
		profile.Photos = append(profile.Photos, key)
	}

	account, club, err := s.clubs.CreateWithAccount(ctx, types.Account{
		Email:        email,
		Role:         types.RoleOrganization,
		PasswordHash: string(hashed),
	}, profile)
	if err != nil {
		if len(profile.Photos) > 0 || profile.Certificate != nil {
			s.logger.Warn("club registration rolled back after storing attachments; blobs orphaned",
				zap.Int("photos", len(profile.Photos)),
				zap.Bool("certificate", profile.Certificate != nil),
			)
		}
		if errors.Is(err, store.ErrDuplicate) {
			return RegistrationResult{}, ErrDuplicateEmail
		}
		return RegistrationResult{}, err
	}

	signed, err := s.issuer.Issue(token.Claims{AccountID: account.ID, Role: account.Role})
	if err != nil {
		return RegistrationResult{}, err
	}

	s.events.RegistrationCompleted(ctx, account.ID, account.Role)
	return RegistrationResult{Account: account, ProfileID: club.ID, Token: signed}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(token.Claims{AccountID: account.ID, Role: account.Role})
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Account: account, Token: signed}, nil
}
