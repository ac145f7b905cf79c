package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kirill555dg/NotesApp/internal/server/config"
	"github.com/Kirill555dg/NotesApp/internal/server/models"
	"github.com/Kirill555dg/NotesApp/internal/server/repository"
	"github.com/Kirill555dg/NotesApp/internal/server/token"
	"github.com/Kirill555dg/NotesApp/internal/shared/passhash"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so a caller cannot tell which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

type Repository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, string, error)

	CreateNote(ctx context.Context, userID int64, title, content string, tags []string) (models.Note, error)
	GetNote(ctx context.Context, noteID, userID int64) (models.Note, error)
	ListNotes(ctx context.Context, userID int64, offset, limit int) ([]models.Note, error)
	UpdateNote(ctx context.Context, noteID, userID int64, title, content string, tags []string) (models.Note, error)
	DeleteNote(ctx context.Context, noteID, userID int64) (models.Note, error)
}

type Services struct {
	Auth  *AuthService
	Notes *NotesService
}

func NewServices(repo Repository, cfg config.Config) *Services {
	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	return &Services{
		Auth:  &AuthService{repo: repo, tokens: tokens},
		Notes: &NotesService{repo: repo},
	}
}

// AuthService implements registration, credential verification and bearer
// token issuance.
type AuthService struct {
	repo   Repository
	tokens *token.Service
}

func (a *AuthService) Register(ctx context.Context, username, password string) (models.User, error) {
	phc, err := passhash.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	return a.repo.CreateUser(ctx, username, phc)
}

func (a *AuthService) Login(ctx context.Context, username, password string) (models.TokenResponse, error) {
	user, hash, err := a.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.TokenResponse{}, ErrInvalidCredentials
		}
		return models.TokenResponse{}, err
	}
	ok, err := passhash.VerifyPassword(hash, password)
	if err != nil || !ok {
		return models.TokenResponse{}, ErrInvalidCredentials
	}
	signed, err := a.tokens.Issue(username)
	if err != nil {
		return models.TokenResponse{}, err
	}
	return models.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		UserID:      user.ID,
		Username:    user.Username,
	}, nil
}

// VerifyToken returns the token's subject, or token.ErrInvalidToken.
func (a *AuthService) VerifyToken(tokenString string) (string, error) {
	return a.tokens.Verify(tokenString)
}

// ResolveUser maps a token subject back to its account.
func (a *AuthService) ResolveUser(ctx context.Context, username string) (models.User, error) {
	user, _, err := a.repo.GetUserByUsername(ctx, username)
	return user, err
}

// NotesService performs owner-scoped CRUD on notes.
type NotesService struct {
	repo Repository
}

func (s *NotesService) Create(ctx context.Context, userID int64, title, content string, tags []string) (models.Note, error) {
	return s.repo.CreateNote(ctx, userID, title, content, tags)
}

func (s *NotesService) Get(ctx context.Context, noteID, userID int64) (models.Note, error) {
	return s.repo.GetNote(ctx, noteID, userID)
}

// List clamps skip and limit: negative values fall back to the defaults and
// limit is capped to keep responses bounded.
func (s *NotesService) List(ctx context.Context, userID int64, skip, limit int) ([]models.Note, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListNotes(ctx, userID, skip, limit)
}

func (s *NotesService) Update(ctx context.Context, noteID, userID int64, title, content string, tags []string) (models.Note, error) {
	return s.repo.UpdateNote(ctx, noteID, userID, title, content, tags)
}

func (s *NotesService) Delete(ctx context.Context, noteID, userID int64) (models.Note, error) {
	return s.repo.DeleteNote(ctx, noteID, userID)
}
