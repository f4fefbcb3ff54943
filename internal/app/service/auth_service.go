package service

import (
	"context"
	"fmt"
	"log"

	"kambaz_api/internal/app/session"
	"kambaz_api/internal/common"
	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/common/security"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"
)

type AuthService struct {
	store    repository.DocumentStore
	sessions *session.Registry
	hasher   security.PasswordHasher
	ids      ids.Generator
}

func NewAuthService(store repository.DocumentStore, sessions *session.Registry, hasher security.PasswordHasher, gen ids.Generator) *AuthService {
	return &AuthService{store: store, sessions: sessions, hasher: hasher, ids: gen}
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is the stored user plus the session token issued for it.
type AuthResult struct {
	User  model.Document
	Token string
}

func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*AuthResult, error) {
	candidates, err := s.store.Find(ctx, model.CollectionUsers, repository.Eq(model.FieldUsername, req.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	var user model.Document
	for _, candidate := range candidates {
		if s.hasher.Matches(candidate.String(model.FieldPassword), req.Password) {
			user = candidate
			break
		}
	}
	if user == nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(user.ID(), model.SnapshotOf(user))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// SignUp always assigns a fresh _id, defaults the role to USER and signs the
// new user in.
func (s *AuthService) SignUp(ctx context.Context, fields model.Document) (*AuthResult, error) {
	if fields == nil {
		fields = model.Document{}
	}
	username := fields.String(model.FieldUsername)
	if username == "" {
		return nil, common.BadRequest("Username is required")
	}
	password := fields.String(model.FieldPassword)
	if password == "" {
		return nil, common.BadRequest("Password is required")
	}

	existing, err := s.store.Find(ctx, model.CollectionUsers, repository.Eq(model.FieldUsername, username))
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if len(existing) > 0 {
		return nil, common.ErrUsernameTaken
	}

	user := fields.Clone()
	user.SetID(s.ids.NewID())
	if user.String(model.FieldRole) == "" {
		user[model.FieldRole] = model.RoleUser
	}
	hashed, err := hashWith(s.hasher, password)
	if err != nil {
		return nil, err
	}
	user[model.FieldPassword] = hashed

	if err := s.store.Insert(ctx, model.CollectionUsers, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.sessions.Create(user.ID(), model.SnapshotOf(user))
	if err != nil {
		// The user exists but has no session; signing in again recovers.
		log.Printf("ERROR: Created user %s but could not open a session: %v", user.ID(), err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// ResolveSession returns the snapshot behind token.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (model.SessionUser, error) {
	if token == "" {
		return model.SessionUser{}, common.ErrNotAuthenticated
	}
	user, ok := s.sessions.Get(token)
	if !ok {
		return model.SessionUser{}, common.ErrSessionExpired
	}
	return user, nil
}

// SignOut forgets token. It succeeds whether or not the token was known.
func (s *AuthService) SignOut(ctx context.Context, token string) {
	if token != "" {
		s.sessions.Delete(token)
	}
}
