package service

import (
	"context"
	"errors"
	"fmt"

	"kambaz_api/internal/common"
	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/common/security"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users  documentCRUD
	hasher security.PasswordHasher
}

func NewUserService(store repository.DocumentStore, hasher security.PasswordHasher, gen ids.Generator) *UserService {
	return &UserService{
		users:  newDocumentCRUD(store, gen, model.CollectionUsers, "User"),
		hasher: hasher,
	}
}

// UserFilter narrows ListUsers. Empty fields do not filter.
type UserFilter struct {
	Role string
	// Name matches firstName or lastName, case-insensitive substring.
	Name string
}

func (s *UserService) ListUsers(ctx context.Context, f UserFilter) ([]model.Document, error) {
	var filter repository.Filter
	if f.Role != "" {
		filter = filter.And(model.FieldRole, f.Role)
	}
	if f.Name != "" {
		filter.Match = &repository.TextMatch{
			Term:   f.Name,
			Fields: []string{model.FieldFirstName, model.FieldLastName},
		}
	}
	return s.users.list(ctx, filter)
}

func (s *UserService) GetUser(ctx context.Context, id string) (model.Document, error) {
	return s.users.get(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, user model.Document) (model.Document, error) {
	if err := s.hashPassword(user); err != nil {
		return nil, err
	}
	return s.users.create(ctx, user)
}

// UpdateUser hashes a new password. A password equal to the stored value is
// the document echoed back unchanged and is left as is.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch model.Document) (model.Document, error) {
	if patch.String(model.FieldPassword) != "" {
		current, err := s.users.get(ctx, id)
		if err != nil {
			return nil, err
		}
		if patch.String(model.FieldPassword) == current.String(model.FieldPassword) {
			patch = patch.Clone()
			delete(patch, model.FieldPassword)
		}
	}
	if err := s.hashPassword(patch); err != nil {
		return nil, err
	}
	return s.users.update(ctx, id, patch)
}

// DeleteUser leaves the user's enrollments in place.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.users.delete(ctx, id)
}

func (s *UserService) hashPassword(doc model.Document) error {
	password := doc.String(model.FieldPassword)
	if password == "" {
		return nil
	}
	hashed, err := hashWith(s.hasher, password)
	if err != nil {
		return err
	}
	doc[model.FieldPassword] = hashed
	return nil
}

// hashWith reports passwords bcrypt cannot take as a bad request.
func hashWith(hasher security.PasswordHasher, password string) (string, error) {
	hashed, err := hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.BadRequest("Password is too long")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hashed, nil
}
