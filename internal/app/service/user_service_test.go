package service

import (
	"context"
	"strings"
	"testing"

	"kambaz_api/internal/app/session"
	"kambaz_api/internal/common"
	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/common/security"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestListUsersFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()
	for _, u := range []model.Document{
		{"_id": "u1", "role": "FACULTY", "firstName": "Alice", "lastName": "Moon"},
		{"_id": "u2", "role": "STUDENT", "firstName": "Bob", "lastName": "Alison"},
		{"_id": "u3", "role": "STUDENT", "firstName": "Carol", "lastName": "Smith"},
	} {
		_, err := s.users.CreateUser(ctx, u)
		require.NoError(t, err)
	}

	all, err := s.users.ListUsers(ctx, UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	students, err := s.users.ListUsers(ctx, UserFilter{Role: "STUDENT"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u3"}, docIDs(students))

	named, err := s.users.ListUsers(ctx, UserFilter{Name: "ali"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, docIDs(named))

	both, err := s.users.ListUsers(ctx, UserFilter{Role: "FACULTY", Name: "ali"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, docIDs(both))
}

func TestUserCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	created, err := s.users.CreateUser(ctx, model.Document{"username": "dan", "password": "pw"})
	require.NoError(t, err)
	assert.Equal(t, "id1", created.ID())

	updated, err := s.users.UpdateUser(ctx, created.ID(), model.Document{"email": "dan@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "dan", updated[model.FieldUsername])
	assert.Equal(t, "dan@example.com", updated[model.FieldEmail])

	require.NoError(t, s.users.DeleteUser(ctx, created.ID()))
	_, err = s.users.GetUser(ctx, created.ID())
	assert.EqualError(t, err, "User not found")
}

func TestBcryptHashingAcrossServices(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryDocumentStore()
	hasher := security.BcryptHasher{Cost: bcrypt.MinCost}
	gen := ids.NewSequence("u")
	auth := NewAuthService(store, session.NewRegistry(), hasher, gen)
	users := NewUserService(store, hasher, gen)

	res, err := auth.SignUp(ctx, model.Document{"username": "frank", "password": "pw"})
	require.NoError(t, err)
	assert.NotEqual(t, "pw", res.User[model.FieldPassword])

	_, err = auth.SignIn(ctx, SignInRequest{Username: "frank", Password: "pw"})
	require.NoError(t, err)

	_, err = users.UpdateUser(ctx, res.User.ID(), model.Document{"password": "new"})
	require.NoError(t, err)
	_, err = auth.SignIn(ctx, SignInRequest{Username: "frank", Password: "new"})
	require.NoError(t, err)
	_, err = auth.SignIn(ctx, SignInRequest{Username: "frank", Password: "pw"})
	assert.Error(t, err)

	// Editing a profile sends the stored document back, hash included.
	stored, err := users.GetUser(ctx, res.User.ID())
	require.NoError(t, err)
	stored["firstName"] = "Frank"
	updated, err := users.UpdateUser(ctx, res.User.ID(), stored)
	require.NoError(t, err)
	assert.Equal(t, stored[model.FieldPassword], updated[model.FieldPassword])
	assert.Equal(t, "Frank", updated["firstName"])

	_, err = auth.SignIn(ctx, SignInRequest{Username: "frank", Password: "new"})
	require.NoError(t, err)
}

func TestBcryptPasswordTooLong(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryDocumentStore()
	hasher := security.BcryptHasher{Cost: bcrypt.MinCost}
	gen := ids.NewSequence("u")
	auth := NewAuthService(store, session.NewRegistry(), hasher, gen)
	users := NewUserService(store, hasher, gen)
	long := strings.Repeat("x", 80)

	_, err := auth.SignUp(ctx, model.Document{"username": "gina", "password": long})
	assert.ErrorIs(t, err, common.ErrBadRequest)
	assert.EqualError(t, err, "Password is too long")

	_, err = users.CreateUser(ctx, model.Document{"username": "hank", "password": long})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestUpdateUserPasswordOnMissingUser(t *testing.T) {
	s := newTestServices()
	_, err := s.users.UpdateUser(context.Background(), "ghost", model.Document{"password": "pw"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
