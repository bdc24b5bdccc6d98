package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tush00nka/group_chat/internal/model"
)

// MockUserRepository is a mock for repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

var errStoreDown = errors.New("connection refused")

func TestCreateUserStoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByUsername", ctx, "alice").Return(nil, nil)
	repo.On("Create", ctx, "alice").Return(nil, errStoreDown)

	_, err := NewUserService(repo).CreateUser(ctx, "alice")

	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestCreateUserReturnsExistingWithoutInsert(t *testing.T) {
	ctx := context.Background()
	existing := &model.User{Username: "alice"}
	repo := new(MockUserRepository)
	repo.On("FindByUsername", ctx, "alice").Return(existing, nil)

	user, err := NewUserService(repo).CreateUser(ctx, "alice")

	assert.NoError(t, err)
	assert.Same(t, existing, user)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteUserLookupFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByUsername", ctx, "alice").Return(nil, errStoreDown)

	err := NewUserService(repo).DeleteUser(ctx, "alice")

	assert.ErrorIs(t, err, errStoreDown)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateChatUserCheckFailure(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("Exists", ctx, "alice").Return(false, errStoreDown)

	_, err := NewChatService(nil, users, nil).CreateChat(ctx, "alice", "Room1")

	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}
