package service

import (
	"context"
	"fmt"

	"tush00nka/group_chat/internal/model"
	"tush00nka/group_chat/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser returns the existing user unchanged when the username is taken.
func (s *userService) CreateUser(ctx context.Context, username string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	user, err := s.userRepo.Create(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, username string) error {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", model.ErrUserNotFound, username)
	}

	if err := s.userRepo.Delete(ctx, username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
