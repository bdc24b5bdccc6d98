package repository

import (
	"context"
	"errors"

	"tush00nka/group_chat/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, username string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Delete(ctx context.Context, username string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user. Inserting a username that already exists is a no-op.
func (r *userRepository) Create(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{Username: username}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername returns nil and no error when the user does not exist.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the user and its chat memberships. Messages and chats the
// user authored are kept.
func (r *userRepository) Delete(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", username).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Where("username = ?", username).Delete(&model.User{}).Error
	})
}
