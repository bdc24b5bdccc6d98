package repository

import (
	"context"
	"errors"

	"tush00nka/group_chat/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository interface {
	Create(ctx context.Context, name, createdBy string) (*model.Chat, error)
	FindByID(ctx context.Context, chatID uint) (*model.Chat, error)
	Exists(ctx context.Context, chatID uint) (bool, error)
	FindAll(ctx context.Context) ([]model.Chat, error)
	Delete(ctx context.Context, chatID uint) error

	AddUser(ctx context.Context, chatID uint, username string) error
	HasUser(ctx context.Context, chatID uint, username string) (bool, error)
	FindJoined(ctx context.Context, username string) ([]model.Chat, error)
	FindNotJoined(ctx context.Context, username string) ([]model.Chat, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, name, createdBy string) (*model.Chat, error) {
	chat := &model.Chat{Name: name, CreatedBy: createdBy}
	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		return nil, err
	}
	return chat, nil
}

// FindByID returns nil and no error when the chat does not exist.
func (r *chatRepository) FindByID(ctx context.Context, chatID uint) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.WithContext(ctx).First(&chat, chatID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) Exists(ctx context.Context, chatID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Chat{}).Where("id = ?", chatID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *chatRepository) FindAll(ctx context.Context) ([]model.Chat, error) {
	chats := []model.Chat{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&chats).Error; err != nil {
		return nil, err
	}
	return chats, nil
}

// Delete removes the chat together with its memberships and messages.
func (r *chatRepository) Delete(ctx context.Context, chatID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", chatID).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sent_to = ?", chatID).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Chat{}, chatID).Error
	})
}

// AddUser inserts a membership row. A concurrent duplicate insert is absorbed
// by the (group_id, user_id) primary key.
func (r *chatRepository) AddUser(ctx context.Context, chatID uint, username string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Membership{GroupID: chatID, UserID: username}).Error
}

func (r *chatRepository) HasUser(ctx context.Context, chatID uint, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("group_id = ? AND user_id = ?", chatID, username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *chatRepository) FindJoined(ctx context.Context, username string) ([]model.Chat, error) {
	chats := []model.Chat{}
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.joinedChatIDs(username)).
		Order("id ASC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *chatRepository) FindNotJoined(ctx context.Context, username string) ([]model.Chat, error) {
	chats := []model.Chat{}
	err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", r.joinedChatIDs(username)).
		Order("id ASC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// joinedChatIDs is a subquery selecting the ids of the chats the user is in.
func (r *chatRepository) joinedChatIDs(username string) *gorm.DB {
	return r.db.Model(&model.Membership{}).
		Select("group_id").
		Where("user_id = ?", username)
}
