package repository

import (
	"context"

	"tush00nka/group_chat/internal/model"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, sentBy string, sentTo uint, sentAt int64, content string) (*model.Message, error)
	FindByChatID(ctx context.Context, chatID uint) ([]model.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, sentBy string, sentTo uint, sentAt int64, content string) (*model.Message, error) {
	message := &model.Message{
		SentBy:  sentBy,
		SentTo:  sentTo,
		SentAt:  sentAt,
		Content: content,
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// FindByChatID returns the chat's messages oldest first. Messages sharing a
// timestamp keep insertion order.
func (r *messageRepository) FindByChatID(ctx context.Context, chatID uint) ([]model.Message, error) {
	messages := []model.Message{}
	err := r.db.WithContext(ctx).
		Where("sent_to = ?", chatID).
		Order("sent_at ASC").
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
