package service

import (
	"context"

	"tush00nka/group_chat/internal/model"
)

type UserService interface {
	CreateUser(ctx context.Context, username string) (*model.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type ChatService interface {
	CreateChat(ctx context.Context, username, chatName string) (*model.Chat, error)
	JoinChat(ctx context.Context, username string, chatID uint) error
	SendMessage(ctx context.Context, username string, chatID uint, content string, sentAt int64) (*model.Message, error)
	ListMessages(ctx context.Context, chatID uint) ([]model.Message, error)
	ListChats(ctx context.Context) ([]model.Chat, error)
	ListChatsJoined(ctx context.Context, username string) ([]model.Chat, error)
	ListChatsNotJoined(ctx context.Context, username string) ([]model.Chat, error)
	DeleteChat(ctx context.Context, chatID uint) error
}
