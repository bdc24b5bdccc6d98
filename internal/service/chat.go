package service

import (
	"context"
	"fmt"

	"tush00nka/group_chat/internal/model"
	"tush00nka/group_chat/internal/repository"
)

type chatService struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

// CreateChat creates a chat owned by username. Joining the creator is left to
// the caller.
func (s *chatService) CreateChat(ctx context.Context, username, chatName string) (*model.Chat, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.Create(ctx, chatName, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return chat, nil
}

// JoinChat is idempotent: joining a chat twice leaves a single membership.
func (s *chatService) JoinChat(ctx context.Context, username string, chatID uint) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		return fmt.Errorf("failed to find chat: %w", err)
	}
	if user == nil || chat == nil {
		return model.ErrUserOrChatNotFound
	}

	joined, err := s.chatRepo.HasUser(ctx, chat.ID, user.Username)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if joined {
		return nil
	}

	if err := s.chatRepo.AddUser(ctx, chat.ID, user.Username); err != nil {
		return fmt.Errorf("failed to add user %s to chat %d: %w", user.Username, chat.ID, err)
	}
	return nil
}

// SendMessage does not require the sender to be a member of the chat.
func (s *chatService) SendMessage(ctx context.Context, username string, chatID uint, content string, sentAt int64) (*model.Message, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	if err := s.requireChat(ctx, chatID); err != nil {
		return nil, err
	}

	message, err := s.messageRepo.Create(ctx, username, chatID, sentAt, content)
	if err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return message, nil
}

func (s *chatService) ListMessages(ctx context.Context, chatID uint) ([]model.Message, error) {
	if err := s.requireChat(ctx, chatID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages for chat %d: %w", chatID, err)
	}
	return messages, nil
}

func (s *chatService) ListChats(ctx context.Context) ([]model.Chat, error) {
	chats, err := s.chatRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

func (s *chatService) ListChatsJoined(ctx context.Context, username string) ([]model.Chat, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}

	chats, err := s.chatRepo.FindJoined(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list joined chats: %w", err)
	}
	return chats, nil
}

func (s *chatService) ListChatsNotJoined(ctx context.Context, username string) ([]model.Chat, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}

	chats, err := s.chatRepo.FindNotJoined(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list not joined chats: %w", err)
	}
	return chats, nil
}

// DeleteChat removes the chat with its memberships and messages.
func (s *chatService) DeleteChat(ctx context.Context, chatID uint) error {
	if err := s.requireChat(ctx, chatID); err != nil {
		return err
	}

	if err := s.chatRepo.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("failed to delete chat %d: %w", chatID, err)
	}
	return nil
}

func (s *chatService) requireUser(ctx context.Context, username string) error {
	exists, err := s.userRepo.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", model.ErrUserNotFound, username)
	}
	return nil
}

func (s *chatService) requireChat(ctx context.Context, chatID uint) error {
	exists, err := s.chatRepo.Exists(ctx, chatID)
	if err != nil {
		return fmt.Errorf("failed to check chat: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %d", model.ErrChatNotFound, chatID)
	}
	return nil
}
