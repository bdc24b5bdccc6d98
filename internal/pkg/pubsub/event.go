package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Channel is the single channel (Redis) or topic (Kafka) notifications go to.
const Channel = "group-chat"

const (
	EventChatCreated = "chat_created"
	EventMessageSent = "message_sent"
)

// Event is a notification payload. Type is the discriminator consumers switch on.
type Event interface {
	EventType() string
}

type ChatCreatedEvent struct {
	Type      string `json:"type"`
	ChatID    uint   `json:"chatId"`
	ChatName  string `json:"chatName"`
	CreatedBy string `json:"createdBy"`
}

func NewChatCreatedEvent(chatID uint, chatName, createdBy string) *ChatCreatedEvent {
	return &ChatCreatedEvent{
		Type:      EventChatCreated,
		ChatID:    chatID,
		ChatName:  chatName,
		CreatedBy: createdBy,
	}
}

func (e *ChatCreatedEvent) EventType() string { return e.Type }

type MessageSentEvent struct {
	Type     string `json:"type"`
	ChatID   uint   `json:"chatId"`
	Username string `json:"username"`
	Content  string `json:"content"`
	SentAt   int64  `json:"sentAt"`
}

func NewMessageSentEvent(chatID uint, username, content string, sentAt int64) *MessageSentEvent {
	return &MessageSentEvent{
		Type:     EventMessageSent,
		ChatID:   chatID,
		Username: username,
		Content:  content,
		SentAt:   sentAt,
	}
}

func (e *MessageSentEvent) EventType() string { return e.Type }

// Publisher sends events without waiting for any consumer.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

func encode(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", event.EventType(), err)
	}
	return data, nil
}
