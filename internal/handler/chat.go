package handler

import (
	"net/http"
	"time"

	"tush00nka/group_chat/internal/model"
	"tush00nka/group_chat/internal/pkg/httputils"
	"tush00nka/group_chat/internal/pkg/logging"
	"tush00nka/group_chat/internal/pkg/pubsub"
	"tush00nka/group_chat/internal/service"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatService service.ChatService
	publisher   pubsub.Publisher
}

func NewChatHandler(chatService service.ChatService, publisher pubsub.Publisher) *ChatHandler {
	return &ChatHandler{chatService: chatService, publisher: publisher}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/chats", errorHandler(h.createChat)).Methods(http.MethodPost)
	router.HandleFunc("/chats", errorHandler(h.listChats)).Methods(http.MethodGet)
	router.HandleFunc("/chats/joined", errorHandler(h.listChatsJoined)).Methods(http.MethodGet)
	router.HandleFunc("/chats/not-joined", errorHandler(h.listChatsNotJoined)).Methods(http.MethodGet)
	router.HandleFunc("/chats/{chatId}/join", errorHandler(h.joinChat)).Methods(http.MethodPost)
	router.HandleFunc("/chats/{chatId}/messages", errorHandler(h.sendMessage)).Methods(http.MethodPost)
	router.HandleFunc("/chats/{chatId}/messages", errorHandler(h.listMessages)).Methods(http.MethodGet)
}

type createChatRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// @Summary Create chat
// @Description Create a chat owned by username. The creator joins it right away.
// @ID create-chat
// @Tags chats
// @Accept json
// @Produce json
// @Param chatData body createChatRequest true "Chat data"
// @Success 201
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 500 {object} httputils.ErrorResponse
// @Router /chats [post]
func (h *ChatHandler) createChat(w http.ResponseWriter, r *http.Request) error {
	var request createChatRequest
	if err := httputils.DecodeJSON(r, &request); err != nil {
		return err
	}

	logger := logging.Ctx(r.Context())
	logger.Info().
		Str(logging.FieldUsername, request.Username).
		Str("chat_name", request.Name).
		Msg("creating chat")

	if request.Username == "" || request.Name == "" {
		return model.NewValidationError("Missing username or chat name")
	}

	chat, err := h.chatService.CreateChat(r.Context(), request.Username, request.Name)
	if err != nil {
		return err
	}

	if err := h.chatService.JoinChat(r.Context(), request.Username, chat.ID); err != nil {
		return err
	}

	event := pubsub.NewChatCreatedEvent(chat.ID, chat.Name, request.Username)
	if err := h.publisher.Publish(r.Context(), event); err != nil {
		return err
	}

	httputils.ResponseStatus(w, http.StatusCreated)
	return nil
}

type joinChatRequest struct {
	Username string `json:"username"`
}

// @Summary Join chat
// @Description Add username to the chat members. Joining twice is a no-op.
// @ID join-chat
// @Tags chats
// @Accept json
// @Produce json
// @Param chatId path int true "Chat ID"
// @Param joinData body joinChatRequest true "Join data"
// @Success 204
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 500 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/join [post]
func (h *ChatHandler) joinChat(w http.ResponseWriter, r *http.Request) error {
	chatID, err := chatIDFromPath(r)
	if err != nil {
		return err
	}

	var request joinChatRequest
	if err := httputils.DecodeJSON(r, &request); err != nil {
		return err
	}

	logger := logging.Ctx(r.Context())
	logger.Info().
		Str(logging.FieldUsername, request.Username).
		Uint(logging.FieldChatID, chatID).
		Msg("joining chat")

	if request.Username == "" {
		return model.NewValidationError("Missing username")
	}

	if err := h.chatService.JoinChat(r.Context(), request.Username, chatID); err != nil {
		return err
	}

	// subscribers refresh their chat lists on chat_created, so a join reuses it
	event := pubsub.NewChatCreatedEvent(chatID, "", request.Username)
	if err := h.publisher.Publish(r.Context(), event); err != nil {
		return err
	}

	httputils.ResponseStatus(w, http.StatusNoContent)
	return nil
}

type sendMessageRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
	SentAt   *int64 `json:"sent_at,omitempty"`
}

// @Summary Send message
// @Description Post a message to a chat. sent_at defaults to the current unix time.
// @ID send-message
// @Tags chats
// @Accept json
// @Produce json
// @Param chatId path int true "Chat ID"
// @Param messageData body sendMessageRequest true "Message data"
// @Success 201
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 500 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/messages [post]
func (h *ChatHandler) sendMessage(w http.ResponseWriter, r *http.Request) error {
	chatID, err := chatIDFromPath(r)
	if err != nil {
		return err
	}

	var request sendMessageRequest
	if err := httputils.DecodeJSON(r, &request); err != nil {
		return err
	}

	sentAt := time.Now().Unix()
	if request.SentAt != nil {
		sentAt = *request.SentAt
	}

	logger := logging.Ctx(r.Context())
	logger.Info().
		Str(logging.FieldUsername, request.Username).
		Uint(logging.FieldChatID, chatID).
		Str("content", request.Content).
		Int64("sent_at", sentAt).
		Msg("sending message")

	if request.Username == "" || request.Content == "" {
		return model.NewValidationError("Missing username or content")
	}

	message, err := h.chatService.SendMessage(r.Context(), request.Username, chatID, request.Content, sentAt)
	if err != nil {
		return err
	}

	event := pubsub.NewMessageSentEvent(message.SentTo, message.SentBy, message.Content, message.SentAt)
	if err := h.publisher.Publish(r.Context(), event); err != nil {
		return err
	}

	httputils.ResponseStatus(w, http.StatusCreated)
	return nil
}

// @Summary Get messages
// @Description List the chat's messages, oldest first
// @ID list-messages
// @Tags chats
// @Produce json
// @Param chatId path int true "Chat ID"
// @Success 200 {array} model.Message
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 500 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/messages [get]
func (h *ChatHandler) listMessages(w http.ResponseWriter, r *http.Request) error {
	chatID, err := chatIDFromPath(r)
	if err != nil {
		return err
	}

	logger := logging.Ctx(r.Context())
	logger.Info().Uint(logging.FieldChatID, chatID).Msg("listing messages")

	messages, err := h.chatService.ListMessages(r.Context(), chatID)
	if err != nil {
		return err
	}

	httputils.ResponseJSON(w, http.StatusOK, messages)
	return nil
}

// @Summary List chats
// @Description List every chat
// @ID list-chats
// @Tags chats
// @Produce json
// @Success 200 {array} model.Chat
// @Failure 500 {object} httputils.ErrorResponse
// @Router /chats [get]
func (h *ChatHandler) listChats(w http.ResponseWriter, r *http.Request) error {
	chats, err := h.chatService.ListChats(r.Context())
	if err != nil {
		return err
	}

	httputils.ResponseJSON(w, http.StatusOK, chats)
	return nil
}

// @Summary List joined chats
// @Description List the chats username is a member of
// @ID list-chats-joined
// @Tags chats
// @Produce json
// @Param username query string true "Username"
// @Success 200 {array} model.Chat
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 500 {object} httputils.ErrorResponse
// @Router /chats/joined [get]
func (h *ChatHandler) listChatsJoined(w http.ResponseWriter, r *http.Request) error {
	username := r.URL.Query().Get("username")

	logger := logging.Ctx(r.Context())
	logger.Info().Str(logging.FieldUsername, username).Msg("listing chats joined")

	if username == "" {
		return model.NewValidationError("Missing username")
	}

	chats, err := h.chatService.ListChatsJoined(r.Context(), username)
	if err != nil {
		return err
	}

	httputils.ResponseJSON(w, http.StatusOK, chats)
	return nil
}

// @Summary List chats not joined
// @Description List the chats username is not a member of
// @ID list-chats-not-joined
// @Tags chats
// @Produce json
// @Param username query string true "Username"
// @Success 200 {array} model.Chat
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 500 {object} httputils.ErrorResponse
// @Router /chats/not-joined [get]
func (h *ChatHandler) listChatsNotJoined(w http.ResponseWriter, r *http.Request) error {
	username := r.URL.Query().Get("username")

	logger := logging.Ctx(r.Context())
	logger.Info().Str(logging.FieldUsername, username).Msg("listing chats not joined")

	if username == "" {
		return model.NewValidationError("Missing username")
	}

	chats, err := h.chatService.ListChatsNotJoined(r.Context(), username)
	if err != nil {
		return err
	}

	httputils.ResponseJSON(w, http.StatusOK, chats)
	return nil
}
