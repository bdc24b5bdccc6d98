package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	_ "tush00nka/group_chat/docs"
	"tush00nka/group_chat/internal/handler"
	"tush00nka/group_chat/internal/pkg/pubsub"
	"tush00nka/group_chat/internal/repository"
	"tush00nka/group_chat/internal/service"
)

func newTestServer(t *testing.T) (*Server, *miniredis.Miniredis) {
	t.Helper()

	db, err := repository.NewDB(repository.DBConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	// MaxRetries -1 keeps broker-down requests from backing off
	publisher := pubsub.NewRedisPublisherFromClient(redis.NewClient(&redis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	}))
	t.Cleanup(func() { publisher.Close() })

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	server := NewServer(
		handler.NewUserHandler(service.NewUserService(userRepo)),
		handler.NewChatHandler(service.NewChatService(chatRepo, userRepo, messageRepo), publisher),
		zerolog.Nop(),
	)
	return server, mr
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCORSPreflightRequest(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/chats", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	// gorilla/handlers echoes the requested headers on preflight
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSWithActualRequest(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://example.com")

	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestSwaggerDocIsServed(t *testing.T) {
	server, _ := newTestServer(t)

	rr := serve(server.Handler(), http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/chats/{chatId}/messages")
}

func TestChatFlowPublishesToRedis(t *testing.T) {
	server, mr := newTestServer(t)
	h := server.Handler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	sub := client.Subscribe(ctx, pubsub.Channel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.Equal(t, http.StatusCreated, serve(h, http.MethodPost, "/users", `{"username":"bob"}`).Code)
	require.Equal(t, http.StatusCreated, serve(h, http.MethodPost, "/chats", `{"username":"bob","name":"Test"}`).Code)
	require.Equal(t, http.StatusCreated, serve(h, http.MethodPost, "/chats/1/messages", `{"username":"bob","content":"hi","sent_at":1700000000}`).Code)

	rr := serve(h, http.MethodGet, "/chats/1/messages", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":1,"sent_by":"bob","sent_to":1,"sent_at":1700000000,"content":"hi"}]`, rr.Body.String())

	var payloads []map[string]any
	for len(payloads) < 2 {
		select {
		case msg := <-sub.Channel():
			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &payload))
			payloads = append(payloads, payload)
		case <-ctx.Done():
			t.Fatalf("received %d of 2 events", len(payloads))
		}
	}

	assert.Equal(t, map[string]any{
		"type": "chat_created", "chatId": float64(1), "chatName": "Test", "createdBy": "bob",
	}, payloads[0])
	assert.Equal(t, map[string]any{
		"type": "message_sent", "chatId": float64(1), "username": "bob", "content": "hi", "sentAt": float64(1700000000),
	}, payloads[1])
}

func TestBrokerDownReturnsInternalError(t *testing.T) {
	server, mr := newTestServer(t)
	h := server.Handler()

	require.Equal(t, http.StatusCreated, serve(h, http.MethodPost, "/users", `{"username":"bob"}`).Code)
	mr.Close()

	rr := serve(h, http.MethodPost, "/chats", `{"username":"bob","name":"Test"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
}
