package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dashboard-server/internal/domain/assistant"
	"dashboard-server/internal/domain/conversation"
	"dashboard-server/internal/infrastructure/auth"
	"dashboard-server/internal/interfaces/httpserver/handlers"
	"dashboard-server/internal/utils/platformerrors"
)

// MockAssistantService is a mock implementation of assistant.Service for testing.
type MockAssistantService struct {
	TurnFunc      func(ctx context.Context, session *conversation.Session, input string) (*assistant.TurnResult, error)
	SummarizeFunc func(ctx context.Context, session *conversation.Session) (string, error)
}

func (m *MockAssistantService) Turn(ctx context.Context, session *conversation.Session, input string) (*assistant.TurnResult, error) {
	if m.TurnFunc != nil {
		return m.TurnFunc(ctx, session, input)
	}
	return nil, nil
}

func (m *MockAssistantService) Summarize(ctx context.Context, session *conversation.Session) (string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, session)
	}
	return "", nil
}

func newChatRouter(store *conversation.Store, assistantService assistant.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewChatHandler(store, assistantService, zerolog.Nop())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		auth.SetOwnerID(c, "user-1")
	})
	router.POST("/v1/chat/sessions", handler.CreateSession)
	router.GET("/v1/chat/sessions/:id", handler.GetSession)
	router.POST("/v1/chat/sessions/:id/edit", handler.SetEdit)
	router.DELETE("/v1/chat/sessions/:id/edit", handler.ClearEdit)
	router.POST("/v1/chat/sessions/:id/messages", handler.PostMessage)
	router.POST("/v1/chat/sessions/:id/contents", handler.RecordContent)
	router.POST("/v1/chat/sessions/:id/summary", handler.Summarize)
	return router
}

func createSession(t *testing.T, store *conversation.Store) *conversation.Session {
	t.Helper()
	session, err := store.Create(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return session
}

func TestCreateSession(t *testing.T) {
	store := conversation.NewStore(time.Minute, zerolog.Nop())
	router := newChatRouter(store, &MockAssistantService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["id"] == "" {
		t.Error("expected a session id")
	}
	if payload["state"] != "idle" {
		t.Errorf("expected idle state, got %v", payload["state"])
	}
}

func TestGetSessionForeignOwner(t *testing.T) {
	store := conversation.NewStore(time.Minute, zerolog.Nop())
	session, err := store.Create(context.Background(), "someone-else")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	router := newChatRouter(store, &MockAssistantService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions/"+session.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a foreign session, got %d", rec.Code)
	}
}

func TestPostMessageReturnsTurnResult(t *testing.T) {
	store := conversation.NewStore(time.Minute, zerolog.Nop())
	session := createSession(t, store)
	service := &MockAssistantService{
		TurnFunc: func(ctx context.Context, s *conversation.Session, input string) (*assistant.TurnResult, error) {
			if s.ID != session.ID || input != "make me a note" {
				t.Errorf("unexpected turn args: %s %q", s.ID, input)
			}
			return &assistant.TurnResult{Message: "done", Tool: assistant.ToolFinalAnswer}, nil
		},
	}
	router := newChatRouter(store, service)

	body := `{"message":"make me a note"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/sessions/"+session.ID+"/messages", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["message"] != "done" || payload["tool"] != "final_answer" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestPostMessageConflictWhileInFlight(t *testing.T) {
	store := conversation.NewStore(time.Minute, zerolog.Nop())
	session := createSession(t, store)
	service := &MockAssistantService{
		TurnFunc: func(ctx context.Context, s *conversation.Session, input string) (*assistant.TurnResult, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
				"a turn is already in flight", nil, "test-conflict-001")
		},
	}
	router := newChatRouter(store, service)

	body := `{"message":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/sessions/"+session.ID+"/messages", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestEditTargetLifecycle(t *testing.T) {
	store := conversation.NewStore(time.Minute, zerolog.Nop())
	session := createSession(t, store)
	router := newChatRouter(store, &MockAssistantService{})

	body := `{"widget_id":"wdgt_abc"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/sessions/"+session.ID+"/edit", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if target, ok := session.EditTarget(); !ok || target != "wdgt_abc" {
		t.Errorf("expected edit target set, got %q (%v)", target, ok)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/chat/sessions/"+session.ID+"/edit", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := session.EditTarget(); ok {
		t.Error("expected edit target cleared")
	}
}

func TestRecordContentAndSummarize(t *testing.T) {
	store := conversation.NewStore(time.Minute, zerolog.Nop())
	session := createSession(t, store)
	service := &MockAssistantService{
		SummarizeFunc: func(ctx context.Context, s *conversation.Session) (string, error) {
			if len(s.Contents()) != 1 {
				t.Errorf("expected 1 cached content, got %d", len(s.Contents()))
			}
			return "a dashboard of contacts", nil
		},
	}
	router := newChatRouter(store, service)

	body := `{"widget_id":"wdgt_1","title":"Contacts","type":"salesforce","content":"5 records"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/sessions/"+session.ID+"/contents", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/chat/sessions/"+session.ID+"/summary", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["summary"] != "a dashboard of contacts" {
		t.Errorf("unexpected summary: %q", payload["summary"])
	}
}
