package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dashboard-server/internal/infrastructure/auth"
	"dashboard-server/internal/interfaces/httpserver/handlers"
	"dashboard-server/internal/utils/platformerrors"
)

// MockSynthesizer is a mock implementation of handlers.Synthesizer.
type MockSynthesizer struct {
	SynthesizeFunc func(ctx context.Context, text string) (string, error)
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text)
	}
	return "", nil
}

// MockCRMQuerier is a mock implementation of handlers.CRMQuerier.
type MockCRMQuerier struct {
	QueryFunc func(ctx context.Context, soql string, maxRecords int) ([]map[string]any, error)
}

func (m *MockCRMQuerier) Query(ctx context.Context, soql string, maxRecords int) ([]map[string]any, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, soql, maxRecords)
	}
	return nil, nil
}

// MockToolRunner is a mock implementation of handlers.ToolRunner.
type MockToolRunner struct {
	GenerateFunc func(ctx context.Context, prompt, tool string, maxSteps int) (map[string]any, error)
}

func (m *MockToolRunner) Generate(ctx context.Context, prompt, tool string, maxSteps int) (map[string]any, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, tool, maxSteps)
	}
	return nil, nil
}

func newIntegrationRouter(speech handlers.Synthesizer, crm handlers.CRMQuerier, tools handlers.ToolRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewIntegrationHandler(speech, crm, tools, zerolog.Nop())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		auth.SetOwnerID(c, "user-1")
	})
	router.POST("/v1/speech", handler.Speech)
	router.POST("/v1/salesforce/query", handler.SalesforceQuery)
	router.POST("/v1/pica", handler.PicaGenerate)
	return router
}

func TestSpeechReturnsAudioContent(t *testing.T) {
	speech := &MockSynthesizer{
		SynthesizeFunc: func(ctx context.Context, text string) (string, error) {
			if text != "read this" {
				t.Errorf("unexpected text %q", text)
			}
			return "YXVkaW8=", nil
		},
	}
	router := newIntegrationRouter(speech, &MockCRMQuerier{}, &MockToolRunner{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/speech", bytes.NewBufferString(`{"text":"read this"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp["audioContent"] != "YXVkaW8=" {
		t.Errorf("unexpected body: %v", resp)
	}
}

func TestSalesforceQueryPassesMaxRecords(t *testing.T) {
	crm := &MockCRMQuerier{
		QueryFunc: func(ctx context.Context, soql string, maxRecords int) ([]map[string]any, error) {
			if soql != "SELECT Id FROM Contact" || maxRecords != 10 {
				t.Errorf("unexpected query %q / maxRecords %d", soql, maxRecords)
			}
			return []map[string]any{{"Id": "003"}}, nil
		},
	}
	router := newIntegrationRouter(&MockSynthesizer{}, crm, &MockToolRunner{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/salesforce/query",
		bytes.NewBufferString(`{"query":"SELECT Id FROM Contact","maxRecords":10}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPicaGenerateReturnsResult(t *testing.T) {
	tools := &MockToolRunner{
		GenerateFunc: func(ctx context.Context, prompt, tool string, maxSteps int) (map[string]any, error) {
			if prompt != "summarize inbox" || tool != "gmail" || maxSteps != 3 {
				t.Errorf("unexpected call: %q %q %d", prompt, tool, maxSteps)
			}
			return map[string]any{"output": "done"}, nil
		},
	}
	router := newIntegrationRouter(&MockSynthesizer{}, &MockCRMQuerier{}, tools)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/pica",
		bytes.NewBufferString(`{"prompt":"summarize inbox","tool":"gmail","maxSteps":3}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp["result"]["output"] != "done" {
		t.Errorf("unexpected body: %v", resp)
	}
}

func TestPicaGenerateMissingPromptNoCall(t *testing.T) {
	called := false
	tools := &MockToolRunner{
		GenerateFunc: func(ctx context.Context, prompt, tool string, maxSteps int) (map[string]any, error) {
			called = true
			return nil, nil
		},
	}
	router := newIntegrationRouter(&MockSynthesizer{}, &MockCRMQuerier{}, tools)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/pica", bytes.NewBufferString(`{"tool":"gmail"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if called {
		t.Error("expected no provider call on validation failure")
	}
}

func TestPicaGenerateProviderFailure(t *testing.T) {
	tools := &MockToolRunner{
		GenerateFunc: func(ctx context.Context, prompt, tool string, maxSteps int) (map[string]any, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeExternal, "pica generate failed", nil, "test-pica-001")
		},
	}
	router := newIntegrationRouter(&MockSynthesizer{}, &MockCRMQuerier{}, tools)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/pica", bytes.NewBufferString(`{"prompt":"p"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}
