package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type stubChatbotService struct {
	result *services.ChatResult
	err    error
}

func (s *stubChatbotService) ProcessChat(ctx context.Context, question string) (*services.ChatResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func chatRouter(t *testing.T, svc services.ChatbotService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	r := gin.New()
	r.POST("/api/chatbot", NewChatbotHandler(log, svc).Chat)
	return r
}

func TestChatMissingQuestionReturns422(t *testing.T) {
	t.Parallel()

	bodies := []string{`{}`, `{"question":""}`, `{"question":"   "}`}
	for _, body := range bodies {
		body := body
		t.Run(body, func(t *testing.T) {
			t.Parallel()
			r := chatRouter(t, &stubChatbotService{})

			req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", rec.Code)
			}
			var resp struct {
				Message string            `json:"message"`
				Errors  map[string]string `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if _, ok := resp.Errors["question"]; !ok {
				t.Errorf("errors missing question field: %v", resp.Errors)
			}
		})
	}
}

func TestChatSuccessEnvelope(t *testing.T) {
	t.Parallel()
	r := chatRouter(t, &stubChatbotService{result: &services.ChatResult{
		Question: "Apa itu terumbu karang?",
		Answer:   "Ekosistem laut.",
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{"question":"Apa itu terumbu karang?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Message string              `json:"message"`
		Data    services.ChatResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Question != "Apa itu terumbu karang?" {
		t.Errorf("question not echoed: %q", resp.Data.Question)
	}
	if resp.Data.Answer != "Ekosistem laut." {
		t.Errorf("unexpected answer: %q", resp.Data.Answer)
	}
}

func TestChatUpstreamFailureReturns500(t *testing.T) {
	t.Parallel()
	r := chatRouter(t, &stubChatbotService{
		err: apierr.Upstream(errors.New("completion api unreachable")),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{"question":"halo"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "completion api unreachable") {
		t.Errorf("upstream message not surfaced: %s", rec.Body.String())
	}
}
