package semantic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// chatServer returns a test server that answers every request with reply.
func chatServer(t *testing.T, status int, reply string, inspect func(*http.Request, chatRequest)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if inspect != nil {
			inspect(r, req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestChatClientEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("sends request and decodes finding", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		var gotReq chatRequest
		srv := chatServer(t, http.StatusOK, "```json\n{\"hidden_fees\": true, \"llm_score\": 70}\n```",
			func(r *http.Request, req chatRequest) {
				gotAuth = r.Header.Get("Authorization")
				gotReq = req
			})
		defer srv.Close()

		c := NewChatClient(srv.URL, WithAPIKey("sk-test"), WithModel("test-model"))
		got, err := c.Evaluate(context.Background(), "Pay a deposit", "student")
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if !got.HiddenFees || got.LLMScore != 70 {
			t.Errorf("unexpected finding %+v", got)
		}
		if gotAuth != "Bearer sk-test" {
			t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer sk-test")
		}
		if gotReq.Model != "test-model" || gotReq.MaxTokens != DefaultMaxTokens {
			t.Errorf("unexpected request %+v", gotReq)
		}
		if len(gotReq.Messages) != 1 || !strings.Contains(gotReq.Messages[0].Content, "Pay a deposit") {
			t.Error("prompt does not contain the posting text")
		}
		if !strings.Contains(gotReq.Messages[0].Content, "student") {
			t.Error("prompt does not contain the applicant context")
		}
	})

	t.Run("no api key sends no authorization", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		srv := chatServer(t, http.StatusOK, `{"llm_score": 1}`, func(r *http.Request, _ chatRequest) {
			gotAuth = r.Header.Get("Authorization")
		})
		defer srv.Close()

		if _, err := NewChatClient(srv.URL).Evaluate(context.Background(), "x", ""); err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if gotAuth != "" {
			t.Errorf("Authorization = %q, want empty", gotAuth)
		}
	})

	t.Run("non-2xx status", func(t *testing.T) {
		t.Parallel()

		srv := chatServer(t, http.StatusInternalServerError, "", nil)
		defer srv.Close()

		_, err := NewChatClient(srv.URL).Evaluate(context.Background(), "x", "")
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Errorf("expected ErrUnexpectedStatus, got %v", err)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()

		srv := chatServer(t, http.StatusOK, "   ", nil)
		defer srv.Close()

		_, err := NewChatClient(srv.URL).Evaluate(context.Background(), "x", "")
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("guard turns transport failure into neutral finding", func(t *testing.T) {
		t.Parallel()

		srv := chatServer(t, http.StatusBadGateway, "", nil)
		defer srv.Close()

		got := NewGuard(NewChatClient(srv.URL)).Evaluate(context.Background(), "Data entry role", "")
		if got.LLMScore != 0 || !got.Failed() {
			t.Errorf("expected neutral failed finding, got %+v", got)
		}
	})
}

func TestChatClientJudgeLegitimacy(t *testing.T) {
	t.Parallel()

	var prompt string
	srv := chatServer(t, http.StatusOK, `{"appears_fraudulent": true, "legitimacy_score": 15}`,
		func(_ *http.Request, req chatRequest) {
			prompt = req.Messages[0].Content
		})
	defer srv.Close()

	long := strings.Repeat("a", maxCompanyContent+500)
	got, err := NewChatClient(srv.URL).JudgeLegitimacy(context.Background(), "https://acme.example", long)
	if err != nil {
		t.Fatalf("JudgeLegitimacy() error = %v", err)
	}
	if !got.AppearsFraudulent || got.LegitimacyScore != 15 {
		t.Errorf("unexpected judgment %+v", got)
	}
	if strings.Count(prompt, "a") > maxCompanyContent+200 {
		t.Error("website content was not truncated")
	}
	if !strings.Contains(prompt, "https://acme.example") {
		t.Error("prompt does not contain the website URL")
	}
}
