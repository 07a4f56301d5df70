package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8081", "test-key", "test-model")
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8081" {
		t.Errorf("NewClient() BaseURL = %v", client.BaseURL)
	}
	if client.client == nil {
		t.Error("NewClient() client should not be nil")
	}
}

func chatServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("expected /v1/chat/completions, got %s", r.URL.Path)
		}
		if !strings.Contains(r.Header.Get("Authorization"), "Bearer") {
			t.Error("missing Authorization header")
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func replyWith(content string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := chatResponse{
			ID:     "test-id",
			Object: "chat.completion",
			Choices: []chatChoice{{
				Message: Message{Role: "assistant", Content: content},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestClient_Complete(t *testing.T) {
	server := chatServer(t, replyWith("Hello there"))

	client := NewClient(server.URL, "test-key", "test-model")
	reply, err := client.Complete(context.Background(), "Hi")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "Hello there" {
		t.Errorf("Complete() = %q", reply)
	}
}

func TestClient_Complete_ServerError(t *testing.T) {
	server := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	client := NewClient(server.URL, "test-key", "test-model")
	if _, err := client.Complete(context.Background(), "Hi"); err == nil {
		t.Error("Complete() expected error for 500 response")
	}
}

func TestClient_Complete_NoChoices(t *testing.T) {
	server := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse{ID: "x"})
	})

	client := NewClient(server.URL, "test-key", "test-model")
	if _, err := client.Complete(context.Background(), "Hi"); err == nil {
		t.Error("Complete() expected error for empty choices")
	}
}

func TestClient_CompleteStructured(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "plain json", content: `{"file_name":["a.txt"]}`},
		{name: "fenced json", content: "```json\n{\"file_name\":[\"a.txt\"]}\n```"},
		{name: "malformed output", content: "I cannot answer in JSON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
				var req chatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("decode request: %v", err)
				}
				if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
					t.Error("CompleteStructured() did not request JSON mode")
				}
				replyWith(tt.content)(w, r)
			})

			client := NewClient(server.URL, "test-key", "test-model")

			var out struct {
				FileName []string `json:"file_name"`
			}
			err := client.CompleteStructured(context.Background(), "extract filters", &out)
			if tt.wantErr {
				if err == nil {
					t.Error("CompleteStructured() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CompleteStructured() error = %v", err)
			}
			if len(out.FileName) != 1 || out.FileName[0] != "a.txt" {
				t.Errorf("CompleteStructured() decoded = %+v", out)
			}
		})
	}
}

func TestClient_ChatWithTools(t *testing.T) {
	server := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Tools) != 1 || req.Tools[0].Function.Name != "list_all_documents" {
			t.Errorf("request tools = %+v", req.Tools)
		}

		resp := chatResponse{
			Choices: []chatChoice{{
				Message: Message{
					Role: "assistant",
					ToolCalls: []ToolCall{{
						ID:       "call-1",
						Type:     "function",
						Function: ToolCallFunction{Name: "list_all_documents", Arguments: "{}"},
					}},
				},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	client := NewClient(server.URL, "test-key", "test-model")

	tools := []Tool{NewFunctionTool("list_all_documents", "List documents.", nil)}
	msg, err := client.ChatWithTools(context.Background(), []Message{{Role: "user", Content: "list"}}, tools)
	if err != nil {
		t.Fatalf("ChatWithTools() error = %v", err)
	}
	if len(msg.ToolCalls) != 1 || msg.ToolCalls[0].Function.Name != "list_all_documents" {
		t.Errorf("ChatWithTools() = %+v", msg)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding whitespace", in: "  {\"a\":1}\n", want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}
