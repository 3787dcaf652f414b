package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/searchserver/models"
	"github.com/google/go-cmp/cmp"
	"github.com/tmc/langchaingo/llms"
)

func TestBuildContext(t *testing.T) {
	rs := []models.SearchResult{
		{Filename: "a.pdf", Content: "the <em>notice</em> period"},
		{Filename: "b.docx", Content: " fees &amp; charges "},
	}
	expected := "Source: a.pdf\nthe notice period\n\nSource: b.docx\nfees & charges"
	if actual := BuildContext(rs, 0); actual != expected {
		t.Errorf("expected %q, got %q", expected, actual)
	}
	if actual := BuildContext(rs, 10); actual != "Source: a." {
		t.Errorf("expected truncated context, got %q", actual)
	}
	if actual := BuildContext(nil, 10); actual != "" {
		t.Errorf("expected empty context, got %q", actual)
	}
}

type fakeModel struct {
	messages []llms.MessageContent
	options  llms.CallOptions
	response *llms.ContentResponse
	err      error
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	for _, o := range options {
		o(&m.options)
	}
	return m.response, m.err
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestLangChain(t *testing.T) {
	t.Run("the first choice is returned", func(t *testing.T) {
		m := &fakeModel{
			response: &llms.ContentResponse{
				Choices: []*llms.ContentChoice{{Content: "  Thirty days notice.  "}},
			},
		}
		c := NewLangChain(m, DefaultPrompts())
		actual, err := c.Complete(context.Background(), "termination", "Source: a.pdf")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if actual != "Thirty days notice." {
			t.Errorf("unexpected completion %q", actual)
		}
		expectedMessages := []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, DefaultSystemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, "Query: termination\nContext: Source: a.pdf"),
		}
		if diff := cmp.Diff(expectedMessages, m.messages); diff != "" {
			t.Errorf("unexpected messages:\n%s", diff)
		}
		if m.options.MaxTokens != 200 {
			t.Errorf("expected max tokens of 200, got %d", m.options.MaxTokens)
		}
	})
	t.Run("no choices is an error", func(t *testing.T) {
		c := NewLangChain(&fakeModel{response: &llms.ContentResponse{}}, DefaultPrompts())
		if _, err := c.Complete(context.Background(), "q", "c"); !errors.Is(err, ErrNoChoices) {
			t.Errorf("expected ErrNoChoices, got %v", err)
		}
	})
	t.Run("model errors are returned", func(t *testing.T) {
		modelErr := errors.New("unavailable")
		c := NewLangChain(&fakeModel{err: modelErr}, DefaultPrompts())
		if _, err := c.Complete(context.Background(), "q", "c"); !errors.Is(err, modelErr) {
			t.Errorf("expected wrapped model error, got %v", err)
		}
	})
}

func TestOpenAI(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		MaxTokens int `json:"max_tokens"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "1", "object": "chat.completion", "choices": [{"index": 0, "message": {"role": "assistant", "content": " Net 45. "}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	c := NewOpenAI("key", server.URL+"/v1", "gpt-4o-mini", Prompts{System: "sys", User: "%s|%s"})
	actual, err := c.Complete(context.Background(), "payment", "ctx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if actual != "Net 45." {
		t.Errorf("unexpected completion %q", actual)
	}
	if gotReq.Model != "gpt-4o-mini" || gotReq.MaxTokens != 200 {
		t.Errorf("unexpected request: %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Content != "sys" || gotReq.Messages[1].Content != "payment|ctx" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectNil   bool
		expectError bool
	}{
		{name: "no provider disables completion", cfg: Config{}, expectNil: true},
		{name: "none disables completion", cfg: Config{Provider: "none"}, expectNil: true},
		{name: "openai", cfg: Config{Provider: "openai", APIKey: "key", Deployment: "gpt-4o-mini"}},
		{name: "azure", cfg: Config{Provider: "azure", Endpoint: "https://example.openai.azure.com/", Deployment: "gpt-35-turbo", APIKey: "key", APIVersion: "2023-05-15"}},
		{name: "unknown providers are an error", cfg: Config{Provider: "carrier-pigeon"}, expectNil: true, expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg, DefaultPrompts())
			if tt.expectError != (err != nil) {
				t.Fatalf("expected error %v, got %v", tt.expectError, err)
			}
			if tt.expectNil != (c == nil) {
				t.Errorf("expected nil completer %v, got %#v", tt.expectNil, c)
			}
		})
	}
}

func TestPromptsValidate(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		expected error
	}{
		{
			name: "the default prompt is valid",
			user: DefaultUserPrompt,
		},
		{
			name: "explicit argument indexes are valid",
			user: "Context: %[2]s\nQuestion: %[1]s",
		},
		{
			name:     "a prompt without verbs is invalid",
			user:     "Summarize the context.",
			expected: ErrInvalidUserPrompt,
		},
		{
			name:     "a prompt with one verb is invalid",
			user:     "Query: %s",
			expected: ErrInvalidUserPrompt,
		},
		{
			name:     "a prompt with three verbs is invalid",
			user:     "%s %s %s",
			expected: ErrInvalidUserPrompt,
		},
		{
			name:     "a prompt with the wrong verb is invalid",
			user:     "Query: %s\nContext: %d",
			expected: ErrInvalidUserPrompt,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Prompts{System: DefaultSystemPrompt, User: tt.user}.Validate()
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected error %v, got %v", tt.expected, err)
			}
		})
	}
}
