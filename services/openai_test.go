package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"

	appconfig "portfolio-pulse/config"
)

// mockOpenAIClient implements openaiClient for testing
type mockOpenAIClient struct {
	completionFunc func(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return m.completionFunc(ctx, params)
}

func TestNewOpenAIService_MissingAPIKey(t *testing.T) {
	cfg := appconfig.NewTestConfig()
	cfg.OpenAI.APIKey = ""

	_, err := NewOpenAIService(cfg)
	if err == nil {
		t.Error("expected error when API key is missing")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY is required") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestNewOpenAIService_WithAPIKey(t *testing.T) {
	cfg := appconfig.NewTestConfig()
	cfg.OpenAI.APIKey = "test-api-key"
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.OpenAI.MaxTokens = 2048

	service, err := NewOpenAIService(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if service == nil {
		t.Fatal("service should not be nil")
	}
	if service.model != "gpt-4o-mini" {
		t.Errorf("model = %s, want gpt-4o-mini", service.model)
	}
	if service.maxTokens != 2048 {
		t.Errorf("maxTokens = %d, want 2048", service.maxTokens)
	}
}

func TestOpenAIInvokeWithPrompt_Success(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))

	var gotParams openai.ChatCompletionNewParams
	mockClient := &mockOpenAIClient{
		completionFunc: func(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			gotParams = params
			return &openai.ChatCompletion{
				Choices: []openai.ChatCompletionChoice{
					{
						Message: openai.ChatCompletionMessage{
							Content: "The portfolio news picture is mixed.",
						},
					},
				},
			}, nil
		},
	}

	service := newOpenAIServiceWithClient(mockClient, "gpt-4o-mini", 1024)

	result, err := service.InvokeWithPrompt(context.Background(), "You are an analyst.", "Review the holdings.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "The portfolio news picture is mixed." {
		t.Errorf("result = %q", result)
	}
	if gotParams.Model != "gpt-4o-mini" {
		t.Errorf("model = %s, want gpt-4o-mini", gotParams.Model)
	}
	if len(gotParams.Messages) != 2 {
		t.Errorf("got %d messages, want system + user", len(gotParams.Messages))
	}
}

func TestOpenAIInvokeWithPrompt_APIError(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))

	mockClient := &mockOpenAIClient{
		completionFunc: func(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return nil, errors.New("api unavailable")
		},
	}

	service := newOpenAIServiceWithClient(mockClient, "gpt-4o-mini", 1024)

	_, err := service.InvokeWithPrompt(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error from failed API call")
	}
	if !strings.Contains(err.Error(), "failed to invoke OpenAI") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestOpenAIInvokeWithPrompt_EmptyChoices(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))

	mockClient := &mockOpenAIClient{
		completionFunc: func(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return &openai.ChatCompletion{}, nil
		},
	}

	service := newOpenAIServiceWithClient(mockClient, "gpt-4o-mini", 1024)

	_, err := service.InvokeWithPrompt(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestOpenAIInvokeStructured(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))

	mockClient := &mockOpenAIClient{
		completionFunc: func(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return &openai.ChatCompletion{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: `{"summary": "All clear"}`}},
				},
			}, nil
		},
	}

	service := newOpenAIServiceWithClient(mockClient, "gpt-4o-mini", 1024)

	var out struct {
		Summary string `json:"summary"`
	}
	if err := service.InvokeStructured(context.Background(), "system", "user", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Summary != "All clear" {
		t.Errorf("Summary = %q", out.Summary)
	}
}

func TestOpenAIInvokeStructured_InvalidJSON(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))

	mockClient := &mockOpenAIClient{
		completionFunc: func(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return &openai.ChatCompletion{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: "not json"}},
				},
			}, nil
		},
	}

	service := newOpenAIServiceWithClient(mockClient, "gpt-4o-mini", 1024)

	var out map[string]any
	if err := service.InvokeStructured(context.Background(), "system", "user", &out); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestCategorizeAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"timeout", errors.New("request timeout"), "timeout"},
		{"deadline", errors.New("context deadline exceeded"), "timeout"},
		{"rate limit", errors.New("429 too many requests"), "rate_limit"},
		{"auth", errors.New("401 unauthorized"), "auth_error"},
		{"connection", errors.New("connection refused"), "connection_error"},
		{"other", errors.New("something else"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorizeAPIError(tt.err); got != tt.want {
				t.Errorf("categorizeAPIError() = %s, want %s", got, tt.want)
			}
		})
	}
}
