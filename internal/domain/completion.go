package domain

import "context"

// Completer is the chat-completion contract shared between layers.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CompletionRequest is a single system + user exchange that expects a JSON object back.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// CompletionResult carries the completion text and token usage.
type CompletionResult struct {
	Content      string
	PromptTokens int
	TotalTokens  int
}
