package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const summarizeTimeout = 30 * time.Second

// Client is an OpenAI-compatible client used to digest conversation
// history for the History view
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new summarizer client
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

const digestPrompt = `You are an operations assistant. Summarize the recent customer conversations below into a brief digest for a dashboard operator.

Requirements:
1. Mention recurring topics, booking requests and unresolved questions
2. Keep it under 150 words
3. Output the digest directly, no preamble`

// Summarize produces a short digest of the given conversation history
func (c *Client) Summarize(ctx context.Context, history string) (string, error) {
	if history == "" {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, summarizeTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: digestPrompt},
			{Role: openai.ChatMessageRoleUser, Content: history},
		},
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("summarize history: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
