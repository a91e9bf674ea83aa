package gemini

import (
	"context"
	"fmt"
	"strings"

	zeno "github.com/Dushyant-2004/Zeno"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ zeno.Provider = (*Client)(nil)

// Client implements [zeno.Provider] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-3.1-pro-preview.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Name identifies this provider in logs and failure messages.
func (c *Client) Name() string { return "gemini" }

// Generate sends a blocking request and returns the concatenated text parts
// of the first candidate.
func (c *Client) Generate(ctx context.Context, req zeno.Request) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, ConvertMessages(req.Messages), BuildConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return extractText(resp), nil
}

// Stream sends a streaming request and returns a [zeno.Stream] of text
// deltas.
func (c *Client) Stream(ctx context.Context, req zeno.Request) (zeno.Stream, error) {
	iter := c.client.Models.GenerateContentStream(ctx, c.model, ConvertMessages(req.Messages), BuildConfig(req))
	return newStream(ctx, iter), nil
}

// BuildConfig maps request parameters to a genai config.
// Exported for testing.
func BuildConfig(req zeno.Request) *genai.GenerateContentConfig {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}

	if system := buildSystem(req); system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}

	return config
}

// buildSystem joins the request's system prompt with any system-role messages
// in the window; Gemini carries system text in SystemInstruction, not in
// contents.
func buildSystem(req zeno.Request) string {
	parts := make([]string, 0, 1)
	if req.SystemPrompt != "" {
		parts = append(parts, req.SystemPrompt)
	}
	for _, m := range req.Messages {
		if m.Role == zeno.RoleSystem && m.Content != "" {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// ConvertMessages converts chat messages to genai Contents. Assistant turns
// map to the "model" role; system turns are folded into SystemInstruction by
// BuildConfig and skipped here.
// Exported for testing.
func ConvertMessages(msgs []zeno.ChatMessage) []*genai.Content {
	var result []*genai.Content
	for _, m := range msgs {
		switch m.Role {
		case zeno.RoleUser:
			result = append(result, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		case zeno.RoleAssistant:
			result = append(result, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}
	return result
}

// extractText concatenates the non-thought text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
