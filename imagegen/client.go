package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client calls the external image-synthesis service.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL overrides the API base URL. Useful for testing.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.httpClient = client }
}

// WithModel sets the image model ID. Default is dall-e-3.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new image generation [Client].
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Generate synthesizes one image for the prompt using the given style
// preset. Unknown styles resolve to the default preset.
func (c *Client) Generate(ctx context.Context, prompt, style string) (*Result, error) {
	enhanced := EnhancePrompt(prompt, style)

	reqBody := apiRequest{
		Model:  c.model,
		Prompt: enhanced,
		N:      1,
		Size:   fmt.Sprintf("%dx%d", defaultWidth, defaultHeight),
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("imagegen: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generationsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("imagegen: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagegen: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(resp)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("imagegen: failed to decode response: %w", err)
	}
	if len(body.Data) == 0 {
		return nil, fmt.Errorf("imagegen: response contained no images")
	}

	img := body.Data[0]
	if img.RevisedPrompt != "" {
		enhanced = img.RevisedPrompt
	}

	return &Result{
		URL:            img.URL,
		Prompt:         prompt,
		EnhancedPrompt: enhanced,
		Width:          defaultWidth,
		Height:         defaultHeight,
		Model:          c.model,
	}, nil
}

// parseHTTPError extracts a short reason from an error response body.
func parseHTTPError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var apiErr apiErrorResponse
		if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("imagegen: %s", apiErr.Error.Message)
		}
	}
	return fmt.Errorf("imagegen: HTTP %d", resp.StatusCode)
}
