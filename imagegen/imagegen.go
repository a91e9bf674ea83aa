// Package imagegen routes image-generation requests. It classifies chat
// messages that ask for an image, extracts the drawing prompt, applies a
// style preset, and calls the external image-synthesis service.
package imagegen

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "dall-e-3"
	defaultWidth   = 1024
	defaultHeight  = 1024

	generationsPath = "/v1/images/generations"
)

// Result describes one generated image.
type Result struct {
	URL            string `json:"url"`
	Prompt         string `json:"prompt"`
	EnhancedPrompt string `json:"enhancedPrompt"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Model          string `json:"model"`
}

// apiRequest is the wire format of a generation request.
type apiRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

// apiResponse is the wire format of a generation response.
type apiResponse struct {
	Data []apiImage `json:"data"`
}

type apiImage struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt"`
}

// apiErrorResponse is the wire format of an error body.
type apiErrorResponse struct {
	Error apiErrorDetail `json:"error"`
}

type apiErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
