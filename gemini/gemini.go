// Package gemini implements [zeno.Provider] for the Google Gemini API via
// the google.golang.org/genai SDK.
package gemini

const (
	defaultModel     = "gemini-3.1-pro-preview"
	defaultMaxTokens = 4096
)
