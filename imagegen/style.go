package imagegen

import "strings"

// DefaultStyle is applied when no style or an unknown style is requested.
const DefaultStyle = "realistic"

// styleSuffixes maps a preset name to the phrase appended to the prompt.
var styleSuffixes = map[string]string{
	"realistic":  "photorealistic, highly detailed, natural lighting",
	"anime":      "anime style, vibrant colors, clean line art",
	"sketch":     "pencil sketch, hand drawn, monochrome shading",
	"watercolor": "watercolor painting, soft washes, textured paper",
	"digital":    "digital art, crisp rendering, dramatic lighting",
	"oil":        "oil painting, rich brushwork, classical composition",
}

// NormalizeStyle resolves a requested style name to a known preset,
// falling back to [DefaultStyle] for empty or unknown names.
func NormalizeStyle(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if _, ok := styleSuffixes[key]; ok {
		return key
	}
	return DefaultStyle
}

// EnhancePrompt appends the style preset's phrase to the prompt.
func EnhancePrompt(prompt, style string) string {
	suffix := styleSuffixes[NormalizeStyle(style)]
	return prompt + ", " + suffix
}
