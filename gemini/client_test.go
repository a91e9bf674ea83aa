package gemini_test

import (
	"testing"

	zeno "github.com/Dushyant-2004/Zeno"
	"github.com/Dushyant-2004/Zeno/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMessages(t *testing.T) {
	t.Parallel()

	contents := gemini.ConvertMessages([]zeno.ChatMessage{
		{Role: zeno.RoleUser, Content: "Hello"},
		{Role: zeno.RoleAssistant, Content: "Hi there"},
		{Role: zeno.RoleSystem, Content: "Be brief."},
		{Role: zeno.RoleUser, Content: "Thanks"},
	})

	require.Len(t, contents, 3, "system messages must not appear in contents")

	assert.Equal(t, "user", contents[0].Role)
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "Hello", contents[0].Parts[0].Text)

	assert.Equal(t, "model", contents[1].Role, "assistant turns map to the model role")
	assert.Equal(t, "Hi there", contents[1].Parts[0].Text)

	assert.Equal(t, "user", contents[2].Role)
	assert.Equal(t, "Thanks", contents[2].Parts[0].Text)
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	temp := 0.4
	config := gemini.BuildConfig(zeno.Request{
		SystemPrompt: "Base prompt.",
		Messages: []zeno.ChatMessage{
			{Role: zeno.RoleSystem, Content: "Extra instruction."},
			{Role: zeno.RoleUser, Content: "Hi"},
		},
		MaxTokens:   512,
		Temperature: &temp,
	})

	assert.Equal(t, int32(512), config.MaxOutputTokens)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, float64(*config.Temperature), 0.0001)

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Equal(t, "Base prompt.\n\nExtra instruction.", config.SystemInstruction.Parts[0].Text)
}

func TestBuildConfig_Defaults(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig(zeno.Request{
		Messages: []zeno.ChatMessage{{Role: zeno.RoleUser, Content: "Hi"}},
	})

	assert.Equal(t, int32(4096), config.MaxOutputTokens)
	assert.Nil(t, config.Temperature, "temperature is omitted unless requested")
	assert.Nil(t, config.SystemInstruction)
}
