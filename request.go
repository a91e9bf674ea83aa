package zeno

// Request carries one completion call's message window and generation
// parameters. It is constructed fresh per call and never persisted.
// The provider uses its own defaults when fields are zero/nil.
type Request struct {
	SystemPrompt string
	Messages     []ChatMessage
	MaxTokens    int      // 0 = provider default
	Temperature  *float64 // nil = provider default
}
