package venice

/*
	CHAT COMPLETIONS API - INPUT
*/

// veniceRequest represents the /api/v1/chat/completions request format.
type veniceRequest struct {
	Model     string          `json:"model"`
	Messages  []veniceMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
	// Venice-specific extension block; include_venice_system_prompt is sent
	// as false so Venice does not prepend its own system prompt on top of ours.
	VeniceParameters *veniceParameters `json:"venice_parameters,omitempty"`
	Temperature      *float64          `json:"temperature,omitempty"`
	TopP             *float64          `json:"top_p,omitempty"`
}

// veniceMessage is a single chat turn in the flat role/content form Venice
// expects. Block content must be flattened to text before it gets here.
type veniceMessage struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

type veniceParameters struct {
	IncludeVeniceSystemPrompt bool `json:"include_venice_system_prompt"`
}

/*
	CHAT COMPLETIONS API - OUTPUT
*/

// veniceResponse represents the /api/v1/chat/completions response format.
type veniceResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []veniceChoice `json:"choices"`
	Usage   *veniceUsage   `json:"usage,omitempty"`
}

type veniceChoice struct {
	Index        int           `json:"index"`
	Message      veniceMessage `json:"message"`
	FinishReason string        `json:"finish_reason,omitempty"`
}

type veniceUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
