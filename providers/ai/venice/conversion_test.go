package venice

import (
	"testing"

	"computeruse/providers/ai"
)

// TestRequestToVenice_SystemPrepended verifies that the system prompt becomes
// the first message with role "system".
func TestRequestToVenice_SystemPrepended(t *testing.T) {
	request := ai.ChatRequest{
		Model:        "most_intelligent",
		SystemPrompt: "be brief",
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: "hi"},
		},
	}

	req := requestToVenice(request, defaultMaxTokens)

	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" || req.Messages[0].Content != "be brief" {
		t.Errorf("unexpected first message: %+v", req.Messages[0])
	}
	if req.Messages[1].Role != "user" || req.Messages[1].Content != "hi" {
		t.Errorf("unexpected second message: %+v", req.Messages[1])
	}
}

// TestRequestToVenice_NoSystem verifies that no system message is injected
// when the prompt is empty.
func TestRequestToVenice_NoSystem(t *testing.T) {
	req := requestToVenice(ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	}, defaultMaxTokens)

	if len(req.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "user" {
		t.Errorf("unexpected role %q", req.Messages[0].Role)
	}
}

// TestRequestToVenice_VeniceParameters verifies that the Venice system prompt
// is always suppressed on the wire.
func TestRequestToVenice_VeniceParameters(t *testing.T) {
	req := requestToVenice(ai.ChatRequest{}, defaultMaxTokens)

	if req.VeniceParameters == nil {
		t.Fatal("expected venice_parameters to be set")
	}
	if req.VeniceParameters.IncludeVeniceSystemPrompt {
		t.Error("expected include_venice_system_prompt to be false")
	}
}

// TestRequestToVenice_GenerationConfig verifies max tokens precedence and
// sampling passthrough.
func TestRequestToVenice_GenerationConfig(t *testing.T) {
	req := requestToVenice(ai.ChatRequest{
		GenerationConfig: &ai.GenerationConfig{MaxTokens: 512, Temperature: 0.7},
	}, defaultMaxTokens)

	if req.MaxTokens != 512 {
		t.Errorf("expected max_tokens 512, got %d", req.MaxTokens)
	}
	if req.Temperature == nil || *req.Temperature < 0.69 || *req.Temperature > 0.71 {
		t.Errorf("unexpected temperature: %v", req.Temperature)
	}

	req = requestToVenice(ai.ChatRequest{}, defaultMaxTokens)
	if req.MaxTokens != defaultMaxTokens {
		t.Errorf("expected default max_tokens %d, got %d", defaultMaxTokens, req.MaxTokens)
	}
}

// TestExtractText_Blocks verifies that block content flattens to the joined
// text of its text blocks, skipping images.
func TestExtractText_Blocks(t *testing.T) {
	msg := ai.Message{
		Role: ai.RoleUser,
		ContentParts: []ai.ContentPart{
			{Type: ai.ContentTypeText, Text: "look at "},
			{Type: ai.ContentTypeImage, Image: &ai.ImagePart{MimeType: "image/png", Data: "aGk="}},
			{Type: ai.ContentTypeText, Text: "this"},
		},
	}

	if got := extractText(msg); got != "look at this" {
		t.Errorf("extractText = %q, want %q", got, "look at this")
	}
}

// TestExtractText_PlainContent verifies the fallback to the plain Content field.
func TestExtractText_PlainContent(t *testing.T) {
	if got := extractText(ai.Message{Role: ai.RoleUser, Content: "plain"}); got != "plain" {
		t.Errorf("extractText = %q, want %q", got, "plain")
	}
}

// TestVeniceToGeneric verifies mapping of the first choice and usage.
func TestVeniceToGeneric(t *testing.T) {
	resp := veniceResponse{
		ID:      "cmpl-1",
		Model:   "most_intelligent",
		Created: 1730000000,
		Choices: []veniceChoice{
			{Index: 0, Message: veniceMessage{Role: "assistant", Content: "Hello"}, FinishReason: "stop"},
		},
		Usage: &veniceUsage{PromptTokens: 10, CompletionTokens: 2, TotalTokens: 12},
	}

	result := veniceToGeneric(resp)

	if result.Id != "cmpl-1" {
		t.Errorf("expected id cmpl-1, got %q", result.Id)
	}
	if result.Content != "Hello" {
		t.Errorf("expected content Hello, got %q", result.Content)
	}
	if result.FinishReason != "stop" {
		t.Errorf("expected finish reason stop, got %q", result.FinishReason)
	}
	if result.Created != 1730000000 {
		t.Errorf("expected created timestamp to carry over, got %d", result.Created)
	}
	if result.Usage == nil || result.Usage.TotalTokens != 12 {
		t.Errorf("unexpected usage: %+v", result.Usage)
	}
}

// TestVeniceToGeneric_NoChoices verifies that an empty choices list maps to an
// empty content string without panicking.
func TestVeniceToGeneric_NoChoices(t *testing.T) {
	result := veniceToGeneric(veniceResponse{ID: "cmpl-2"})

	if result.Content != "" {
		t.Errorf("expected empty content, got %q", result.Content)
	}
	if result.Created == 0 {
		t.Error("expected a fallback created timestamp")
	}
}
