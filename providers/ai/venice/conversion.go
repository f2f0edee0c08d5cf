package venice

import (
	"strings"
	"time"

	"computeruse/providers/ai"
)

// requestToVenice converts an ai.ChatRequest into a veniceRequest ready to
// POST to Venice's chat completions endpoint.
//
// Venice has no top-level system field, so the system prompt is prepended as
// the first message with role "system". Block-content messages are flattened
// to plain text because Venice only accepts flat role/content turns; the
// roles themselves ("system", "user", "assistant") carry over unchanged.
func requestToVenice(request ai.ChatRequest, defaultMaxTokens int) veniceRequest {
	messages := make([]veniceMessage, 0, len(request.Messages)+1)

	if request.SystemPrompt != "" {
		messages = append(messages, veniceMessage{
			Role:    string(ai.RoleSystem),
			Content: request.SystemPrompt,
		})
	}

	for _, msg := range request.Messages {
		messages = append(messages, veniceMessage{
			Role:    string(msg.Role),
			Content: extractText(msg),
		})
	}

	req := veniceRequest{
		Model:     request.Model,
		Messages:  messages,
		MaxTokens: defaultMaxTokens,
		VeniceParameters: &veniceParameters{
			IncludeVeniceSystemPrompt: false,
		},
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.MaxTokens > 0 {
			req.MaxTokens = cfg.MaxTokens
		}
		if cfg.Temperature > 0 {
			temp := float64(cfg.Temperature)
			req.Temperature = &temp
		}
		if cfg.TopP > 0 {
			topP := float64(cfg.TopP)
			req.TopP = &topP
		}
	}

	return req
}

// extractText flattens a message to plain text. For block-content messages
// the text blocks are joined in order; image blocks are skipped because
// Venice's flat message form cannot carry them. Falls back to the plain
// Content field when no block content is present.
func extractText(msg ai.Message) string {
	if len(msg.ContentParts) == 0 {
		return msg.Content
	}

	var sb strings.Builder
	for _, part := range msg.ContentParts {
		if part.Type == ai.ContentTypeText {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// veniceToGeneric converts a decoded Venice response to the provider-agnostic
// ai.ChatResponse format. Only the first choice is considered; Venice returns
// a single choice for non-batched requests.
func veniceToGeneric(response veniceResponse) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:      response.ID,
		Model:   response.Model,
		Object:  "chat.completion",
		Created: response.Created,
	}
	if result.Created == 0 {
		result.Created = time.Now().Unix()
	}

	if len(response.Choices) > 0 {
		choice := response.Choices[0]
		result.Content = choice.Message.Content
		result.FinishReason = choice.FinishReason
	}

	if response.Usage != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
		}
	}

	return result
}
