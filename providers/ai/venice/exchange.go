package venice

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"computeruse/providers/ai"
)

// contentPath is the field path of the assistant text inside a Venice chat
// completions payload. Extraction must tolerate absence at every step.
const contentPath = "choices.0.message.content"

// APIResponse wraps a Venice chat-completion payload behind the
// [ai.RawResponse] surface. Venice calls are made through a plain HTTP
// round-trip rather than an SDK that captures its own exchange, so the
// request and response records are synthesized at construction time and
// marked Synthetic; the paired records share one ExchangeID.
//
// An APIResponse holds only data copied or serialized at construction and is
// safe to share across goroutines.
type APIResponse struct {
	request     ai.RequestRecord
	response    ai.ResponseRecord
	payloadText string
}

var _ ai.RawResponse = (*APIResponse)(nil)

// Adapt wraps a decoded Venice payload in an [APIResponse].
//
// payload is the decoded JSON body returned by Venice's chat completions
// endpoint; it is not validated — field access in [APIResponse.Parse] is
// defensive and degrades to empty text. requestData is the payload that was
// sent and must serialize to JSON: a serialization failure is returned as an
// error because recording a corrupt request body would present broken data as
// genuine request evidence. requestHeaders are the headers sent with the
// outbound call; they are copied, so later mutation of the caller's map does
// not affect the record.
func Adapt(payload map[string]any, requestData any, requestHeaders map[string]string) (*APIResponse, error) {
	return adapt(payload, requestData, requestHeaders, defaultBaseURL+chatCompletionsEndpoint)
}

func adapt(payload map[string]any, requestData any, requestHeaders map[string]string, url string) (*APIResponse, error) {
	requestBody, err := json.Marshal(requestData)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request data: %w", err)
	}

	payloadText, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize response payload: %w", err)
	}

	exchangeID := uuid.NewString()

	return &APIResponse{
		request: ai.RequestRecord{
			Method:     http.MethodPost,
			URL:        url,
			Headers:    maps.Clone(requestHeaders),
			Body:       requestBody,
			ExchangeID: exchangeID,
			Synthetic:  true,
		},
		response: ai.ResponseRecord{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Text:       string(payloadText),
			ExchangeID: exchangeID,
			Synthetic:  true,
		},
		payloadText: string(payloadText),
	}, nil
}

// HTTPRequest returns the synthetic request record. Headers and body are
// copied so the caller cannot mutate the wrapper's state.
func (r *APIResponse) HTTPRequest() ai.RequestRecord {
	record := r.request
	record.Headers = maps.Clone(r.request.Headers)
	record.Body = append([]byte(nil), r.request.Body...)
	return record
}

// HTTPResponse returns the synthetic response record, with headers copied.
func (r *APIResponse) HTTPResponse() ai.ResponseRecord {
	record := r.response
	record.Headers = maps.Clone(r.response.Headers)
	return record
}

// Parse extracts the assistant's reply from the wrapped payload and returns
// it normalized to block-content form: role "assistant" with a single text
// block. The choices[0].message.content path is walked with gjson so a
// missing or empty step at any level yields empty text instead of an error.
func (r *APIResponse) Parse() ai.ParsedMessage {
	text := gjson.Get(r.payloadText, contentPath).String()

	return ai.ParsedMessage{
		Role: string(ai.RoleAssistant),
		Content: []ai.ContentBlock{
			{Type: "text", Text: text},
		},
	}
}

// Payload returns a fresh decode of the wrapped payload. Each call produces
// an independent map, preserving the wrapper's immutability.
func (r *APIResponse) Payload() map[string]any {
	var payload map[string]any
	// payloadText came from json.Marshal at construction, so this cannot fail.
	_ = json.Unmarshal([]byte(r.payloadText), &payload)
	return payload
}
