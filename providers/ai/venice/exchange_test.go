package venice

import (
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	"computeruse/providers/ai"
)

// helloPayload is the canonical well-formed payload used across tests.
func helloPayload() map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{
					"content": "Hello",
				},
			},
		},
	}
}

// TestAdapt_ParseWellFormed verifies that a well-formed payload parses into a
// single assistant text block carrying the reply verbatim.
func TestAdapt_ParseWellFormed(t *testing.T) {
	raw, err := Adapt(helloPayload(), map[string]any{"model": "x"}, map[string]string{"Authorization": "Bearer k"})
	if err != nil {
		t.Fatalf("Adapt returned error: %v", err)
	}

	got := raw.Parse()
	want := ai.ParsedMessage{
		Role:    "assistant",
		Content: []ai.ContentBlock{{Type: "text", Text: "Hello"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

// TestAdapt_ParseMissingFields verifies the tolerance policy: any absent step
// along choices[0].message.content yields empty text, never an error.
func TestAdapt_ParseMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"empty payload", map[string]any{}},
		{"empty choices", map[string]any{"choices": []any{}}},
		{"choice without message", map[string]any{"choices": []any{map[string]any{}}}},
		{"message without content", map[string]any{"choices": []any{map[string]any{"message": map[string]any{}}}}},
		{"null content", map[string]any{"choices": []any{map[string]any{"message": map[string]any{"content": nil}}}}},
	}

	want := ai.ParsedMessage{
		Role:    "assistant",
		Content: []ai.ContentBlock{{Type: "text", Text: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := Adapt(tc.payload, map[string]any{"model": "x"}, nil)
			if err != nil {
				t.Fatalf("Adapt returned error: %v", err)
			}
			if got := raw.Parse(); !reflect.DeepEqual(got, want) {
				t.Errorf("Parse() = %+v, want %+v", got, want)
			}
		})
	}
}

// TestAdapt_RequestRecord verifies the synthetic request record: fixed method
// and URL, caller headers, and a body that round-trips to the original
// request data.
func TestAdapt_RequestRecord(t *testing.T) {
	requestData := map[string]any{
		"model":      "most_intelligent",
		"max_tokens": float64(4096),
	}
	headers := map[string]string{"Authorization": "Bearer k", "Content-Type": "application/json"}

	raw, err := Adapt(helloPayload(), requestData, headers)
	if err != nil {
		t.Fatalf("Adapt returned error: %v", err)
	}

	record := raw.HTTPRequest()
	if record.Method != http.MethodPost {
		t.Errorf("expected method POST, got %q", record.Method)
	}
	if record.URL != "https://api.venice.ai/api/v1/chat/completions" {
		t.Errorf("unexpected URL %q", record.URL)
	}
	if record.Headers["Authorization"] != "Bearer k" {
		t.Errorf("expected Authorization header to be recorded, got %q", record.Headers["Authorization"])
	}
	if !record.Synthetic {
		t.Error("expected request record to be marked synthetic")
	}

	var decoded map[string]any
	if err := json.Unmarshal(record.Body, &decoded); err != nil {
		t.Fatalf("failed to decode recorded body: %v", err)
	}
	if !reflect.DeepEqual(decoded, requestData) {
		t.Errorf("recorded body = %v, want %v", decoded, requestData)
	}
}

// TestAdapt_ResponseRecord verifies the synthetic response record: status 200,
// JSON content type, and text that round-trips to the original payload.
func TestAdapt_ResponseRecord(t *testing.T) {
	payload := helloPayload()
	raw, err := Adapt(payload, map[string]any{"model": "x"}, nil)
	if err != nil {
		t.Fatalf("Adapt returned error: %v", err)
	}

	record := raw.HTTPResponse()
	if record.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", record.StatusCode)
	}
	if record.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", record.Headers["Content-Type"])
	}
	if !record.Synthetic {
		t.Error("expected response record to be marked synthetic")
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(record.Text), &decoded); err != nil {
		t.Fatalf("failed to decode recorded text: %v", err)
	}
	if !reflect.DeepEqual(decoded, payload) {
		t.Errorf("recorded text = %v, want %v", decoded, payload)
	}
}

// TestAdapt_RecordsPaired verifies that both records are always constructed
// together and share one exchange ID.
func TestAdapt_RecordsPaired(t *testing.T) {
	raw, err := Adapt(helloPayload(), map[string]any{"model": "x"}, nil)
	if err != nil {
		t.Fatalf("Adapt returned error: %v", err)
	}

	request := raw.HTTPRequest()
	response := raw.HTTPResponse()
	if request.ExchangeID == "" || response.ExchangeID == "" {
		t.Fatal("expected both records to carry an exchange ID")
	}
	if request.ExchangeID != response.ExchangeID {
		t.Errorf("exchange IDs differ: %q vs %q", request.ExchangeID, response.ExchangeID)
	}
}

// TestAdapt_SerializationFailure verifies that unserializable request data
// fails construction instead of producing a corrupt request record.
func TestAdapt_SerializationFailure(t *testing.T) {
	_, err := Adapt(helloPayload(), map[string]any{"bad": make(chan int)}, nil)
	if err == nil {
		t.Fatal("expected error for unserializable request data, got nil")
	}
}

// TestAdapt_IndependentWrappers verifies that two wrappers built from the same
// inputs have equal values but no shared mutable state.
func TestAdapt_IndependentWrappers(t *testing.T) {
	payload := helloPayload()
	headers := map[string]string{"Authorization": "Bearer k"}

	first, err := Adapt(payload, map[string]any{"model": "x"}, headers)
	if err != nil {
		t.Fatalf("Adapt returned error: %v", err)
	}
	second, err := Adapt(payload, map[string]any{"model": "x"}, headers)
	if err != nil {
		t.Fatalf("Adapt returned error: %v", err)
	}

	if first == second {
		t.Fatal("expected two distinct wrappers")
	}
	if first.HTTPResponse().Text != second.HTTPResponse().Text {
		t.Error("expected equal response text")
	}

	// Mutating the caller's header map after construction must not leak into
	// either record.
	headers["Authorization"] = "Bearer other"
	if first.HTTPRequest().Headers["Authorization"] != "Bearer k" {
		t.Error("request record shares the caller's header map")
	}

	// Mutating a returned record must not affect subsequent reads.
	record := first.HTTPRequest()
	record.Headers["Authorization"] = "tampered"
	if first.HTTPRequest().Headers["Authorization"] != "Bearer k" {
		t.Error("returned record shares the wrapper's header map")
	}
}

// TestAdapt_ConcreteScenario pins the full documented exchange in one place.
func TestAdapt_ConcreteScenario(t *testing.T) {
	raw, err := Adapt(
		map[string]any{"choices": []any{map[string]any{"message": map[string]any{"content": "Hello"}}}},
		map[string]any{"model": "x"},
		map[string]string{"Authorization": "Bearer k"},
	)
	if err != nil {
		t.Fatalf("Adapt returned error: %v", err)
	}

	parsed := raw.Parse()
	if parsed.Role != "assistant" || len(parsed.Content) != 1 || parsed.Content[0].Text != "Hello" {
		t.Errorf("unexpected parse result: %+v", parsed)
	}
	if raw.HTTPResponse().StatusCode != 200 {
		t.Errorf("expected status 200, got %d", raw.HTTPResponse().StatusCode)
	}
	if raw.HTTPRequest().URL != "https://api.venice.ai/api/v1/chat/completions" {
		t.Errorf("unexpected request URL %q", raw.HTTPRequest().URL)
	}
}

// TestPayload_Independence verifies that Payload returns a fresh map per call.
func TestPayload_Independence(t *testing.T) {
	raw, err := Adapt(helloPayload(), map[string]any{"model": "x"}, nil)
	if err != nil {
		t.Fatalf("Adapt returned error: %v", err)
	}

	first := raw.Payload()
	first["choices"] = nil

	second := raw.Payload()
	if second["choices"] == nil {
		t.Error("Payload() returned a shared map")
	}
}
