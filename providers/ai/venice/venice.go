package venice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/time/rate"

	"computeruse/internal/utils"
	"computeruse/providers/ai"
	"computeruse/providers/observability"
)

const (
	// defaultBaseURL is the canonical base URL for Venice's API.
	defaultBaseURL = "https://api.venice.ai/api/v1"

	// chatCompletionsEndpoint is the path for the chat completions endpoint.
	chatCompletionsEndpoint = "/chat/completions"

	// defaultMaxTokens is applied when the request carries no generation config.
	defaultMaxTokens = 4096
)

// VeniceProvider implements [ai.Provider] for Venice's chat completions API.
// Use [New] to construct a ready-to-use instance.
type VeniceProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// New returns a [VeniceProvider] initialized from environment variables.
// It reads VENICE_API_KEY for authentication and VENICE_API_BASE_URL for the
// endpoint base (defaulting to https://api.venice.ai/api/v1 when unset).
// Use [VeniceProvider.WithAPIKey] and [VeniceProvider.WithBaseURL] to
// override these values after construction.
func New() *VeniceProvider {
	apiKey := os.Getenv("VENICE_API_KEY")
	baseURL := os.Getenv("VENICE_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &VeniceProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key used for authenticating requests and returns the
// provider so calls can be chained. It overrides the value read from VENICE_API_KEY.
func (p *VeniceProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL and returns the provider so calls can
// be chained. Use this when targeting a proxy or local testing endpoint.
func (p *VeniceProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient replaces the default [http.Client] used for API calls and
// returns the provider so calls can be chained. Useful for injecting custom
// timeouts, transport layers, or test doubles.
func (p *VeniceProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// WithQPS limits outbound calls to maxQPS requests per second with a burst of
// one, returning *VeniceProvider so the option remains accessible without an
// interface cast. A maxQPS of zero or less removes the limit.
func (p *VeniceProvider) WithQPS(maxQPS float64) *VeniceProvider {
	if maxQPS <= 0 {
		p.limiter = nil
		return p
	}
	p.limiter = rate.NewLimiter(rate.Limit(maxQPS), 1)
	return p
}

// buildHeaders reports the headers that accompany every Venice request, in
// the form recorded on the synthetic request record. Authorization itself is
// injected by the HTTP helper from the apiKey.
func (p *VeniceProvider) buildHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + p.apiKey,
		"Content-Type":  "application/json",
	}
}

// SendMessage implements [ai.Provider] by sending a synchronous chat request
// to Venice and returning the response mapped to the generic
// [ai.ChatResponse] format.
func (p *VeniceProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	response, _, err := p.SendMessageRaw(ctx, request)
	return response, err
}

// SendMessageRaw behaves like SendMessage but additionally returns the
// [APIResponse] wrapper so callbacks written against the [ai.RawResponse]
// surface can inspect the exchange. It returns an error if the API key is
// unset, the HTTP request fails, or the response body cannot be decoded.
func (p *VeniceProvider) SendMessageRaw(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, *APIResponse, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventLLMRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, "venice"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, request.Model),
		)
		defer span.AddEvent(observability.EventLLMRequestEnd)
	}

	if observer != nil {
		observer.Trace(ctx, "Venice provider preparing request",
			observability.String(observability.AttrLLMProvider, "venice"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, request.Model),
			observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
		)
	}

	// Guard against missing credentials before making a network call.
	if p.apiKey == "" {
		return nil, nil, fmt.Errorf("VENICE_API_KEY is not set")
	}

	// Client-side QPS limiting; a cancelled context aborts the wait.
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	url := p.baseURL + chatCompletionsEndpoint

	// Convert the generic request to the Venice chat completions wire format.
	veniceReq := requestToVenice(request, defaultMaxTokens)

	httpResponse, rawBody, resp, err := utils.DoPostSync[veniceResponse](
		ctx,
		p.client,
		url,
		p.apiKey,
		veniceReq,
	)
	if err != nil {
		if observer != nil {
			observer.Trace(ctx, "HTTP request failed", observability.Error(err))
		}
		return nil, nil, err
	}

	if resp == nil {
		return nil, nil, fmt.Errorf("empty response from Venice API: %s", httpResponse.Status)
	}

	// Re-decode the exact body into the loose map form the wrapper records.
	var payload map[string]any
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return nil, nil, fmt.Errorf("failed to decode Venice payload: %w", err)
	}

	raw, err := adapt(payload, veniceReq, p.buildHeaders(), url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to adapt Venice response: %w", err)
	}

	// Convert the Venice-specific response to the provider-agnostic format.
	result := veniceToGeneric(*resp)

	// Venice usually echoes the model name; fall back to the request model so
	// callers always have a non-empty Model field.
	if result.Model == "" {
		result.Model = request.Model
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMResponseID, result.Id),
			observability.String(observability.AttrLLMFinishReason, result.FinishReason),
			observability.Int(observability.AttrHTTPStatusCode, httpResponse.StatusCode),
			observability.String(observability.AttrExchangeID, raw.request.ExchangeID),
		)
		if result.Usage != nil {
			span.SetAttributes(observability.Int(observability.AttrLLMTokensTotal, result.Usage.TotalTokens))
		}
	}

	return result, raw, nil
}

// IsStopMessage reports whether message represents a terminal response that
// requires no further action. A nil message, a response whose FinishReason is
// "stop", "length", or "content_filter", or a response with no content are
// all treated as stop signals. Venice models do not emit tool calls, so there
// is no tool-call exception here.
func (p *VeniceProvider) IsStopMessage(message *ai.ChatResponse) bool {
	if message == nil {
		return true
	}

	if message.FinishReason == "stop" || message.FinishReason == "length" || message.FinishReason == "content_filter" {
		return true
	}

	return message.Content == ""
}
