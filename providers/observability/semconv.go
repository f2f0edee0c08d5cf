package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the LLM provider (e.g., "venice", "anthropic")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier (e.g., "most_intelligent")
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMResponseID is the unique response identifier from the provider
	AttrLLMResponseID = "llm.response.id"

	// AttrLLMFinishReason is the reason the generation finished
	AttrLLMFinishReason = "llm.finish_reason"

	// AttrLLMTokensTotal is the total number of tokens
	AttrLLMTokensTotal = "llm.tokens.total" // #nosec G101 -- Not a credential, token refers to LLM tokens
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP request method
	AttrHTTPMethod = "http.method"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body_size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body_size"
)

// --- Exchange Record Attributes ---

const (
	// AttrExchangeID is the identifier shared by the request and response
	// records of one synthetic exchange
	AttrExchangeID = "exchange.id"

	// AttrExchangeSynthetic marks a record as constructed rather than
	// captured from a real transport
	AttrExchangeSynthetic = "exchange.synthetic"
)

// --- Request/Response Attributes ---

const (
	// AttrRequestMessagesCount is the number of messages in the request
	AttrRequestMessagesCount = "request.messages_count"
)

// --- Span/Event Names ---

const (
	// EventLLMRequestStart marks the beginning of a provider request
	EventLLMRequestStart = "llm.request.start"

	// EventLLMRequestEnd marks the completion of a provider request
	EventLLMRequestEnd = "llm.request.end"
)
