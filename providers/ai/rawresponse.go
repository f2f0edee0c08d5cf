package ai

// RawResponse is the read surface that response-handling callbacks consume.
// It is deliberately narrow: a request record, a response record, and a Parse
// method that yields a normalized assistant message. Implementations must be
// immutable after construction so a value can be handed to logging callbacks
// without coordination.
type RawResponse interface {
	// HTTPRequest returns a record of the outbound call. The returned value
	// is an independent copy.
	HTTPRequest() RequestRecord

	// HTTPResponse returns a record of the provider's reply. The returned
	// value is an independent copy.
	HTTPResponse() ResponseRecord

	// Parse returns the assistant message extracted from the raw payload,
	// normalized to block-content form.
	Parse() ParsedMessage
}

// RequestRecord captures the method, URL, headers, and serialized body of an
// outbound provider call. Synthetic is true when the record was constructed
// to satisfy this contract rather than captured from a real transport, so
// consumers never mistake it for genuine wire evidence.
type RequestRecord struct {
	Method     string            `json:"method"`
	URL        string            `json:"url"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
	ExchangeID string            `json:"exchange_id,omitempty"`
	Synthetic  bool              `json:"synthetic,omitempty"`
}

// ResponseRecord captures the status code, headers, and body text of a
// provider's reply. ExchangeID matches the paired RequestRecord; the two are
// always constructed together.
type ResponseRecord struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Text       string            `json:"text"`
	ExchangeID string            `json:"exchange_id,omitempty"`
	Synthetic  bool              `json:"synthetic,omitempty"`
}

// ParsedMessage is the normalized form of an assistant reply: a role plus an
// ordered sequence of content blocks. Downstream consumers written against
// block-content message schemas process it regardless of which provider
// produced the underlying payload.
type ParsedMessage struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is a single block in a ParsedMessage.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
