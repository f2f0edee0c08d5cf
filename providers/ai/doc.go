// Package ai defines the provider-agnostic chat model shared by all LLM
// provider implementations: [ChatRequest], [Message], and [ChatResponse],
// plus the [Provider] interface every provider must satisfy.
//
// It also defines [RawResponse], the explicit contract for raw provider
// responses. Callbacks written against one provider's raw-response object only
// ever touch a small surface — the request record, the response record, and a
// Parse method returning a normalized assistant message — so that surface is
// an interface here rather than an implicit structural convention. Providers
// whose transport differs (or that synthesize their exchange metadata, see
// [RequestRecord].Synthetic) remain interchangeable to the consumer.
package ai
