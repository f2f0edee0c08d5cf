// Package venice implements the [ai.Provider] interface for Venice's
// OpenAI-style chat completions API, and adapts Venice payloads to the
// [ai.RawResponse] surface consumed by callbacks written against
// Anthropic-style raw responses.
//
// Venice speaks the chat-completions dialect (choices/message/content) while
// the rest of this module speaks block-content messages, so the package has
// two halves: conversion.go translates requests and responses between the two
// schemas, and exchange.go wraps a decoded payload in an [APIResponse] whose
// request and response records are explicitly synthetic (see
// [ai.RequestRecord].Synthetic).
//
// The primary entry point is [New], which reads VENICE_API_KEY and
// VENICE_API_BASE_URL from the environment. [Adapt] is the standalone
// payload adapter for callers that performed the provider call themselves.
package venice
