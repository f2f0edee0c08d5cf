// Package parse provides utilities for extracting and converting structured
// data from raw LLM text output. Venice models are not tool-aware, so agents
// drive structured behaviour by asking the model to embed JSON in its text
// reply; models frequently wrap that JSON in narrative prose or markdown code
// fences. This package applies a layered recovery strategy — candidate
// extraction, then automatic JSON repair — before falling back to a clear
// error.
//
// The main entry points are [ExtractJSON] for locating a JSON candidate
// inside prose and the generic [ParseStringAs] function, which handles both
// primitive types (string, bool, int, float) and complex types (structs,
// maps, slices) in a single, uniform API.
package parse
