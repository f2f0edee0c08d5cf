// Package utils provides shared low-level helpers used throughout the
// computeruse internals. It covers the HTTP request helper for synchronous
// JSON round-trips with AI provider APIs, plus generic pointer and string
// utilities.
//
// Key entry points: [DoPostSync] for synchronous JSON round-trips and [Ptr]
// for converting values to pointers.
package utils
