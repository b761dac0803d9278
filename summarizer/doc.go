// Package summarizer contains concrete core.Summarizer implementations and
// the shared prompt/response plumbing they build on. The provider adapters
// live in subpackages (openai, anthropic); this package holds the strict
// JSON insight format, its parser, and a scripted Mock for tests.
package summarizer
