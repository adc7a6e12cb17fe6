// Package llms defines the chat model abstraction shared by all providers:
// the Model interface, transcript messages with roles, generation responses
// with token usage, and functional call options.
package llms
