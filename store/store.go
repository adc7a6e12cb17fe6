// Package store keeps per-chat message history for the lifetime of the
// process. History is keyed by the chat ID carried in context.Context.
package store

import (
	"context"

	"github.com/denali-labs/reagent/pkg/llms"
)

// MessageStore keeps the conversation transcript between agent runs.
type MessageStore interface {
	// Messages returns the stored transcript for the chat in ctx.
	Messages(ctx context.Context) []llms.Message
	// Add appends messages to the transcript for the chat in ctx.
	Add(ctx context.Context, msgs ...llms.Message) error
	// Reset clears the transcript for the chat in ctx.
	Reset(ctx context.Context) error
}
