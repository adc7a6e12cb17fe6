package store

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/denali-labs/reagent/chatmodel"
	"github.com/denali-labs/reagent/pkg/llms"
)

// ErrInvalidChatContext is returned when the context carries no chat ID.
var ErrInvalidChatContext = errors.New("invalid chat context")

type inMemory struct {
	mu      sync.RWMutex
	storage map[string][]llms.Message
}

// NewMemoryStore returns an in-memory MessageStore.
// State does not survive the process; durable history is out of scope.
func NewMemoryStore() MessageStore {
	return &inMemory{}
}

func (m *inMemory) Messages(ctx context.Context) []llms.Message {
	chatID := chatmodel.GetChatID(ctx)
	if chatID == "" {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.storage[chatID])
}

func (m *inMemory) Add(ctx context.Context, msgs ...llms.Message) error {
	chatID := chatmodel.GetChatID(ctx)
	if chatID == "" {
		return errors.WithStack(ErrInvalidChatContext)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string][]llms.Message)
	}
	m.storage[chatID] = append(m.storage[chatID], msgs...)
	return nil
}

func (m *inMemory) Reset(ctx context.Context) error {
	chatID := chatmodel.GetChatID(ctx)
	if chatID == "" {
		return errors.WithStack(ErrInvalidChatContext)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage != nil {
		delete(m.storage, chatID)
	}
	return nil
}
