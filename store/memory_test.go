package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denali-labs/reagent/chatmodel"
	"github.com/denali-labs/reagent/pkg/llms"
	"github.com/denali-labs/reagent/store"
)

func Test_MemoryStore(t *testing.T) {
	st := store.NewMemoryStore()

	msg1 := llms.MessageFromText(llms.RoleHuman, "Hello")
	msg2 := llms.MessageFromText(llms.RoleAI, "Hi there!")

	ctx := context.Background()
	expErr := "invalid chat context"
	assert.EqualError(t, st.Add(ctx, msg1), expErr)
	assert.EqualError(t, st.Reset(ctx), expErr)
	assert.Empty(t, st.Messages(ctx))

	ctx = chatmodel.WithChatContext(ctx, chatmodel.NewChatContext("chat1", nil))

	require.NoError(t, st.Add(ctx, msg1, msg2))

	messages := st.Messages(ctx)
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello", messages[0].Content)
	assert.Equal(t, "Hi there!", messages[1].Content)

	// another chat sees nothing
	other := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("chat2", nil))
	assert.Empty(t, st.Messages(other))

	require.NoError(t, st.Reset(ctx))
	assert.Empty(t, st.Messages(ctx))
}
