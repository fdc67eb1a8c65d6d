package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOverdue(t *testing.T) {
	subject, body, err := RenderOverdue("Kickoff call", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "Overdue Task: Kickoff call", subject)
	assert.Contains(t, body, "Kickoff call")
	assert.Contains(t, body, "January 5, 2024")
}

func TestMockNotifierRecordsAndFails(t *testing.T) {
	m := NewMockNotifier()
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, "a@example.com", "s", "b"))

	m.FailFor["b@example.com"] = true
	require.Error(t, m.Send(ctx, "b@example.com", "s", "b"))

	messages := m.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "a@example.com", messages[0].To)
}
