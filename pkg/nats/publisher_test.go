package nats

import (
	"context"
	"os"
	"testing"
	"time"

	"shopping-assistant-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.TURN_RECORDED", Subject(events.TypeTurnRecorded))
}

func TestPublisherIntegration(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("Skipping integration test: NATS_URL not set")
	}
	p, err := NewPublisher(url)
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, p.Publish(ctx, events.NewUserCleared("it-user", time.Now())))
}
