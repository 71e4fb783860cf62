package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err := Encode(NewTurnRecorded("u1", "greeting", 1, 0, at))
	require.NoError(t, err)

	evt, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, TypeTurnRecorded, evt.Type)
	assert.Equal(t, "greeting", evt.Data["intent"])
	assert.True(t, at.Equal(evt.OccurredAt))

	_, err = Decode([]byte(`{"data":{}}`))
	assert.Error(t, err)
	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestWatermillPublisherDeliversToSubscribers(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := pubSub.Subscribe(ctx, "assistant.events")
	require.NoError(t, err)

	publisher := NewWatermillPublisher(pubSub, "assistant.events")
	require.NoError(t, publisher.Publish(ctx, NewUserCleared("u1", time.Now())))

	select {
	case msg := <-messages:
		evt, err := Decode(msg.Payload)
		require.NoError(t, err)
		assert.Equal(t, TypeUserCleared, evt.Type)
		assert.Equal(t, TypeUserCleared, msg.Metadata.Get("event_type"))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("event not delivered")
	}
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, Event) error { return f.err }

func TestMultiPublisherJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	multi := MultiPublisher{NopPublisher{}, nil, failingPublisher{err: boom}}

	err := multi.Publish(context.Background(), NewUserCleared("u1", time.Now()))

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, MultiPublisher{NopPublisher{}}.Publish(context.Background(), NewUserCleared("u1", time.Now())))
}
