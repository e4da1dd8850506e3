package kafka

import (
	"context"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written []kafkaGo.Message
	err     error
	closed  bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	if f.err != nil {
		return f.err
	}

	f.written = append(f.written, msgs...)

	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true

	return nil
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := Message{Key: "7", Value: map[string]any{"event": "reservation.created", "id": 7}}

	got, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("7"), got.Key)
	assert.JSONEq(t, `{"event":"reservation.created","id":7}`, string(got.Value))

	_, err = (&Message{Key: "bad", Value: make(chan int)}).ToKafkaMessage()
	assert.Error(t, err)
}

func TestPublisher_Publish(t *testing.T) {
	tests := []struct {
		name      string
		writerErr error
		messages  []Message
		wantErr   bool
		wantCount int
	}{
		{
			name:      "writes all messages",
			messages:  []Message{{Key: "1", Value: 1}, {Key: "2", Value: 2}},
			wantCount: 2,
		},
		{
			name:      "writer failure",
			messages:  []Message{{Key: "1", Value: 1}},
			writerErr: errors.New("broker down"),
			wantErr:   true,
		},
		{
			name:     "unencodable value",
			messages: []Message{{Key: "1", Value: func() {}}},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWriter{err: tt.writerErr}
			p := &publisherImpl{topic: "hotel.reservations", writer: w}

			err := p.Publish(context.Background(), tt.messages...)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Len(t, w.written, tt.wantCount)
			assert.NoError(t, p.Close())
			assert.True(t, w.closed)
		})
	}
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}

	assert.NoError(t, p.Publish(context.Background(), Message{Key: "1", Value: 1}))
	assert.NoError(t, p.Close())
}
