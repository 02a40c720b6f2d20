package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dechbar/kpause/internal/events"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *stubWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a deadline")
	}
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *stubWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishMeasured(t *testing.T) {
	w := &stubWriter{}
	p := NewKafkaPublisherWithWriter(w)

	evt := events.KPMeasured{
		MeasurementID: "m-1",
		MeasuredAt:    time.Date(2025, 6, 15, 6, 30, 0, 0, time.UTC),
		Attempts:      []int{30, 32},
		AttemptCount:  2,
		Score:         31,
		TimeOfDay:     "morning",
		Valid:         true,
		Rating:        "good",
		Version:       events.KPMeasuredVersion,
	}
	require.NoError(t, p.PublishMeasured(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "m-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, EventTypeMeasured, string(msg.Headers[0].Value))

	var decoded events.KPMeasured
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, evt.Attempts, decoded.Attempts)
	assert.Equal(t, 31, decoded.Score)
	assert.True(t, evt.MeasuredAt.Equal(decoded.MeasuredAt))
}

func TestKafkaPublisher_PublishDeletedWrapsError(t *testing.T) {
	w := &stubWriter{err: errors.New("leader not available")}
	p := NewKafkaPublisherWithWriter(w)

	err := p.PublishDeleted(context.Background(), events.KPDeleted{MeasurementID: "m-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EventTypeDeleted)
	assert.ErrorIs(t, err, w.err)
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &stubWriter{}
	require.NoError(t, NewKafkaPublisherWithWriter(w).Close())
	assert.True(t, w.closed)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishMeasured(context.Background(), events.KPMeasured{}))
	assert.NoError(t, p.PublishDeleted(context.Background(), events.KPDeleted{}))
	assert.NoError(t, p.Close())
}
