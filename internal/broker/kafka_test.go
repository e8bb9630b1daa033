package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Shriramtantry/task-manager/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestActivityPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewActivityPublisher(w, nil)

	a := models.Activity{
		ID:         "0b7c",
		OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Type:       models.ActivityTaskCreated,
		UserID:     7,
		Message:    "task created",
	}
	require.NoError(t, p.Publish(context.Background(), a))
	require.Len(t, w.msgs, 1)

	assert.Equal(t, "activity.TASK_CREATED.0b7c", string(w.msgs[0].Key))

	var got models.Activity
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.UserID, got.UserID)
	assert.True(t, a.OccurredAt.Equal(got.OccurredAt))
}

func TestActivityPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("no brokers")}
	p := NewActivityPublisher(w, nil)

	err := p.Publish(context.Background(), models.Activity{ID: "x", Type: models.ActivityTaskDeleted})
	require.Error(t, err)
	assert.ErrorIs(t, err, w.err)
}

func TestActivityPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewActivityPublisher(w, nil).Close())
	assert.True(t, w.closed)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"k1:9092", "k2:9092"}, "task-activity", nil)
	assert.Equal(t, "task-activity", w.Topic)
	assert.True(t, w.Async)
	assert.True(t, w.AllowAutoTopicCreation)
	require.NotNil(t, w.Addr)
	require.NotNil(t, w.Completion)
	w.Completion(nil, errors.New("broker down"))
}
