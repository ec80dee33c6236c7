package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryDelay(t *testing.T) {
	cases := []struct {
		retried int
		want    time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{2, 6 * time.Second},
		{3, 8 * time.Second},
		{4, 10 * time.Second},
		{10, 10 * time.Second},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RetryDelay(c.retried, nil, nil))
	}
}

func TestNewTask(t *testing.T) {
	payload := &GradeAssignmentPayload{AssignmentId: "abc123"}
	task, err := NewTask(TypeAssignmentGrade, payload)
	require.NoError(t, err)
	assert.Equal(t, TypeAssignmentGrade, task.Type())

	var decoded GradeAssignmentPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, "abc123", decoded.AssignmentId)
}

func TestSyncDispatcherRecordsTasks(t *testing.T) {
	d := &SyncDispatcher{}
	task, err := NewTask(TypePostIngest, &PostIngestPayload{AttachmentId: "a1"})
	require.NoError(t, err)

	id, err := d.Dispatch(context.Background(), task)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, d.Dispatched, 1)
	assert.Equal(t, TypePostIngest, d.Dispatched[0].Type())

	_, err = d.DispatchIn(context.Background(), task, 5*time.Second)
	require.NoError(t, err)
	require.Len(t, d.Delays, 2)
	assert.Equal(t, 5*time.Second, d.Delays[1])
}
