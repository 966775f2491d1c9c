package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func waitForStatus(t *testing.T, s *Scheduler, name string, want JobStatus) *JobResult {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		res, err := s.Status(name)
		require.NoError(t, err)
		if res.Status == want {
			return res
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %s", name, want)
	return nil
}

func TestRegisteredJobStartsIdle(t *testing.T) {
	s := New(zap.NewNop())
	s.Register(Job{Name: "noop", Description: "does nothing", Interval: time.Hour,
		Fn: func(context.Context) error { return nil }})

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "noop", list[0].Name)
	assert.Equal(t, StatusIdle, list[0].Status)
	assert.Nil(t, list[0].LastRunAt)
}

func TestRunTriggersJobAndRecordsFulfill(t *testing.T) {
	ran := make(chan struct{}, 1)
	s := New(zap.NewNop())
	s.Register(Job{Name: "job", Interval: time.Hour, Fn: func(context.Context) error {
		ran <- struct{}{}
		return nil
	}})

	require.NoError(t, s.Run(context.Background(), "job"))
	<-ran

	res := waitForStatus(t, s, "job", StatusFulfill)
	assert.Empty(t, res.Message)
}

func TestRunRecordsRejectWithMessage(t *testing.T) {
	s := New(zap.NewNop())
	s.Register(Job{Name: "job", Interval: time.Hour, Fn: func(context.Context) error {
		return errors.New("boom")
	}})

	require.NoError(t, s.Run(context.Background(), "job"))

	res := waitForStatus(t, s, "job", StatusReject)
	assert.Equal(t, "boom", res.Message)
}

func TestUnknownJob(t *testing.T) {
	s := New(zap.NewNop())
	assert.Error(t, s.Run(context.Background(), "missing"))

	_, err := s.Status("missing")
	assert.Error(t, err)
}
