package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingExecutor records executed job types and can fail on demand
type recordingExecutor struct {
	mu       sync.Mutex
	executed []JobType
	failOn   map[JobType]error
	done     chan JobType
}

func newRecordingExecutor() *recordingExecutor {
	return &recordingExecutor{
		failOn: make(map[JobType]error),
		done:   make(chan JobType, 100),
	}
}

func (e *recordingExecutor) Execute(_ context.Context, job *Job) error {
	e.mu.Lock()
	e.executed = append(e.executed, job.Type)
	e.mu.Unlock()
	e.done <- job.Type

	if err, ok := e.failOn[job.Type]; ok {
		return err
	}
	return nil
}

func (e *recordingExecutor) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.executed)
}

func waitForJob(t *testing.T, e *recordingExecutor, want JobType) {
	t.Helper()
	select {
	case got := <-e.done:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for job %s", want)
	}
}

func TestJob_Lifecycle(t *testing.T) {
	job := NewJob(JobTypePendingSweep, 3)

	assert.NotEqual(t, "", job.ID.String())
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 3, job.MaxRetries)
	assert.Nil(t, job.StartedAt)

	job.Start()
	assert.Equal(t, JobStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)

	job.Complete()
	assert.Equal(t, JobStatusSuccess, job.Status)
	require.NotNil(t, job.CompletedAt)
}

func TestJob_FailAndRetry(t *testing.T) {
	job := NewJob(JobTypeLinkCleanup, 2)

	job.Start()
	job.Fail("smtp unavailable")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "smtp unavailable", job.Error)
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(time.Minute)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	assert.Equal(t, "", job.Error)
	require.NotNil(t, job.NextRetryAt)
	assert.True(t, job.NextRetryAt.After(time.Now()))
}

func TestJob_RetryBudgetExhausted(t *testing.T) {
	job := NewJob(JobTypePaymentReminders, 1)

	job.Start()
	job.Fail("boom")
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(time.Millisecond)
	job.Start()
	job.Fail("boom again")
	assert.False(t, job.ShouldRetry())
}

func TestScheduler_SubmitWhenStopped(t *testing.T) {
	sched := NewScheduler(DefaultSchedulerConfig(), newRecordingExecutor(), zap.NewNop())

	err := sched.SubmitJob(NewJob(JobTypePendingSweep, 0))
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestScheduler_ExecutesSubmittedJob(t *testing.T) {
	executor := newRecordingExecutor()
	sched := NewScheduler(DefaultSchedulerConfig(), executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, sched.Start(ctx))
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sched.Stop(stopCtx)
	}()

	require.NoError(t, sched.Schedule(JobTypeAppointmentReminders))
	waitForJob(t, executor, JobTypeAppointmentReminders)
}

func TestScheduler_RetriesFailedJob(t *testing.T) {
	executor := newRecordingExecutor()
	executor.failOn[JobTypeLinkCleanup] = errors.New("db unavailable")

	config := DefaultSchedulerConfig()
	config.RetryAttempts = 2
	config.RetryDelay = 0

	sched := NewScheduler(config, executor, zap.NewNop())
	require.NoError(t, sched.Start(context.Background()))
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sched.Stop(stopCtx)
	}()

	require.NoError(t, sched.Schedule(JobTypeLinkCleanup))

	// Initial attempt plus two retries
	waitForJob(t, executor, JobTypeLinkCleanup)
	waitForJob(t, executor, JobTypeLinkCleanup)
	waitForJob(t, executor, JobTypeLinkCleanup)

	assert.Equal(t, 3, executor.count())
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	sched := NewScheduler(DefaultSchedulerConfig(), newRecordingExecutor(), zap.NewNop())
	require.NoError(t, sched.Start(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sched.Stop(stopCtx))
	require.NoError(t, sched.Stop(stopCtx))
}

func TestAllJobTypes(t *testing.T) {
	types := AllJobTypes()
	assert.Len(t, types, 6)
	assert.Contains(t, types, JobTypePendingSweep)
	assert.Contains(t, types, JobTypeRevenueRefresh)
}
