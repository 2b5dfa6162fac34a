package archiver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/repair-workshop/internal/model"
)

type fakeStore struct {
	cutoffs chan time.Time
}

func (f *fakeStore) ArchiveExpired(_ context.Context, cutoff time.Time) []*model.RepairRequest {
	f.cutoffs <- cutoff
	return nil
}

func TestSweepUsesDwellCutoff(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	fs := &fakeStore{cutoffs: make(chan time.Time, 1)}
	w := &Worker{store: fs, period: DefaultPeriod, dwell: DefaultDwell, now: func() time.Time { return now }}

	w.sweep(context.Background())

	got := <-fs.cutoffs
	assert.Equal(t, now.Add(-12*time.Hour), got)
}

func TestRunSweepsImmediately(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{cutoffs: make(chan time.Time, 1)}
	w := New(fs)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	// The first sweep happens before the first tick.
	select {
	case <-fs.cutoffs:
	case <-time.After(time.Second):
		t.Fatal("expected an immediate sweep on start")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	w := New(&fakeStore{cutoffs: make(chan time.Time, 1)})
	require.NotNil(t, w.now)
	assert.Equal(t, 12*time.Hour, w.period)
	assert.Equal(t, 12*time.Hour, w.dwell)
}
