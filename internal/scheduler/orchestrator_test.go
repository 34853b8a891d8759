package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/standings"
	"github.com/fortuna/backstage/internal/testutil"
)

type fakeSource struct {
	mu   sync.Mutex
	rows []standings.Row
	err  error
}

func (f *fakeSource) GetStandings(ctx context.Context) ([]standings.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows, f.err
}

func (f *fakeSource) set(rows []standings.Row, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows, f.err = rows, err
}

func TestRefreshPublishesOnlyChanges(t *testing.T) {
	before := standings.Compute([]string{"Bears", "Hawks"}, nil)
	after := standings.Compute([]string{"Bears"}, nil)
	source := &fakeSource{rows: before}

	sink := new(testutil.MockEventSink)
	sink.On("PublishStandings", mock.Anything, before).Return(nil).Once()
	sink.On("PublishStandings", mock.Anything, after).Return(nil).Once()

	o := NewOrchestrator(source, nil, nil, sink)
	ctx := context.Background()

	require.NoError(t, o.Refresh(ctx))
	require.NoError(t, o.Refresh(ctx))

	source.set(after, nil)
	require.NoError(t, o.Refresh(ctx))
	require.NoError(t, o.Refresh(ctx))

	testutil.VerifyAllMocks(t, sink)
}

func TestPublishedSnapshotSuppressesRefresh(t *testing.T) {
	rows := standings.Compute([]string{"Bears", "Hawks"}, []standings.Result{{Winner: "Bears", Loser: "Hawks"}})
	source := &fakeSource{rows: rows}

	sink := new(testutil.MockEventSink)
	sink.On("PublishGameEvent", mock.Anything, mock.Anything).Return(nil).Once()
	sink.On("PublishStandings", mock.Anything, rows).Return(nil).Once()

	o := NewOrchestrator(source, nil, nil, sink)
	ctx := context.Background()

	require.NoError(t, o.PublishGameEvent(ctx, service.GameEvent{Type: service.EventGameRecorded}))
	require.NoError(t, o.PublishStandings(ctx, rows))
	require.NoError(t, o.Refresh(ctx))

	testutil.VerifyAllMocks(t, sink)
}

func TestPublishCollectsSinkErrors(t *testing.T) {
	failing := new(testutil.MockEventSink)
	failing.On("PublishStandings", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	healthy := new(testutil.MockEventSink)
	healthy.On("PublishStandings", mock.Anything, mock.Anything).Return(nil)

	o := NewOrchestrator(&fakeSource{}, nil, nil, failing)
	o.AddSink(healthy)

	err := o.PublishStandings(context.Background(), []standings.Row{})
	assert.ErrorContains(t, err, "redis down")
	testutil.VerifyAllMocks(t, failing, healthy)
}

func TestRefreshSourceError(t *testing.T) {
	sink := new(testutil.MockEventSink)
	o := NewOrchestrator(&fakeSource{err: errors.New("db down")}, nil, nil, sink)

	assert.Error(t, o.Refresh(context.Background()))
	sink.AssertNotCalled(t, "PublishStandings", mock.Anything, mock.Anything)
}

func TestStartRefreshesUntilCancelled(t *testing.T) {
	rows := standings.Compute([]string{"Bears"}, nil)
	published := make(chan struct{}, 8)

	sink := new(testutil.MockEventSink)
	sink.On("PublishStandings", mock.Anything, rows).Return(nil).Run(func(mock.Arguments) {
		published <- struct{}{}
	})

	o := NewOrchestrator(&fakeSource{rows: rows}, &Config{
		RefreshInterval:      5 * time.Millisecond,
		MaxConsecutiveErrors: 1,
		Backoff:              time.Millisecond,
	}, nil, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		o.Start(ctx)
		close(done)
	}()

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("initial snapshot was not published")
	}

	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	sink.AssertNumberOfCalls(t, "PublishStandings", 1)
}
