package watch

import (
	"context"
	"errors"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/runner"
)

func TestLoop_ClosedStreams(t *testing.T) {
	t.Parallel()

	w := New(runner.New(runner.Deps{}, runner.Options{}), nil, Options{})

	events := make(chan fsnotify.Event)
	close(events)
	require.ErrorIs(t, w.loop(context.Background(), nil, events, nil), ErrWatcherClosed)

	errs := make(chan error, 1)
	errs <- errors.New("overflow")
	close(errs)
	require.ErrorIs(t, w.loop(context.Background(), nil, nil, errs), ErrWatcherClosed)
}

func TestLoop_CanceledContext(t *testing.T) {
	t.Parallel()

	w := New(runner.New(runner.Deps{}, runner.Options{}), nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, w.loop(ctx, nil, make(chan fsnotify.Event), make(chan error)))
}
