package runtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntime_StartIsExactlyOnce(t *testing.T) {
	rt := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rt.Start(context.Background()))
		}()
	}
	wg.Wait()

	assert.True(t, rt.Started())

	first, err := rt.Sessions()
	require.NoError(t, err)
	second, err := rt.Sessions()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRuntime_SessionsBeforeStart(t *testing.T) {
	rt := New()

	_, err := rt.Sessions()
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestRuntime_CloseIsIdempotent(t *testing.T) {
	rt := New()
	require.NoError(t, rt.Start(context.Background()))

	assert.NoError(t, rt.Close())
	assert.NoError(t, rt.Close())

	_, err := rt.Sessions()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRuntime_StartAfterClose(t *testing.T) {
	rt := New()
	require.NoError(t, rt.Close())

	assert.ErrorIs(t, rt.Start(context.Background()), ErrClosed)
}

func TestRuntime_TrackAfterClose(t *testing.T) {
	rt := New()
	require.NoError(t, rt.Start(context.Background()))
	require.NoError(t, rt.Close())

	_, err := rt.Track()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRuntime_CloseDrainsInflight(t *testing.T) {
	rt := New()
	require.NoError(t, rt.Start(context.Background()))

	done, err := rt.Track()
	require.NoError(t, err)

	finished := make(chan struct{})
	go func() {
		_ = rt.Close()
		close(finished)
	}()

	select {
	case <-finished:
		t.Fatal("Close returned before in-flight invocation completed")
	case <-time.After(50 * time.Millisecond):
	}

	done()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Close did not return after invocation completed")
	}
}

func TestRuntime_TrackDoneIsIdempotent(t *testing.T) {
	rt := New()
	require.NoError(t, rt.Start(context.Background()))

	done, err := rt.Track()
	require.NoError(t, err)
	done()
	done() // must not panic the WaitGroup

	assert.NoError(t, rt.Close())
}
