package observable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestGetSet(t *testing.T) {
	v := New(1)
	assert.Equal(t, 1, v.Get())
	v.Set(2)
	assert.Equal(t, 2, v.Get())
}

func TestSubscribeYieldsCurrentThenUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := New("unset")
	ch := v.Subscribe(ctx)
	assert.Equal(t, "unset", receive(t, ch))

	v.Set("set")
	assert.Equal(t, "set", receive(t, ch))
}

func TestSlowSubscriberSeesLatest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := New(0)
	ch := v.Subscribe(ctx)
	v.Set(1)
	v.Set(2)
	v.Set(3)

	assert.Equal(t, 3, receive(t, ch))
	select {
	case got := <-ch:
		t.Fatalf("unexpected extra value %d", got)
	default:
	}
}

func TestSubscribeClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	v := New(0)
	ch := v.Subscribe(ctx)
	<-ch
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Setting after the subscriber left must not panic or block.
	v.Set(1)
	assert.Equal(t, 1, v.Get())
}
