package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type pingEvent struct{ N int }
type otherEvent struct{}

func TestSubscribePublish(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []int
	unsubscribe := Subscribe(func(_ context.Context, e pingEvent) {
		got = append(got, e.N)
	})

	Publish(context.Background(), pingEvent{N: 1})
	Publish(context.Background(), otherEvent{})
	Publish(context.Background(), pingEvent{N: 2})
	require.Equal(t, []int{1, 2}, got)

	unsubscribe()
	Publish(context.Background(), pingEvent{N: 3})
	require.Equal(t, []int{1, 2}, got)
}

func TestPublishWithoutBusIsNoop(t *testing.T) {
	Use(nil)
	Publish(context.Background(), pingEvent{N: 1})

	unsubscribe := Subscribe(func(context.Context, pingEvent) {})
	unsubscribe()
}

func TestMultipleSubscribers(t *testing.T) {
	Use(New())
	defer Use(nil)

	count := 0
	Subscribe(func(context.Context, pingEvent) { count++ })
	Subscribe(func(context.Context, pingEvent) { count++ })

	Publish(context.Background(), pingEvent{})
	require.Equal(t, 2, count)
}
