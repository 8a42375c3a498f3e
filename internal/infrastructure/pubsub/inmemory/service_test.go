package inmemory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapdex-network/swapdex-daemon/internal/core/ports"
)

func TestService_PublishSubscribe(t *testing.T) {
	svc := NewService()

	sub1, err := svc.Subscribe(ports.TopicTrade)
	require.NoError(t, err)
	sub2, err := svc.Subscribe(ports.TopicTrade)
	require.NoError(t, err)
	liquiditySub, err := svc.Subscribe(ports.TopicLiquidity)
	require.NoError(t, err)

	assert.Equal(t, ports.TopicTrade, sub1.Topic())
	assert.NotEqual(t, sub1.Id(), sub2.Id())

	require.NoError(t, svc.Publish(ports.TopicTrade, "swap settled"))

	assert.Equal(t, "swap settled", <-sub1.Channel())
	assert.Equal(t, "swap settled", <-sub2.Channel())
	assert.Empty(t, liquiditySub.Channel())

	// publishing without subscribers is not an error
	require.NoError(t, svc.Publish("unknown topic", "message"))
}

func TestService_Unsubscribe(t *testing.T) {
	svc := NewService()

	sub, err := svc.Subscribe(ports.TopicTrade)
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(ports.TopicTrade, sub.Id()))

	// the channel is closed and no message is delivered anymore
	_, open := <-sub.Channel()
	assert.False(t, open)
	require.NoError(t, svc.Publish(ports.TopicTrade, "swap settled"))

	err = svc.Unsubscribe(ports.TopicTrade, sub.Id())
	require.Error(t, err)
}

func TestFailingService_Subscribe(t *testing.T) {
	svc := NewService()

	_, err := svc.Subscribe("")
	require.Error(t, err)
}

func TestService_SlowSubscriber(t *testing.T) {
	svc := NewService()

	sub, err := svc.Subscribe(ports.TopicTrade)
	require.NoError(t, err)

	// overflowing the buffer drops messages instead of blocking
	for i := 0; i < msgBufferSize+10; i++ {
		require.NoError(t, svc.Publish(ports.TopicTrade, "message"))
	}
	assert.Len(t, sub.Channel(), msgBufferSize)
}
