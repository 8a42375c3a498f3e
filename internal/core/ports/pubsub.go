package ports

const (
	// TopicTrade is the topic of purchase notifications, one message per
	// settled swap of any direction.
	TopicTrade = "trade"
	// TopicLiquidity is the topic of investment and divestment notifications.
	TopicLiquidity = "liquidity"
)

// Subscription represents a registered consumer of a topic.
type Subscription interface {
	Topic() string
	Id() string
	Channel() <-chan string
}

// PubSubService defines the methods of the notification service. Publishing
// happens after state mutation commits and is fire-and-forget: no
// acknowledgment is expected and failures never propagate to the caller.
type PubSubService interface {
	// Subscribe adds a new subscription for the requested topic.
	Subscribe(topic string) (Subscription, error)
	// Unsubscribe removes the subscription with the given id for a topic.
	Unsubscribe(topic, id string) error
	// Publish publishes a message for a certain topic. All clients subscribed
	// for such topic will receive the message.
	Publish(topic, message string) error
}
