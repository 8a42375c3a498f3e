package inmemory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/swapdex-network/swapdex-daemon/internal/core/ports"
)

const msgBufferSize = 32

type subscription struct {
	topic string
	id    string
	ch    chan string
}

func (s *subscription) Topic() string          { return s.topic }
func (s *subscription) Id() string             { return s.id }
func (s *subscription) Channel() <-chan string { return s.ch }

// service is an in-process implementation of ports.PubSubService fanning
// messages out over buffered channels.
type service struct {
	subsByTopic map[string][]*subscription

	lock *sync.RWMutex
}

// NewService returns an in-memory notification service with no
// subscriptions.
func NewService() ports.PubSubService {
	return &service{
		subsByTopic: map[string][]*subscription{},
		lock:        &sync.RWMutex{},
	}
}

func (s *service) Subscribe(topic string) (ports.Subscription, error) {
	if topic == "" {
		return nil, fmt.Errorf("missing topic")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	sub := &subscription{
		topic: topic,
		id:    uuid.New().String(),
		ch:    make(chan string, msgBufferSize),
	}
	s.subsByTopic[topic] = append(s.subsByTopic[topic], sub)

	return sub, nil
}

func (s *service) Unsubscribe(topic, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	subs := s.subsByTopic[topic]
	for i, sub := range subs {
		if sub.id == id {
			s.subsByTopic[topic] = append(subs[:i], subs[i+1:]...)
			close(sub.ch)
			return nil
		}
	}

	return fmt.Errorf("subscription not found")
}

func (s *service) Publish(topic, message string) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for _, sub := range s.subsByTopic[topic] {
		select {
		case sub.ch <- message:
		default:
			// slow consumer, dropping beats blocking a settlement
			log.WithFields(log.Fields{
				"topic": topic,
				"id":    sub.id,
			}).Warn("dropped notification for slow subscriber")
		}
	}

	return nil
}
