package dummy

import (
	"stem-split-worker/src/application/publish"
	"stem-split-worker/src/application/worker"
	"sync"

	"github.com/streadway/amqp"
)

var _ publish.Publisher = &RabbitMQ{}
var _ worker.MessageChannel = &RabbitMQ{}
var _ amqp.Acknowledger = &RabbitMQ{}

type RabbitMQ struct {
	Unavailable    bool
	MessageChannel chan amqp.Delivery

	mutex       sync.Mutex
	closeOnce   sync.Once
	ackCounter  int
	nackCounter int
	deliveryTag uint64
}

func NewRabbitMQ() *RabbitMQ {
	return &RabbitMQ{
		Unavailable:    false,
		MessageChannel: make(chan amqp.Delivery, 100),
	}
}

func (r *RabbitMQ) Publish(msg amqp.Publishing) error {
	if r.Unavailable {
		return NetworkFailure
	}

	r.mutex.Lock()
	r.deliveryTag++
	tag := r.deliveryTag
	r.mutex.Unlock()

	r.MessageChannel <- amqp.Delivery{
		Acknowledger:    r,
		DeliveryTag:     tag,
		ContentType:     msg.ContentType,
		ContentEncoding: msg.ContentEncoding,
		DeliveryMode:    msg.DeliveryMode,
		Timestamp:       msg.Timestamp,
		MessageId:       msg.MessageId,
		Type:            msg.Type,
		Body:            msg.Body,
	}
	return nil
}

func (r *RabbitMQ) Consume(_ string, _ string, _ bool, _ bool, _ bool, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	if r.Unavailable {
		return nil, NetworkFailure
	}

	return r.MessageChannel, nil
}

func (r *RabbitMQ) Close() error {
	r.closeOnce.Do(func() {
		close(r.MessageChannel)
	})
	return nil
}

func (r *RabbitMQ) Ack(_ uint64, _ bool) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.ackCounter++
	return nil
}

func (r *RabbitMQ) Nack(_ uint64, _ bool, _ bool) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.nackCounter++
	return nil
}

func (r *RabbitMQ) Reject(_ uint64, _ bool) error {
	return r.Nack(0, false, false)
}

func (r *RabbitMQ) AckCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.ackCounter
}

func (r *RabbitMQ) NackCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.nackCounter
}

// Published drains whatever is waiting on the channel without blocking.
func (r *RabbitMQ) Published() []amqp.Delivery {
	deliveries := []amqp.Delivery{}
	for {
		select {
		case delivery, ok := <-r.MessageChannel:
			if !ok {
				return deliveries
			}
			deliveries = append(deliveries, delivery)
		default:
			return deliveries
		}
	}
}
