package publish

import (
	"stem-split-worker/src/lib/cerr"

	"github.com/streadway/amqp"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

var _ Publisher = RabbitMQPublisher{}

//counterfeiter:generate . Publisher
type Publisher interface {
	Publish(msg amqp.Publishing) error
}

func NewRabbitMQPublisher(conn *amqp.Connection, queueName string) (RabbitMQPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return RabbitMQPublisher{}, cerr.Wrap(err).Error("Failed to create rabbit channel")
	}

	queue, err := channel.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = channel.Close()
		return RabbitMQPublisher{}, cerr.Field("queue_name", queueName).
			Wrap(err).Error("Failed to declare queue")
	}

	return RabbitMQPublisher{
		channel:   channel,
		queueName: queue.Name,
	}, nil
}

type RabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
}

func (r RabbitMQPublisher) Publish(msg amqp.Publishing) error {
	msg.ContentType = "application/json"
	msg.DeliveryMode = amqp.Persistent

	if err := r.channel.Publish("", r.queueName, true, false, msg); err != nil {
		return cerr.Fields(cerr.F{
			"queue_name":   r.queueName,
			"message_type": msg.Type,
		}).Wrap(err).Error("Failed to publish message")
	}

	return nil
}

func (r RabbitMQPublisher) Close() error {
	return r.channel.Close()
}
