package worker

import (
	"stem-split-worker/src/lib/cerr"

	"github.com/apex/log"

	"github.com/streadway/amqp"
)

type MessageChannel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

type MessageRouter interface {
	HandleMessage(message amqp.Delivery) error
}

type QueueWorker struct {
	channel   MessageChannel
	jobRouter MessageRouter
	queueName string
}

func NewQueueWorker(channel MessageChannel, queueName string, jobRouter MessageRouter) QueueWorker {
	return QueueWorker{
		channel:   channel,
		queueName: queueName,
		jobRouter: jobRouter,
	}
}

func NewQueueWorkerFromConnection(conn *amqp.Connection, queueName string, jobRouter MessageRouter) (QueueWorker, error) {
	rabbitChannel, err := conn.Channel()
	if err != nil {
		return QueueWorker{}, cerr.Wrap(err).Error("Failed to get channel")
	}

	queue, err := rabbitChannel.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)

	if err != nil {
		_ = rabbitChannel.Close()
		return QueueWorker{}, cerr.Wrap(err).Error("Failed to declare queue")
	}

	// separation is long running, take one job at a time
	if err := rabbitChannel.Qos(1, 0, false); err != nil {
		_ = rabbitChannel.Close()
		return QueueWorker{}, cerr.Wrap(err).Error("Failed to set channel prefetch")
	}

	return NewQueueWorker(rabbitChannel, queue.Name, jobRouter), nil
}

// Start blocks until the channel is closed, by Stop or by the broker.
func (q *QueueWorker) Start() error {
	log.Info("Starting worker")

	defer q.channel.Close()

	messageStream, err := q.channel.Consume(
		q.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)

	if err != nil {
		return cerr.Field("queue_name", q.queueName).
			Wrap(err).Error("Failed to start consuming from channel")
	}

	for message := range messageStream {
		logger := log.WithFields(log.Fields{
			"message_type": message.Type,
			"message_id":   message.MessageId,
		})
		logger.Info("Handling message")
		err := q.jobRouter.HandleMessage(message)
		if err != nil {
			err = cerr.Field("message_type", message.Type).
				Wrap(err).Error("Failed to process message")

			cerr.Log(err)

			if err = message.Nack(false, false); err != nil {
				logger.Error("Failed to nack message")
			}
		} else {
			logger.Info("Successfully processed message")
			if err = message.Ack(false); err != nil {
				logger.Error("Failed to ack message")
			}
		}
	}

	log.Info("Worker stopped")
	return nil
}

func (q *QueueWorker) Stop() error {
	return q.channel.Close()
}
