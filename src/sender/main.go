package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"stem-split-worker/src/application/jobs/job_message"
	"stem-split-worker/src/application/jobs/split"
	"stem-split-worker/src/lib/cerr"
	"stem-split-worker/src/lib/envvar"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

type senderFlags struct {
	file         string
	audioKey     string
	id           string
	variant      string
	engine       string
	outputFormat string
	queueName    string
}

func main() {
	flags := senderFlags{}

	cmd := &cobra.Command{
		Use:   "sender",
		Short: "Publish a stem separation job to the worker queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(flags)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "local audio file to send inline")
	cmd.Flags().StringVar(&flags.audioKey, "audio-key", "", "object store key of audio that is already uploaded")
	cmd.Flags().StringVar(&flags.id, "id", "", "job id, a random one is generated if empty")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "2stems, 4stems or 5stems")
	cmd.Flags().StringVar(&flags.engine, "engine", "", "spleeter or demucs")
	cmd.Flags().StringVar(&flags.outputFormat, "format", "", "wav or mp3")
	cmd.Flags().StringVar(&flags.queueName, "queue", "", "queue to publish to, defaults to $RABBITMQ_QUEUE_NAME")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func send(flags senderFlags) error {
	envelope, err := newEnvelope(flags)
	if err != nil {
		return err
	}

	queueName := flags.queueName
	if queueName == "" {
		queueName = envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME)
	}

	conn, err := amqp.Dial(envvar.MustGet(envvar.RABBITMQ_URL))
	if err != nil {
		return cerr.Wrap(err).Error("Failed to connect to rabbitmq")
	}
	defer conn.Close()

	rabbitChannel, err := conn.Channel()
	if err != nil {
		return cerr.Wrap(err).Error("Failed to open channel")
	}
	defer rabbitChannel.Close()

	queue, err := rabbitChannel.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return cerr.Field("queue_name", queueName).Wrap(err).Error("Failed to declare queue")
	}

	job, err := split.CreateJobMessage(envelope)
	if err != nil {
		return err
	}

	job.DeliveryMode = amqp.Persistent
	job.ContentType = "application/json"

	if err = rabbitChannel.Publish("", queue.Name, true, false, job); err != nil {
		return cerr.Field("queue_name", queue.Name).Wrap(err).Error("Failed to publish job")
	}

	fmt.Printf("Published job %s to %s\n", job.MessageId, queue.Name)
	return nil
}

func newEnvelope(flags senderFlags) (job_message.Envelope, error) {
	if (flags.file == "") == (flags.audioKey == "") {
		return job_message.Envelope{}, cerr.Error("Exactly one of --file or --audio-key is needed")
	}

	id := flags.id
	if id == "" {
		id = uuid.New().String()
	}

	input := job_message.Input{
		AudioKey:     flags.audioKey,
		ID:           id,
		Variant:      flags.variant,
		Engine:       flags.engine,
		OutputFormat: flags.outputFormat,
	}

	if flags.file != "" {
		content, err := os.ReadFile(flags.file)
		if err != nil {
			return job_message.Envelope{}, cerr.Field("file", flags.file).Wrap(err).Error("Failed to read audio file")
		}

		input.AudioB64 = base64.StdEncoding.EncodeToString(content)
		input.Filename = filepath.Base(flags.file)
	}

	return job_message.Envelope{
		ID:    id,
		Input: input,
	}, nil
}
