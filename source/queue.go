// Package source fetches JSON documents to validate from an SQS queue.
package source

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog"
)

const (
	// defaultMaxMessages is the batch size of one ReceiveMessage call.
	defaultMaxMessages = 5
	// maxMessagesLimit is the SQS hard limit per ReceiveMessage call.
	maxMessagesLimit = 10
	// defaultWaitTimeSeconds enables SQS long polling, reducing empty responses.
	defaultWaitTimeSeconds = 10
)

// SQSClient is the subset of the SQS API the source needs.
// This allows for easier testing by mocking the SQS client.
type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
}

// Message is one queue message body together with its identifiers.
type Message struct {
	ID            string
	ReceiptHandle string
	Body          string
}

// QueueSource reads batches of messages without deleting them, so they
// become visible again once their visibility timeout expires.
type QueueSource struct {
	client          SQSClient
	queueURL        string
	maxMessages     int32
	waitTimeSeconds int32
}

// Option configures a QueueSource at construction time.
type Option func(*QueueSource)

// WithMaxMessages sets the batch size, clamped to 1..10.
func WithMaxMessages(n int32) Option {
	return func(s *QueueSource) {
		switch {
		case n < 1:
			s.maxMessages = 1
		case n > maxMessagesLimit:
			s.maxMessages = maxMessagesLimit
		default:
			s.maxMessages = n
		}
	}
}

// WithWaitTime sets the long-poll wait in seconds. Zero means short polling.
func WithWaitTime(seconds int32) Option {
	return func(s *QueueSource) {
		if seconds >= 0 {
			s.waitTimeSeconds = seconds
		}
	}
}

// NewQueueSource creates a source reading from queueURL.
func NewQueueSource(client SQSClient, queueURL string, opts ...Option) *QueueSource {
	s := &QueueSource{
		client:          client,
		queueURL:        queueURL,
		maxMessages:     defaultMaxMessages,
		waitTimeSeconds: defaultWaitTimeSeconds,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Receive polls one batch. Messages without a body are skipped.
func (s *QueueSource) Receive(ctx context.Context) ([]Message, error) {
	logger := zerolog.Ctx(ctx)

	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		MaxNumberOfMessages: s.maxMessages,
		WaitTimeSeconds:     s.waitTimeSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("receive messages from %s: %w", s.queueURL, err)
	}

	logger.Info().Int("count", len(output.Messages)).Msg("Received messages")
	out := make([]Message, 0, len(output.Messages))
	for _, m := range output.Messages {
		if m.Body == nil {
			logger.Warn().Str("message_id", aws.ToString(m.MessageId)).Msg("Skipping message with empty body")
			continue
		}
		out = append(out, toMessage(m))
	}
	return out, nil
}

func toMessage(m types.Message) Message {
	return Message{
		ID:            aws.ToString(m.MessageId),
		ReceiptHandle: aws.ToString(m.ReceiptHandle),
		Body:          aws.ToString(m.Body),
	}
}
