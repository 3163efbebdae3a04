package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"joke-sheet/internal/config"
	"joke-sheet/internal/models"
)

// SendMessageAPI is the subset of the SQS client used by the sink.
type SendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Queue defers the append: rows are enqueued and the worker writes them to
// the sheet.
type Queue struct {
	client   SendMessageAPI
	queueURL string
	newID    func() string
	logger   *zap.Logger
}

func NewQueue(client SendMessageAPI, queueURL string, logger *zap.Logger) *Queue {
	return &Queue{
		client:   client,
		queueURL: queueURL,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

func (q *Queue) Append(ctx context.Context, row models.Row) (Result, error) {
	if q.queueURL == "" {
		return Result{}, &Error{Kind: ConfigurationMissing, Backend: config.BackendSQS, Err: errors.New("queue url is not set")}
	}

	message := models.NewQueuedRow(q.newID(), row)
	body, err := json.Marshal(message)
	if err != nil {
		return Result{}, &Error{Kind: TransportFailed, Backend: config.BackendSQS, Err: fmt.Errorf("encode row: %w", err)}
	}

	out, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    stringPtr(q.queueURL),
		MessageBody: stringPtr(string(body)),
	})
	if err != nil {
		q.logger.Error("failed to enqueue row", zap.String("id", message.ID), zap.Error(err))
		return Result{}, &Error{Kind: classifyAWSError(err), Backend: config.BackendSQS, Err: err}
	}

	messageID := aws.ToString(out.MessageId)
	q.logger.Info("enqueued row", zap.String("id", message.ID), zap.String("message_id", messageID))
	return Result{Location: messageID}, nil
}
