package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"joke-sheet/internal/config"
	"joke-sheet/internal/logging"
	"joke-sheet/internal/models"
	"joke-sheet/internal/sink"
)

var (
	target    sink.RowSink
	configErr error
	logger    *zap.Logger
)

func init() {
	ctx := context.Background()
	settings, err := config.Load(ctx)

	logger, _ = logging.New(settings.LogLevel)
	if logger == nil {
		logger = zap.NewNop()
	}

	if err == nil {
		err = settings.Check(settings.WorkerBackend)
	}
	if err == nil {
		target, err = sink.New(ctx, settings.WorkerBackend, settings, logger)
	}
	if err != nil {
		logger.Error("configuration error", zap.Error(err))
		configErr = err
		return
	}
	logger.Info("queue worker initialized", zap.String("backend", settings.WorkerBackend))
}

func main() {
	lambda.Start(handleSQSEvent)
}

// handleSQSEvent appends every queued row once. Failed rows are logged and
// dropped; only a misconfigured worker leaves the batch on the queue.
func handleSQSEvent(ctx context.Context, event events.SQSEvent) error {
	if target == nil {
		return fmt.Errorf("worker not configured: %w", configErr)
	}

	failed := 0
	for _, record := range event.Records {
		if err := processRecord(ctx, target, record); err != nil {
			failed++
			logger.Error("dropping queued row", zap.String("message_id", record.MessageId), zap.Error(err))
		}
	}
	logger.Info("processed batch", zap.Int("records", len(event.Records)), zap.Int("failed", failed))
	return nil
}

func processRecord(ctx context.Context, rowSink sink.RowSink, record events.SQSMessage) error {
	var message models.QueuedRow
	if err := json.Unmarshal([]byte(record.Body), &message); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	result, err := rowSink.Append(ctx, message.Row())
	if err != nil {
		return fmt.Errorf("append row %s: %w", message.ID, err)
	}

	logger.Info("appended queued row",
		zap.String("id", message.ID),
		zap.String("location", result.Location),
		zap.Time("enqueued_at", message.EnqueuedAt),
	)
	return nil
}
