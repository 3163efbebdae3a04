package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"joke-sheet/internal/config"
	"joke-sheet/internal/logging"
	"joke-sheet/internal/sink"
	"joke-sheet/internal/submission"
)

var (
	pipeline *submission.Pipeline
	logger   *zap.Logger
)

func init() {
	ctx := context.Background()
	settings, loadErr := config.Load(ctx)

	var err error
	logger, err = logging.New(settings.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	pipeline = newPipeline(ctx, settings, loadErr)
	logger.Info("submission handler initialized", zap.String("backend", settings.Backend))
}

// newPipeline wires the pipeline from settings. Incomplete configuration is
// not fatal: every invocation then answers with a configuration error.
func newPipeline(ctx context.Context, settings config.Settings, loadErr error) *submission.Pipeline {
	configErr := loadErr
	if configErr == nil {
		configErr = settings.Check(settings.Backend)
	}

	var rowSink sink.RowSink
	if configErr != nil {
		logger.Warn("configuration incomplete", zap.Error(configErr))
	} else {
		s, err := sink.New(ctx, settings.Backend, settings, logger)
		if err != nil {
			logger.Fatal("Failed to initialize row sink", zap.Error(err))
		}
		rowSink = s
	}

	return submission.New(submission.Options{
		ConfigErr:          configErr,
		Sink:               rowSink,
		SanitizeSinkErrors: settings.SanitizeSinkErrors,
		Logger:             logger,
	})
}

func main() {
	lambda.Start(handleRequest)
}

func handleRequest(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestID := req.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	envelope := pipeline.Handle(ctx, submission.Request{
		RequestID:       requestID,
		Body:            req.Body,
		IsBase64Encoded: req.IsBase64Encoded,
	})
	return envelope.APIGatewayV2(), nil
}
