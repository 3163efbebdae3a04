package sink

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"

	"joke-sheet/internal/config"
)

// New builds the sink for a backend from process settings.
func New(ctx context.Context, backend string, settings config.Settings, logger *zap.Logger) (RowSink, error) {
	switch backend {
	case config.BackendSheets:
		return NewSheets(ctx, SheetsConfig{
			SpreadsheetID: settings.SpreadsheetID,
			Range:         settings.SheetRange,
			APIKey:        settings.APIKey,
			ClientEmail:   settings.ClientEmail,
			PrivateKey:    settings.PrivateKey,
		}, logger)
	case config.BackendDynamoDB:
		return NewDynamoDB(dynamodb.NewFromConfig(settings.AWSConfig), settings.DynamoDBTableName, logger), nil
	case config.BackendSQS:
		return NewQueue(sqs.NewFromConfig(settings.AWSConfig), settings.SQSQueueURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown sink backend %q", backend)
	}
}
