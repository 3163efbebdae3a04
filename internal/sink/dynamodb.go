package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"joke-sheet/internal/config"
	"joke-sheet/internal/models"
)

// PutItemAPI is the subset of the DynamoDB client used by the sink.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoDB stores each row as a new item keyed by a random id.
type DynamoDB struct {
	client PutItemAPI
	table  string
	newID  func() string
	logger *zap.Logger
}

func NewDynamoDB(client PutItemAPI, table string, logger *zap.Logger) *DynamoDB {
	return &DynamoDB{
		client: client,
		table:  table,
		newID:  uuid.NewString,
		logger: logger,
	}
}

func (d *DynamoDB) Append(ctx context.Context, row models.Row) (Result, error) {
	if d.table == "" {
		return Result{}, &Error{Kind: ConfigurationMissing, Backend: config.BackendDynamoDB, Err: errors.New("table name is not set")}
	}

	id := d.newID()
	cells := row.Values()
	item := map[string]types.AttributeValue{
		"id":        &types.AttributeValueMemberS{Value: id},
		"timestamp": &types.AttributeValueMemberS{Value: cells[0].(string)},
		"joke":      &types.AttributeValueMemberS{Value: row.Joke},
		"email":     &types.AttributeValueMemberS{Value: row.Email},
		"guild":     &types.AttributeValueMemberS{Value: row.Guild},
		"isFuksi":   &types.AttributeValueMemberBOOL{Value: row.IsFuksi},
	}

	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           stringPtr(d.table),
		Item:                item,
		ConditionExpression: stringPtr("attribute_not_exists(id)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			d.logger.Warn("duplicate row id", zap.String("id", id))
			return Result{}, &Error{Kind: TransportFailed, Backend: config.BackendDynamoDB, Err: fmt.Errorf("row %s already exists", id)}
		}
		d.logger.Error("dynamodb put failed", zap.String("table", d.table), zap.Error(err))
		return Result{}, &Error{Kind: classifyAWSError(err), Backend: config.BackendDynamoDB, Err: err}
	}

	d.logger.Info("persisted row", zap.String("table", d.table), zap.String("id", id))
	return Result{Location: d.table + "/" + id}, nil
}
