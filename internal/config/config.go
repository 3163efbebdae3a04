package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Sink backends.
const (
	BackendSheets   = "sheets"
	BackendDynamoDB = "dynamodb"
	BackendSQS      = "sqs"
)

// Settings holds resolved configuration and shared AWS config.
type Settings struct {
	AWSConfig aws.Config `mapstructure:"-" validate:"-"`

	Backend       string `mapstructure:"SINK_BACKEND" validate:"oneof=sheets dynamodb sqs"`
	WorkerBackend string `mapstructure:"WORKER_SINK_BACKEND" validate:"oneof=sheets dynamodb"`

	SpreadsheetID   string `mapstructure:"SPREADSHEET_ID"`
	APIKey          string `mapstructure:"API_KEY"`
	SheetRange      string `mapstructure:"SHEET_RANGE"`
	CredentialsPath string `mapstructure:"CREDENTIALS_PATH"`
	ClientEmail     string `mapstructure:"SERVICE_ACCOUNT_EMAIL"`
	PrivateKey      string `mapstructure:"SERVICE_ACCOUNT_PRIVATE_KEY"`

	DynamoDBTableName string `mapstructure:"DYNAMODB_TABLE_NAME"`
	SQSQueueURL       string `mapstructure:"SQS_QUEUE_URL"`

	SanitizeSinkErrors bool   `mapstructure:"SANITIZE_SINK_ERRORS"`
	LogLevel           string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

var envKeys = []string{
	"SINK_BACKEND",
	"WORKER_SINK_BACKEND",
	"SPREADSHEET_ID",
	"API_KEY",
	"SHEET_RANGE",
	"CREDENTIALS_PATH",
	"SERVICE_ACCOUNT_EMAIL",
	"SERVICE_ACCOUNT_PRIVATE_KEY",
	"DYNAMODB_TABLE_NAME",
	"SQS_QUEUE_URL",
	"SANITIZE_SINK_ERRORS",
	"LOG_LEVEL",
}

// Load reads environment variables, the service-account file and AWS
// configuration. Missing values are not an error here; see Check.
func Load(ctx context.Context) (Settings, error) {
	v := viper.New()
	v.SetDefault("SINK_BACKEND", BackendSheets)
	v.SetDefault("WORKER_SINK_BACKEND", BackendSheets)
	v.SetDefault("SHEET_RANGE", "A2")
	v.SetDefault("CREDENTIALS_PATH", "./credentials.json")
	v.SetDefault("SANITIZE_SINK_ERRORS", false)
	v.SetDefault("LOG_LEVEL", "info")
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return Settings{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	settings.Backend = strings.ToLower(strings.TrimSpace(settings.Backend))
	settings.WorkerBackend = strings.ToLower(strings.TrimSpace(settings.WorkerBackend))
	settings.LogLevel = strings.ToLower(strings.TrimSpace(settings.LogLevel))

	if err := validator.New().Struct(settings); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	if settings.ClientEmail == "" || settings.PrivateKey == "" {
		email, key, err := readServiceAccount(settings.CredentialsPath)
		if err != nil {
			return Settings{}, err
		}
		if settings.ClientEmail == "" {
			settings.ClientEmail = email
		}
		if settings.PrivateKey == "" {
			settings.PrivateKey = key
		}
	}
	// Keys passed through the environment usually carry escaped newlines.
	settings.PrivateKey = strings.ReplaceAll(settings.PrivateKey, `\n`, "\n")

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("load AWS config: %w", err)
	}
	settings.AWSConfig = awsCfg

	return settings, nil
}

// readServiceAccount reads client_email and private_key from a service-account
// JSON file. A missing file yields empty values.
func readServiceAccount(path string) (email, key string, err error) {
	if path == "" {
		return "", "", nil
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		return "", "", nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return "", "", fmt.Errorf("read credentials file %s: %w", path, err)
	}
	return v.GetString("client_email"), v.GetString("private_key"), nil
}

// MissingError names one required configuration item that is absent.
type MissingError struct {
	Item string
}

func (e *MissingError) Error() string {
	return "missing " + e.Item
}

// Check reports every configuration item the backend needs but lacks, combined
// into a single error.
func (s Settings) Check(backend string) error {
	var err error
	require := func(value, item string) {
		if value == "" {
			err = multierr.Append(err, &MissingError{Item: item})
		}
	}

	switch backend {
	case BackendSheets:
		require(s.SpreadsheetID, "SPREADSHEET_ID")
		require(s.APIKey, "API_KEY")
		if s.ClientEmail == "" || s.PrivateKey == "" {
			err = multierr.Append(err, &MissingError{Item: "credentials file " + s.CredentialsPath})
		}
	case BackendDynamoDB:
		require(s.DynamoDBTableName, "DYNAMODB_TABLE_NAME")
	case BackendSQS:
		require(s.SQSQueueURL, "SQS_QUEUE_URL")
	default:
		err = multierr.Append(err, &MissingError{Item: "SINK_BACKEND"})
	}
	return err
}

// MissingItems lists the items named by the MissingErrors inside err.
func MissingItems(err error) []string {
	var items []string
	for _, e := range multierr.Errors(err) {
		var missing *MissingError
		if errors.As(e, &missing) {
			items = append(items, missing.Item)
		}
	}
	return items
}
