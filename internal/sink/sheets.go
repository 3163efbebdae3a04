package sink

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"joke-sheet/internal/config"
	"joke-sheet/internal/models"
)

// valueInputOption stores cells exactly as sent, without formula parsing.
const valueInputOption = "RAW"

// SheetsConfig identifies the target sheet and the service account used to
// write to it.
type SheetsConfig struct {
	SpreadsheetID string
	Range         string
	APIKey        string
	ClientEmail   string
	PrivateKey    string

	// Options are appended after the authenticated client option, so they
	// can override it.
	Options []option.ClientOption
}

// Sheets appends rows to a Google spreadsheet.
type Sheets struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	rng           string
	apiKey        string
	logger        *zap.Logger
}

// NewSheets builds a Sheets client authenticated with a service-account JWT.
// Tokens are fetched lazily on the first append.
func NewSheets(ctx context.Context, cfg SheetsConfig, logger *zap.Logger) (*Sheets, error) {
	jwtCfg := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	opts := append([]option.ClientOption{option.WithHTTPClient(jwtCfg.Client(ctx))}, cfg.Options...)

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	rng := cfg.Range
	if rng == "" {
		rng = "A2"
	}
	return &Sheets{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		rng:           rng,
		apiKey:        cfg.APIKey,
		logger:        logger,
	}, nil
}

// Append writes the row after the last row of the configured range.
func (s *Sheets) Append(ctx context.Context, row models.Row) (Result, error) {
	if s.spreadsheetID == "" {
		return Result{}, &Error{Kind: ConfigurationMissing, Backend: config.BackendSheets, Err: errors.New("spreadsheet id is not set")}
	}

	var opts []googleapi.CallOption
	if s.apiKey != "" {
		opts = append(opts, googleapi.QueryParameter("key", s.apiKey))
	}

	resp, err := s.values.Append(s.spreadsheetID, s.rng, &sheets.ValueRange{
		Values: [][]interface{}{row.Values()},
	}).ValueInputOption(valueInputOption).Context(ctx).Do(opts...)
	if err != nil {
		s.logger.Error("sheet append failed", zap.Error(err))
		return Result{}, &Error{Kind: classifySheetsError(err), Backend: config.BackendSheets, Err: err}
	}

	var location string
	if resp.Updates != nil {
		location = resp.Updates.UpdatedRange
	}
	s.logger.Info("updated sheet", zap.String("range", location))
	return Result{Location: location}, nil
}

func classifySheetsError(err error) ErrorKind {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return AuthenticationFailed
		}
		return TransportFailed
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return AuthenticationFailed
	}
	// Key parsing errors from the JWT source are not typed.
	msg := err.Error()
	if strings.Contains(msg, "private key") || strings.Contains(msg, "oauth2:") {
		return AuthenticationFailed
	}
	return TransportFailed
}
