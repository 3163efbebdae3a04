package submission

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"go.uber.org/zap"

	"joke-sheet/internal/config"
	apperrors "joke-sheet/internal/errors"
	"joke-sheet/internal/response"
	"joke-sheet/internal/rows"
	"joke-sheet/internal/schema"
	"joke-sheet/internal/sink"
)

// Stage names the step of the pipeline an invocation stopped at.
type Stage string

const (
	StageCheckingConfig  Stage = "checkingConfig"
	StageCheckingPayload Stage = "checkingPayload"
	StageValidating      Stage = "validating"
	StageMapping         Stage = "mapping"
	StageAppending       Stage = "appending"
	StageResponding      Stage = "responding"
)

const sanitizedSinkMessage = "Tallennus epäonnistui"

// Request is the transport-neutral input of one invocation.
type Request struct {
	RequestID       string
	Body            string
	IsBase64Encoded bool
}

// Options wires a Pipeline. Nil Validator, Mapper and Logger get defaults.
type Options struct {
	// ConfigErr is the result of checking process configuration at start-up.
	ConfigErr          error
	Validator          *schema.Validator
	Mapper             *rows.Mapper
	Sink               sink.RowSink
	SanitizeSinkErrors bool
	Logger             *zap.Logger
}

// Pipeline validates a submission, appends it as a row and builds the response.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	configErr error
	validator *schema.Validator
	mapper    *rows.Mapper
	sink      sink.RowSink
	sanitize  bool
	logger    *zap.Logger
}

func New(opts Options) *Pipeline {
	p := &Pipeline{
		configErr: opts.ConfigErr,
		validator: opts.Validator,
		mapper:    opts.Mapper,
		sink:      opts.Sink,
		sanitize:  opts.SanitizeSinkErrors,
		logger:    opts.Logger,
	}
	if p.validator == nil {
		p.validator = schema.NewValidator()
	}
	if p.mapper == nil {
		p.mapper = rows.NewMapper()
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// Handle runs one invocation. Every failure becomes an error envelope; the
// envelope is the only result.
func (p *Pipeline) Handle(ctx context.Context, req Request) response.Envelope {
	logger := p.logger.With(zap.String("request_id", req.RequestID))

	stage, err := p.run(ctx, req, logger)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindValidation {
			logger.Info("submission rejected",
				zap.String("stage", string(stage)),
				zap.Int("violations", len(appErr.Violations)),
			)
		} else {
			logger.Error("submission failed", zap.String("stage", string(stage)), zap.Error(err))
		}
		return response.Failure(err)
	}
	return response.Success()
}

func (p *Pipeline) run(ctx context.Context, req Request, logger *zap.Logger) (Stage, error) {
	if p.configErr != nil {
		return StageCheckingConfig, apperrors.NewConfigurationError(config.MissingItems(p.configErr), p.configErr)
	}
	if p.sink == nil {
		return StageCheckingConfig, apperrors.NewConfigurationError(nil, errors.New("no row sink configured"))
	}

	body, ok := payload(req)
	if !ok {
		return StageCheckingPayload, apperrors.NewPayloadMissingError()
	}

	outcome := p.validator.ValidateJSON(body)
	if !outcome.Valid() {
		return StageValidating, apperrors.NewValidationError(outcome.Violations)
	}

	row := p.mapper.Map(*outcome.Submission)

	result, err := p.sink.Append(ctx, row)
	if err != nil {
		return StageAppending, p.sinkError(err)
	}

	logger.Info("submission stored",
		zap.String("location", result.Location),
		zap.String("guild", row.Guild),
		zap.Bool("is_fuksi", row.IsFuksi),
	)
	return StageResponding, nil
}

func (p *Pipeline) sinkError(err error) error {
	if p.sanitize {
		return apperrors.NewSinkError(sanitizedSinkMessage, err)
	}
	message := err.Error()
	var sinkErr *sink.Error
	if errors.As(err, &sinkErr) {
		message = sinkErr.Message()
	}
	return apperrors.NewSinkError(message, err)
}

// payload returns the request body, or false when there is none. A JSON null
// counts as no body.
func payload(req Request) ([]byte, bool) {
	body := req.Body
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, false
		}
		body = string(decoded)
	}

	body = strings.TrimSpace(body)
	if body == "" || body == "null" {
		return nil, false
	}
	return []byte(body), true
}
