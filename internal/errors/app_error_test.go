package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"joke-sheet/internal/schema"
)

func TestNewConfigurationError(t *testing.T) {
	cause := stderrors.New("missing SPREADSHEET_ID")

	err := NewConfigurationError([]string{"SPREADSHEET_ID", "API_KEY"}, cause)

	assert.Equal(t, KindConfiguration, err.Kind)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "Puuttuva asetus: SPREADSHEET_ID\nPuuttuva asetus: API_KEY", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestNewConfigurationError_WithoutItems(t *testing.T) {
	err := NewConfigurationError(nil, stderrors.New("invalid settings"))

	assert.Equal(t, "Palvelun asetukset ovat virheelliset", err.Message)
}

func TestNewValidationError(t *testing.T) {
	violations := []schema.Violation{
		{Field: "joke", Kind: schema.Required, Message: "Vitsi on pakollinen kenttä"},
		{Field: "guild", Kind: schema.Required, Message: "Kilta on pakollinen kenttä"},
	}

	t.Run("many", func(t *testing.T) {
		err := NewValidationError(violations)

		assert.Equal(t, KindValidation, err.Kind)
		assert.Equal(t, "Lomakkeessa on 2 virhettä", err.Message)
		assert.Equal(t, violations, err.Violations)
	})

	t.Run("single", func(t *testing.T) {
		err := NewValidationError(violations[:1])

		assert.Equal(t, "Vitsi on pakollinen kenttä", err.Message)
	})
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "payloadMissing: Pyynnön runko puuttuu", NewPayloadMissingError().Error())

	cause := stderrors.New("connection reset")
	err := NewSinkError("connection reset", cause)
	assert.Equal(t, "sinkError: connection reset: connection reset", err.Error())
	assert.Equal(t, cause, stderrors.Unwrap(err))
}
