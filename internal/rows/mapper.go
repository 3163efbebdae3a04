package rows

import (
	"time"

	"joke-sheet/internal/models"
)

// Mapper turns validated submissions into sheet rows.
type Mapper struct {
	now func() time.Time
}

// NewMapper returns a mapper stamping rows with the current UTC time.
func NewMapper() *Mapper {
	return NewMapperWithClock(func() time.Time { return time.Now().UTC() })
}

// NewMapperWithClock returns a mapper using the given clock.
func NewMapperWithClock(now func() time.Time) *Mapper {
	return &Mapper{now: now}
}

// Map builds the row for a submission. The submission must have passed
// validation.
func (m *Mapper) Map(s models.Submission) models.Row {
	return models.Row{
		Timestamp: m.now(),
		Joke:      s.Joke,
		Email:     s.Email,
		Guild:     s.Guild,
		IsFuksi:   s.IsFuksi,
	}
}
