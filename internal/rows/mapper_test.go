package rows

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"joke-sheet/internal/models"
)

func TestMap_ColumnOrder(t *testing.T) {
	now := time.Date(2024, 9, 2, 8, 30, 0, 250*int(time.Millisecond), time.UTC)
	mapper := NewMapperWithClock(func() time.Time { return now })

	row := mapper.Map(models.Submission{
		Joke:    "abc",
		Email:   "a@b.com",
		Guild:   "Digit",
		IsFuksi: true,
	})

	want := []interface{}{"2024-09-02T08:30:00.250Z", "abc", "a@b.com", "Digit", true}
	if diff := cmp.Diff(want, row.Values()); diff != "" {
		t.Errorf("row values mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, now, row.Timestamp)
}

func TestMap_EmptyOptionalFieldsKeepTheirColumn(t *testing.T) {
	now := time.Date(2024, 9, 2, 8, 30, 0, 0, time.UTC)
	mapper := NewMapperWithClock(func() time.Time { return now })

	row := mapper.Map(models.Submission{Joke: "abc", Guild: "Muu"})

	want := []interface{}{"2024-09-02T08:30:00.000Z", "abc", "", "Muu", false}
	if diff := cmp.Diff(want, row.Values()); diff != "" {
		t.Errorf("row values mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_TimestampsDoNotDecrease(t *testing.T) {
	mapper := NewMapper()
	submission := models.Submission{Joke: "abc", Guild: "Digit"}

	previous := mapper.Map(submission).Timestamp
	for i := 0; i < 100; i++ {
		current := mapper.Map(submission).Timestamp
		assert.False(t, current.Before(previous), "timestamp went backwards: %s < %s", current, previous)
		assert.Equal(t, time.UTC, current.Location())
		previous = current
	}
}
