package models

import (
	"time"
)

// TimestampLayout renders row timestamps as ISO-8601 UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Submission is a validated, normalized form submission.
type Submission struct {
	Joke    string `json:"joke"`
	Email   string `json:"email"`
	Guild   string `json:"guild"`
	IsFuksi bool   `json:"isFuksi"`
}

// Row is a single sheet row. Column order matches the sheet header:
// timestamp, joke, email, guild, isFuksi.
type Row struct {
	Timestamp time.Time
	Joke      string
	Email     string
	Guild     string
	IsFuksi   bool
}

// Values returns the ordered cells of the row.
func (r Row) Values() []interface{} {
	return []interface{}{
		r.Timestamp.UTC().Format(TimestampLayout),
		r.Joke,
		r.Email,
		r.Guild,
		r.IsFuksi,
	}
}

// QueuedRow is the message sent to SQS when rows are appended asynchronously.
type QueuedRow struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Joke       string    `json:"joke"`
	Email      string    `json:"email"`
	Guild      string    `json:"guild"`
	IsFuksi    bool      `json:"isFuksi"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewQueuedRow wraps a row for the queue with a UTC enqueue timestamp.
func NewQueuedRow(id string, row Row) QueuedRow {
	return QueuedRow{
		ID:         id,
		Timestamp:  row.Timestamp.UTC(),
		Joke:       row.Joke,
		Email:      row.Email,
		Guild:      row.Guild,
		IsFuksi:    row.IsFuksi,
		EnqueuedAt: time.Now().UTC(),
	}
}

// Row converts the queued message back into a sheet row.
func (q QueuedRow) Row() Row {
	return Row{
		Timestamp: q.Timestamp,
		Joke:      q.Joke,
		Email:     q.Email,
		Guild:     q.Guild,
		IsFuksi:   q.IsFuksi,
	}
}
