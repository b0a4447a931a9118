package hydromet

import (
	"context"
)

// TableExtractor fetches the first table of a page as rows of cell text.
type TableExtractor interface {
	Name() string
	FetchTable(ctx context.Context, url string) ([][]string, error)
}

// RecordReader yields raw data lines of a flat file, header excluded.
// It is consumed once and must be closed.
type RecordReader interface {
	Next() bool
	Text() string
	Err() error
	Close() error
}

// RecordFiles persists extracted rows as one flat file per day.
type RecordFiles interface {
	Path(day string) string
	Exists(day string) bool
	Write(day string, rows [][]string) error
	Open(day string) (RecordReader, error)
}

// ReportStore keeps the reports produced by scheduled runs.
type ReportStore interface {
	SaveReport(r Report)
	Latest() (Report, error)
	History() []Report
}
