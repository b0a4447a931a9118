package hydromet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Options configures a pipeline run.
type Options struct {
	Source       string
	Format       DateFormat
	SkipIfExists bool
	Parse        ParseOptions
	// Epsilon is the tolerance used to resolve extremum times; 0 is exact.
	Epsilon float64
}

// Service runs the extract, persist, parse and aggregate pipeline.
type Service struct {
	extractor TableExtractor
	files     RecordFiles
	reports   ReportStore
	opts      Options
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new Service. reports may be nil when runs are not
// published anywhere.
func NewService(extractor TableExtractor, files RecordFiles, reports ReportStore, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Format.Separator == "" {
		opts.Format = DottedDate
	}
	return &Service{
		extractor: extractor,
		files:     files,
		reports:   reports,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Format returns the date format used for file names and keys.
func (s *Service) Format() DateFormat {
	return s.opts.Format
}

// Run executes one complete pipeline run. Any stage failure aborts the run.
func (s *Service) Run(ctx context.Context) (Report, error) {
	runID := uuid.NewString()
	log := s.logger.With("run_id", runID)
	day := s.opts.Format.Format(s.now())

	if err := s.extract(ctx, log, day); err != nil {
		return Report{}, err
	}

	groups, err := s.readGroups(day)
	if err != nil {
		return Report{}, err
	}
	log.Debug("grouped records", "dates", len(groups.Keys()), "lines", groups.Total())

	buckets, skipped, err := ParseGroups(groups, s.opts.Parse)
	if err != nil {
		return Report{}, fmt.Errorf("parse %s: %w", s.files.Path(day), err)
	}
	for _, e := range skipped {
		log.Warn("skipping malformed record", "err", e)
	}

	store, err := Normalize(buckets, s.opts.Format)
	if err != nil {
		return Report{}, fmt.Errorf("normalize: %w", err)
	}

	maxPt, minPt, err := store.Extremes(s.opts.Epsilon)
	if err != nil {
		return Report{}, err
	}

	log.Info("pipeline run completed",
		"dates", store.Len(),
		"observations", store.Count(),
		"skipped", len(skipped),
	)

	return Report{
		RunID:       runID,
		Source:      s.opts.Source,
		File:        s.files.Path(day),
		GeneratedAt: s.now().UTC(),
		Max:         maxPt,
		Min:         minPt,
		Days:        store.DailySummaries(),
		Skipped:     len(skipped),
		Store:       store,
	}, nil
}

func (s *Service) extract(ctx context.Context, log *slog.Logger, day string) error {
	if s.opts.SkipIfExists && s.files.Exists(day) {
		log.Info("file exists, skipping fetch", "file", s.files.Path(day))
		return nil
	}

	rows, err := s.extractor.FetchTable(ctx, s.opts.Source)
	if err != nil {
		if !errors.Is(err, ErrFetch) {
			err = fmt.Errorf("%w: %v", ErrFetch, err)
		}
		return err
	}
	log.Debug("fetched table", "provider", s.extractor.Name(), "rows", len(rows))

	return s.files.Write(day, rows)
}

func (s *Service) readGroups(day string) (*RawGroups, error) {
	r, err := s.files.Open(day)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	groups := NewRawGroups()
	for r.Next() {
		groups.Add(r.Text())
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.files.Path(day), err)
	}
	return groups, nil
}

// RunAndStore runs the pipeline and publishes the report. On failure the last
// good report stays in place.
func (s *Service) RunAndStore(ctx context.Context) error {
	if s.reports == nil {
		return fmt.Errorf("no report store configured")
	}
	r, err := s.Run(ctx)
	if err != nil {
		s.logger.Error("pipeline run failed; keeping last good report", "err", err)
		return err
	}
	s.reports.SaveReport(r)
	return nil
}

// Latest delegates to the underlying report store.
func (s *Service) Latest() (Report, error) {
	if s.reports == nil {
		return Report{}, ErrNoReport
	}
	return s.reports.Latest()
}

// History delegates to the underlying report store.
func (s *Service) History() []Report {
	if s.reports == nil {
		return nil
	}
	return s.reports.History()
}
