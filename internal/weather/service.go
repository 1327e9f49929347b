package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Pipeline names used in summaries, logs and metrics.
const (
	PipelineIngest = "ingest"
	PipelineReport = "report"
)

// Outcome labels passed to Metrics.
const (
	OutcomeSuccess    = "success"
	OutcomeError      = "error"
	OutcomeSkipped    = "skipped"
	OutcomeNoForecast = "no_forecast"
	OutcomeSendError  = "send_error"
)

// DefaultUsername is the display name used for chat posts.
const DefaultUsername = "PogoWeather"

// ServiceParams holds the collaborators of a Service. Zero-valued optional
// fields fall back to defaults.
type ServiceParams struct {
	Catalog     Catalog
	PullHours   PullHours
	Fetcher     ForecastFetcher
	Store       Store
	Notifier    Notifier
	Classifier  *Classifier
	Username    string
	Concurrency int
	Clock       Clock
	IDs         IDGenerator
	Metrics     Metrics
	Logger      *slog.Logger
}

// Service runs the ingestion and reporting pipelines over the catalog.
type Service struct {
	catalog     Catalog
	pullHours   PullHours
	fetcher     ForecastFetcher
	store       Store
	notifier    Notifier
	classifier  *Classifier
	username    string
	concurrency int
	clock       Clock
	ids         IDGenerator
	metrics     Metrics
	logger      *slog.Logger
}

// NewService creates a new Service.
func NewService(p ServiceParams) *Service {
	s := &Service{
		catalog:     p.Catalog,
		pullHours:   p.PullHours,
		fetcher:     p.Fetcher,
		store:       p.Store,
		notifier:    p.Notifier,
		classifier:  p.Classifier,
		username:    p.Username,
		concurrency: p.Concurrency,
		clock:       p.Clock,
		ids:         p.IDs,
		metrics:     p.Metrics,
		logger:      p.Logger,
	}
	if s.catalog.Len() == 0 {
		s.catalog = DefaultCatalog
	}
	if s.pullHours == nil {
		s.pullHours = NewPullHours()
	}
	if s.classifier == nil {
		s.classifier = NewClassifier(DefaultThresholds())
	}
	if s.username == "" {
		s.username = DefaultUsername
	}
	if s.concurrency <= 0 {
		s.concurrency = s.catalog.Len()
	}
	if s.clock == nil {
		s.clock = systemClock{}
	}
	if s.ids == nil {
		s.ids = UUIDGenerator{}
	}
	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Catalog returns the locations the service processes.
func (s *Service) Catalog() Catalog {
	return s.catalog
}

// CurrentRequestHour returns the bucket hour of the current clock reading.
func (s *Service) CurrentRequestHour() string {
	return RequestHour(FormatRequestTime(s.clock.Now()))
}

// LocationResult is the outcome of one location's part of a run.
type LocationResult struct {
	LocationID string
	Skipped    bool
	// Records is the number of records built (ingest) or hours rendered (report).
	Records     int
	Err         error
	WriteErrors []error
}

// Failed reports whether the location's pipeline aborted.
func (r LocationResult) Failed() bool {
	return r.Err != nil
}

// RunSummary is the coarse result of one pipeline invocation.
type RunSummary struct {
	Pipeline    string
	RequestTime string
	Results     []LocationResult
}

// Failed returns the number of locations whose pipeline aborted.
func (s RunSummary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// Status is "success", "partial" or "failure".
func (s RunSummary) Status() string {
	attempted := 0
	for _, r := range s.Results {
		if !r.Skipped {
			attempted++
		}
	}
	failed := s.Failed()
	switch {
	case failed == 0:
		return "success"
	case failed == attempted:
		return "failure"
	default:
		return "partial"
	}
}

// Err combines every reported error of the run, or returns nil.
func (s RunSummary) Err() error {
	var merr *multierror.Error
	for _, r := range s.Results {
		if r.Err != nil {
			merr = multierror.Append(merr, r.Err)
		}
		for _, werr := range r.WriteErrors {
			merr = multierror.Append(merr, werr)
		}
	}
	return merr.ErrorOrNil()
}

// MarshalJSON implements json.Marshaler.
func (s RunSummary) MarshalJSON() ([]byte, error) {
	type resultView struct {
		LocationID  string   `json:"locationID"`
		Skipped     bool     `json:"skipped,omitempty"`
		Records     int      `json:"records"`
		Error       string   `json:"error,omitempty"`
		WriteErrors []string `json:"writeErrors,omitempty"`
	}
	view := struct {
		Pipeline    string       `json:"pipeline"`
		RequestTime string       `json:"requestTime"`
		Status      string       `json:"status"`
		Results     []resultView `json:"results"`
	}{
		Pipeline:    s.Pipeline,
		RequestTime: s.RequestTime,
		Status:      s.Status(),
		Results:     make([]resultView, 0, len(s.Results)),
	}
	for _, r := range s.Results {
		rv := resultView{LocationID: r.LocationID, Skipped: r.Skipped, Records: r.Records}
		if r.Err != nil {
			rv.Error = r.Err.Error()
		}
		for _, werr := range r.WriteErrors {
			rv.WriteErrors = append(rv.WriteErrors, werr.Error())
		}
		view.Results = append(view.Results, rv)
	}
	return json.Marshal(view)
}

// RunIngestion fetches and stores forecasts for every due location. Each
// location gets its own result slot; one location's failure never stops
// another.
func (s *Service) RunIngestion(ctx context.Context) RunSummary {
	started := s.clock.Now()
	requestTime := FormatRequestTime(started)
	s.logger.Info("running forecast ingestion", "request_time", requestTime)

	results := s.fanOut(func(loc Location) LocationResult {
		return s.IngestLocation(ctx, loc, requestTime)
	})

	summary := RunSummary{Pipeline: PipelineIngest, RequestTime: requestTime, Results: results}
	s.finish(summary, started)
	return summary
}

// RunReport renders and posts the current bucket for every location.
func (s *Service) RunReport(ctx context.Context) RunSummary {
	started := s.clock.Now()
	requestTime := FormatRequestTime(started)
	requestHour := RequestHour(requestTime)
	s.logger.Info("running forecast report", "request_hour", requestHour)

	results := s.fanOut(func(loc Location) LocationResult {
		return s.ReportLocation(ctx, loc, requestHour)
	})

	summary := RunSummary{Pipeline: PipelineReport, RequestTime: requestTime, Results: results}
	s.finish(summary, started)
	return summary
}

func (s *Service) fanOut(work func(Location) LocationResult) []LocationResult {
	locations := s.catalog.Locations()
	results := make([]LocationResult, len(locations))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			results[i] = work(loc)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Service) finish(summary RunSummary, started time.Time) {
	failed := summary.Failed()
	s.metrics.ObserveRun(summary.Pipeline, s.clock.Now().Sub(started), failed)
	if err := summary.Err(); err != nil {
		s.logger.Warn("pipeline completed with errors",
			"pipeline", summary.Pipeline,
			"status", summary.Status(),
			"failed_locations", failed,
			"err", err,
		)
		return
	}
	s.logger.Info("pipeline completed", "pipeline", summary.Pipeline, "status", summary.Status())
}

// IngestLocation runs fetch, normalize, build and write for one location.
func (s *Service) IngestLocation(ctx context.Context, loc Location, requestTime string) LocationResult {
	res := LocationResult{LocationID: loc.ID}
	log := s.logger.With("location_id", loc.ID, "location", loc.Name)

	if !ShouldFetch(loc, requestTime, s.pullHours) {
		log.Info("not fetching location this hour", "hour", HourOfDay(requestTime))
		res.Skipped = true
		s.metrics.ObserveFetch(loc.ID, OutcomeSkipped)
		return res
	}

	resp, err := s.fetcher.FetchHourly(ctx, loc.ID)
	if err != nil {
		res.Err = NewFetchError(loc.ID, err)
		log.Error("unable to get forecast", "err", err)
		s.metrics.ObserveFetch(loc.ID, OutcomeError)
		return res
	}
	s.metrics.ObserveFetch(loc.ID, OutcomeSuccess)

	records := BuildRecords(loc, requestTime, NormalizeResponse(resp), s.ids)
	res.Records = len(records)

	for _, rec := range records {
		if err := s.store.PutRecord(ctx, rec); err != nil {
			res.WriteErrors = append(res.WriteErrors, NewWriteError(loc.ID, rec.ID, err))
			log.Error("unable to save forecast", "record_id", rec.ID, "err", err)
			s.metrics.ObserveWrite(loc.ID, OutcomeError)
			continue
		}
		s.metrics.ObserveWrite(loc.ID, OutcomeSuccess)
		log.Debug("saved forecast", "record_id", rec.ID, "date_time", rec.DateTime)
	}

	log.Info("forecast ingested",
		"bucket", BucketKey(loc.ID, RequestHour(requestTime)),
		"records", len(records),
		"failed_writes", len(res.WriteErrors),
	)
	return res
}

// ReportLocation reads, renders and posts one location's bucket.
func (s *Service) ReportLocation(ctx context.Context, loc Location, requestHour string) LocationResult {
	res := LocationResult{LocationID: loc.ID}
	log := s.logger.With("location_id", loc.ID, "location", loc.Name)

	bucket, err := s.Display(ctx, loc, requestHour)
	if err != nil {
		res.Err = err
		outcome := OutcomeError
		if errors.Is(err, ErrNoForecast) {
			outcome = OutcomeNoForecast
		}
		log.Error("unable to build forecast", "request_hour", requestHour, "err", err)
		s.metrics.ObserveReport(loc.ID, outcome)
		return res
	}

	message := RenderForecast(loc, bucket)
	log.Debug("forecast rendered", "message", message)

	if err := s.notifier.Send(ctx, s.username, message); err != nil {
		res.Err = NewSendError(loc.ID, err)
		log.Error("error posting forecast", "err", err)
		s.metrics.ObserveReport(loc.ID, OutcomeSendError)
		return res
	}

	res.Records = len(bucket.Hours)
	s.metrics.ObserveReport(loc.ID, OutcomeSuccess)
	log.Info("forecast posted", "hours", len(bucket.Hours), "fetch_time", bucket.FetchTime)
	return res
}

// Display reads a bucket and reduces it to its display window.
func (s *Service) Display(ctx context.Context, loc Location, requestHour string) (DisplayBucket, error) {
	key := BucketKey(loc.ID, requestHour)

	result, err := s.store.QueryBucket(ctx, loc.ID, requestHour)
	if err != nil {
		return DisplayBucket{}, NewReadError(loc.ID, key, err)
	}
	if result.Truncated {
		s.logger.Warn("not all data was returned for bucket", "bucket", key, "records", len(result.Records))
	}

	ordered, err := OrderRecords(result.Records)
	if err != nil {
		return DisplayBucket{}, NewReadError(loc.ID, key, err)
	}
	return WindowRecords(ordered, s.classifier), nil
}

// Forecast resolves a catalog location and returns its display window for
// requestHour.
func (s *Service) Forecast(ctx context.Context, locationID, requestHour string) (Location, DisplayBucket, error) {
	loc, ok := s.catalog.Lookup(locationID)
	if !ok {
		return Location{}, DisplayBucket{}, ErrUnknownLocation
	}
	bucket, err := s.Display(ctx, loc, requestHour)
	if err != nil {
		return loc, DisplayBucket{}, err
	}
	return loc, bucket, nil
}
