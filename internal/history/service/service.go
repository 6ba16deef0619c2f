// Package service orchestrates move history pages: fetch stored audit rows,
// classify and render each through the history events engine, and serve the
// result with a short-lived cache in front.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"movehistory/internal/history/metrics"
	"movehistory/internal/history/store"
	"movehistory/internal/historyevents"
	platformredis "movehistory/internal/platform/redis"
)

// DefaultPerPage bounds a history page when the caller does not specify one.
const DefaultPerPage int64 = 20

// defaultCacheTTL keeps rendered pages briefly; rendering is deterministic so
// staleness only delays newly ingested rows, never changes existing ones.
const defaultCacheTTL = 30 * time.Second

// HistoryEvent is one rendered timeline entry, pairing the engine's display
// output with the row identity and actor the UI shows alongside it.
type HistoryEvent struct {
	ID              uuid.UUID                     `json:"id"`
	Title           string                        `json:"title"`
	DetailsType     historyevents.DetailsType     `json:"detailsType"`
	Details         historyevents.RenderedDetails `json:"details"`
	EventName       string                        `json:"eventName,omitempty"`
	TableName       string                        `json:"tableName,omitempty"`
	ActionedAt      time.Time                     `json:"actionedAt"`
	SessionUserName string                        `json:"sessionUserName,omitempty"`
}

// HistoryPage is one page of a move's rendered history, newest first.
type HistoryPage struct {
	Locator    string         `json:"locator"`
	Page       int64          `json:"page"`
	PerPage    int64          `json:"perPage"`
	TotalCount int64          `json:"totalCount"`
	Events     []HistoryEvent `json:"historyEvents"`
}

// Service renders move history pages. The registry is read-only after
// construction and every render is independent, so the service is safe for
// concurrent use.
type Service struct {
	store    store.Store
	registry *historyevents.Registry
	cache    *platformredis.Client
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	cacheTTL time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables the rendered-page cache. A nil client leaves caching off.
func WithCache(cache *platformredis.Client) Option {
	return func(s *Service) { s.cache = cache }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCacheTTL overrides the rendered-page cache lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// New constructs the history service.
func New(st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    st,
		registry: historyevents.Default(),
		logger:   logger,
		tracer:   otel.Tracer("movehistory/history"),
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// MoveHistory fetches and renders one page of a move's history. Rows render in
// store order; a record no template matches still renders via the engine's
// fallback, so a page fetch only fails on store errors.
func (s *Service) MoveHistory(ctx context.Context, locator string, page, perPage int64) (*HistoryPage, error) {
	ctx, span := s.tracer.Start(ctx, "history.MoveHistory")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	if cached, ok := s.cacheGet(ctx, locator, page, perPage); ok {
		return cached, nil
	}

	start := time.Now()
	rows, total, err := s.store.FetchMoveHistory(ctx, locator, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("fetch history for move %s: %w", locator, err)
	}

	events := make([]HistoryEvent, len(rows))
	for i, row := range rows {
		record := row.ToRecord()
		template := s.registry.Match(record)
		rendered := template.Render(record)

		s.metrics.ObserveRender(string(rendered.DetailsType), s.registry.IsFallback(template))

		events[i] = HistoryEvent{
			ID:              row.ID,
			Title:           rendered.Title,
			DetailsType:     rendered.DetailsType,
			Details:         rendered.Details,
			EventName:       row.EventName,
			TableName:       row.TableName,
			ActionedAt:      row.ActionTstamp,
			SessionUserName: row.SessionUserName(),
		}
	}
	s.metrics.ObserveFetch(time.Since(start).Seconds())

	result := &HistoryPage{
		Locator:    locator,
		Page:       page,
		PerPage:    perPage,
		TotalCount: total,
		Events:     events,
	}
	s.cacheSet(ctx, result)
	return result, nil
}

func cacheKey(locator string, page, perPage int64) string {
	return fmt.Sprintf("move_history:%s:%d:%d", locator, page, perPage)
}

func (s *Service) cacheGet(ctx context.Context, locator string, page, perPage int64) (*HistoryPage, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey(locator, page, perPage)).Bytes()
	if err != nil {
		return nil, false
	}
	var cached HistoryPage
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

func (s *Service) cacheSet(ctx context.Context, page *HistoryPage) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(page.Locator, page.Page, page.PerPage), raw, s.cacheTTL).Err(); err != nil {
		s.logger.WarnContext(ctx, "failed to cache rendered history page",
			"locator", page.Locator,
			"error", err,
		)
	}
}
