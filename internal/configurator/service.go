// Package configurator wires the catalog, availability, selection and pricing
// packages into the operations a configurator front end drives.
package configurator

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/carquote/internal/availability"
	"github.com/noah-isme/carquote/internal/catalog"
	"github.com/noah-isme/carquote/internal/common"
	"github.com/noah-isme/carquote/internal/obs"
	"github.com/noah-isme/carquote/internal/pricing"
	"github.com/noah-isme/carquote/internal/selection"
)

// Toggle outcomes reported to metrics.
const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
	ToggleIgnored = "ignored"
)

// Service answers configurator queries against an immutable catalog.
type Service struct {
	catalog *catalog.Catalog
	metrics *obs.DomainMetrics
}

// ServiceConfig configures the Service dependencies.
type ServiceConfig struct {
	Catalog *catalog.Catalog
	Metrics *obs.DomainMetrics
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("configurator: catalog is required")
	}
	return &Service{catalog: cfg.Catalog, metrics: cfg.Metrics}, nil
}

// Choices lists pickable exterior colors and interiors.
type Choices struct {
	Colors    []selection.ColorChoice    `json:"colors"`
	Interiors []selection.InteriorChoice `json:"interiors"`
}

// TrimDefaults is the initial configurator view after picking a trim.
type TrimDefaults struct {
	State        selection.State  `json:"state"`
	Features     []string         `json:"features"`
	Choices      Choices          `json:"choices"`
	Availability availability.Map `json:"availability"`
	Quote        pricing.Quote    `json:"quote"`
}

// ToggleResult is the recomputed view after toggling one option.
type ToggleResult struct {
	Selected     []string         `json:"selected"`
	Changed      bool             `json:"changed"`
	Availability availability.Map `json:"availability"`
	Quote        pricing.Quote    `json:"quote"`
}

// ListModels returns the list-view projection of every model.
func (s *Service) ListModels(ctx context.Context) []catalog.Summary {
	_, span := obs.StartSpan(ctx, "configurator.ListModels")
	defer span.End()
	return s.catalog.Summaries()
}

// GetModel returns a full model.
func (s *Service) GetModel(ctx context.Context, modelID string) (*catalog.Model, error) {
	_, span := obs.StartSpan(ctx, "configurator.GetModel", attribute.String("model", modelID))
	m, err := s.catalog.Model(modelID)
	obs.EndSpan(span, err)
	if err != nil {
		return nil, lookupError(err)
	}
	return m, nil
}

// Defaults returns the initial state for a trim together with the matching
// choices, availability and quote.
func (s *Service) Defaults(ctx context.Context, modelID, trimCode string) (TrimDefaults, error) {
	m, t, err := s.resolve(ctx, "configurator.Defaults", modelID, trimCode)
	if err != nil {
		return TrimDefaults{}, err
	}
	state := selection.Defaults(m, t)
	return TrimDefaults{
		State:        state,
		Features:     t.Features(m),
		Choices:      choices(m, t, state.Selected),
		Availability: s.evaluate(m, t, state.Selected, state.Color),
		Quote:        s.quote(m, t, state.Selected, state.Color),
	}, nil
}

// Availability evaluates every option of the trim for the selection.
func (s *Service) Availability(ctx context.Context, modelID, trimCode string, selected []string, color string) (availability.Map, error) {
	m, t, err := s.resolve(ctx, "configurator.Availability", modelID, trimCode)
	if err != nil {
		return nil, err
	}
	return s.evaluate(m, t, selected, color), nil
}

// Choices lists color and interior pickability for the selection.
func (s *Service) Choices(ctx context.Context, modelID, trimCode string, selected []string) (Choices, error) {
	m, t, err := s.resolve(ctx, "configurator.Choices", modelID, trimCode)
	if err != nil {
		return Choices{}, err
	}
	return choices(m, t, selected), nil
}

// Toggle applies one toggle request and recomputes availability and the quote
// for the resulting selection.
func (s *Service) Toggle(ctx context.Context, modelID, trimCode, code string, selected []string, color string) (ToggleResult, error) {
	m, t, err := s.resolve(ctx, "configurator.Toggle", modelID, trimCode)
	if err != nil {
		return ToggleResult{}, err
	}
	avail := s.evaluate(m, t, selected, color)
	next := selection.Toggle(code, selected, avail, selection.BuildMutexIndex(m.Rules, t.Code))
	if next == nil {
		next = []string{}
	}

	result := toggleOutcome(code, selected, next)
	s.metrics.ObserveToggle(result)

	return ToggleResult{
		Selected:     next,
		Changed:      result != ToggleIgnored,
		Availability: s.evaluate(m, t, next, color),
		Quote:        s.quote(m, t, next, color),
	}, nil
}

// Quote prices the trim with the selection and color.
func (s *Service) Quote(ctx context.Context, modelID, trimCode string, selected []string, color string) (pricing.Quote, error) {
	m, t, err := s.resolve(ctx, "configurator.Quote", modelID, trimCode)
	if err != nil {
		return pricing.Quote{}, err
	}
	return s.quote(m, t, selected, color), nil
}

func (s *Service) resolve(ctx context.Context, name, modelID, trimCode string) (*catalog.Model, *catalog.Trim, error) {
	_, span := obs.StartSpan(ctx, name,
		attribute.String("model", modelID),
		attribute.String("trim", trimCode),
	)
	m, t, err := s.catalog.Resolve(modelID, trimCode)
	obs.EndSpan(span, err)
	if err != nil {
		return nil, nil, lookupError(err)
	}
	return m, t, nil
}

func (s *Service) evaluate(m *catalog.Model, t *catalog.Trim, selected []string, color string) availability.Map {
	s.metrics.ObserveEvaluation(m.ID, t.Code)
	return availability.Evaluate(m, t, selected, color)
}

func (s *Service) quote(m *catalog.Model, t *catalog.Trim, selected []string, color string) pricing.Quote {
	q := pricing.Compute(m, t, selected, pricing.ColorContextFor(m, color))
	s.metrics.ObserveQuote(m.ID, t.Code, q.Total)
	return q
}

func choices(m *catalog.Model, t *catalog.Trim, selected []string) Choices {
	return Choices{
		Colors:    selection.ColorChoices(m, t, selected),
		Interiors: selection.InteriorChoices(m, t),
	}
}

func toggleOutcome(code string, before, after []string) string {
	had, has := false, false
	for _, c := range before {
		if c == code {
			had = true
			break
		}
	}
	for _, c := range after {
		if c == code {
			has = true
			break
		}
	}
	switch {
	case !had && has:
		return ToggleAdded
	case had && !has:
		return ToggleRemoved
	default:
		return ToggleIgnored
	}
}

func lookupError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrModelNotFound):
		return common.NotFound("MODEL_NOT_FOUND", err)
	case errors.Is(err, catalog.ErrTrimNotFound):
		return common.NotFound("TRIM_NOT_FOUND", err)
	default:
		return err
	}
}
