package export

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/carquote/internal/catalog"
	"github.com/noah-isme/carquote/internal/obs"
	"github.com/noah-isme/carquote/internal/pricing"
)

// Result pairs a scenario with its quote.
type Result struct {
	Scenario Scenario
	Quote    pricing.Quote
}

// Report is the outcome of one batch run.
type Report struct {
	RunID   string
	Results []Result
}

// Runner prices scenarios against a catalog.
type Runner struct {
	Catalog *catalog.Catalog
	Metrics *obs.DomainMetrics
}

// Quote prices a single scenario.
func (r Runner) Quote(s Scenario) (Result, error) {
	m, t, err := r.Catalog.Resolve(s.Model, s.Trim)
	if err != nil {
		return Result{}, err
	}
	q := pricing.Compute(m, t, s.Options, pricing.ColorContextFor(m, s.Color))
	r.Metrics.ObserveQuote(m.ID, t.Code, q.Total)
	return Result{Scenario: s, Quote: q}, nil
}

// Run prices every scenario in order. The first lookup failure aborts the
// run and no partial report is returned.
func (r Runner) Run(ctx context.Context, scenarios []Scenario) (Report, error) {
	runID := uuid.NewString()
	_, span := obs.StartSpan(ctx, "export.Run",
		attribute.String("run_id", runID),
		attribute.Int("scenarios", len(scenarios)),
	)
	report := Report{RunID: runID, Results: make([]Result, 0, len(scenarios))}
	for i, s := range scenarios {
		res, err := r.Quote(s)
		if err != nil {
			r.Metrics.ObserveExport("failed")
			err = fmt.Errorf("scenario %d: %w", i, err)
			obs.EndSpan(span, err)
			return Report{}, err
		}
		r.Metrics.ObserveExport("ok")
		report.Results = append(report.Results, res)
	}
	obs.EndSpan(span, nil)
	return report, nil
}
