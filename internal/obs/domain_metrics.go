package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DomainMetrics groups collectors describing configurator activity.
type DomainMetrics struct {
	QuotesComputed  *prometheus.CounterVec
	QuoteTotal      *prometheus.HistogramVec
	Evaluations     *prometheus.CounterVec
	Toggles         *prometheus.CounterVec
	CatalogModels   prometheus.Gauge
	ExportScenarios *prometheus.CounterVec
}

// NewDomainMetrics initialises and registers domain-specific Prometheus collectors.
func NewDomainMetrics(namespace string, reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &DomainMetrics{
		QuotesComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_computed_total",
			Help:      "Count of computed quotes by model and trim.",
		}, []string{"model", "trim"}),
		QuoteTotal: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_total_amount",
			Help:      "Distribution of final quote totals.",
			Buckets:   []float64{10e6, 20e6, 30e6, 40e6, 50e6, 70e6, 100e6},
		}, []string{"model"}),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_evaluations_total",
			Help:      "Count of option availability evaluations by model and trim.",
		}, []string{"model", "trim"}),
		Toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_toggles_total",
			Help:      "Count of option toggle requests by outcome.",
		}, []string{"result"}),
		CatalogModels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_models_loaded",
			Help:      "Number of models in the loaded catalog.",
		}),
		ExportScenarios: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_scenarios_total",
			Help:      "Count of batch export scenarios by outcome.",
		}, []string{"result"}),
	}
	mustRegisterCollector(reg, m.QuotesComputed, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.QuotesComputed = v
		}
	})
	mustRegisterCollector(reg, m.QuoteTotal, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.HistogramVec); ok {
			m.QuoteTotal = v
		}
	})
	mustRegisterCollector(reg, m.Evaluations, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.Evaluations = v
		}
	})
	mustRegisterCollector(reg, m.Toggles, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.Toggles = v
		}
	})
	mustRegisterCollector(reg, m.CatalogModels, func(existing prometheus.Collector) {
		if v, ok := existing.(prometheus.Gauge); ok {
			m.CatalogModels = v
		}
	})
	mustRegisterCollector(reg, m.ExportScenarios, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.ExportScenarios = v
		}
	})
	return m
}

// ObserveQuote records a computed quote.
func (m *DomainMetrics) ObserveQuote(model, trim string, total int64) {
	if m == nil {
		return
	}
	m.QuotesComputed.WithLabelValues(model, trim).Inc()
	m.QuoteTotal.WithLabelValues(model).Observe(float64(total))
}

// ObserveEvaluation records an availability evaluation.
func (m *DomainMetrics) ObserveEvaluation(model, trim string) {
	if m == nil {
		return
	}
	m.Evaluations.WithLabelValues(model, trim).Inc()
}

// ObserveToggle records a toggle outcome: added, removed or ignored.
func (m *DomainMetrics) ObserveToggle(result string) {
	if m == nil {
		return
	}
	m.Toggles.WithLabelValues(result).Inc()
}

// ObserveExport records a batch export scenario outcome: ok or failed.
func (m *DomainMetrics) ObserveExport(result string) {
	if m == nil {
		return
	}
	m.ExportScenarios.WithLabelValues(result).Inc()
}

// SetCatalogModels records the catalog size.
func (m *DomainMetrics) SetCatalogModels(n int) {
	if m == nil {
		return
	}
	m.CatalogModels.Set(float64(n))
}
