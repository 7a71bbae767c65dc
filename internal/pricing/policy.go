package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/carquote/internal/catalog"
)

var (
	// DefaultExciseOriginalRate is the statutory excise rate before reduction.
	DefaultExciseOriginalRate = decimal.RequireFromString("0.05")
	// DefaultExciseReducedRate is the excise rate after the temporary reduction.
	DefaultExciseReducedRate = decimal.RequireFromString("0.035")
	// EducationTaxRate is the education tax levied on top of excise.
	EducationTaxRate = decimal.RequireFromString("0.3")
)

// Policy is a fully resolved pricing policy.
type Policy struct {
	ExciseEligible     bool            `json:"exciseEligible"`
	ExciseOriginalRate decimal.Decimal `json:"exciseOriginalRate"`
	ExciseReducedRate  decimal.Decimal `json:"exciseReducedRate"`
	EcoKind            catalog.EcoKind `json:"ecoKind"`
	EcoExciseCap       Money           `json:"ecoExciseCap"`
	EcoEducationCap    Money           `json:"ecoEducationCap"`
	PriceIsFinal       bool            `json:"priceIsFinal"`
}

// Resolve merges trim and model policies field by field: a trim value wins,
// else the model value, else the default. A field explicitly set to its
// default value on the trim still shadows the model.
func Resolve(m *catalog.Model, t *catalog.Trim) Policy {
	var tp, mp *catalog.PricingPolicy
	if t != nil {
		tp = t.Pricing
	}
	if m != nil {
		mp = m.Pricing
	}
	return Policy{
		ExciseEligible: pick(tp, mp, true, func(p *catalog.PricingPolicy) *bool { return p.ExciseEligible }),
		ExciseOriginalRate: pick(tp, mp, DefaultExciseOriginalRate, func(p *catalog.PricingPolicy) *decimal.Decimal {
			return p.ExciseOriginalRate
		}),
		ExciseReducedRate: pick(tp, mp, DefaultExciseReducedRate, func(p *catalog.PricingPolicy) *decimal.Decimal {
			return p.ExciseReducedRate
		}),
		EcoKind:         pick(tp, mp, catalog.EcoNone, func(p *catalog.PricingPolicy) *catalog.EcoKind { return p.EcoKind }),
		EcoExciseCap:    pick(tp, mp, 0, func(p *catalog.PricingPolicy) *int64 { return p.EcoExciseCap }),
		EcoEducationCap: pick(tp, mp, 0, func(p *catalog.PricingPolicy) *int64 { return p.EcoEducationCap }),
		PriceIsFinal:    pick(tp, mp, false, func(p *catalog.PricingPolicy) *bool { return p.PriceIsFinal }),
	}
}

func pick[T any](trim, model *catalog.PricingPolicy, fallback T, field func(*catalog.PricingPolicy) *T) T {
	for _, p := range []*catalog.PricingPolicy{trim, model} {
		if p == nil {
			continue
		}
		if v := field(p); v != nil {
			return *v
		}
	}
	return fallback
}
