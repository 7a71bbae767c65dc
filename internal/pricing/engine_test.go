package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/carquote/internal/catalog"
)

func ptr[T any](v T) *T { return &v }

func rate(s string) *decimal.Decimal { return ptr(decimal.RequireFromString(s)) }

func scenarioModel(trimPolicy *catalog.PricingPolicy, ecoDiscount *int64) (*catalog.Model, *catalog.Trim) {
	m := &catalog.Model{
		ID: "ev3",
		Colors: []catalog.Color{
			{Code: "SWP", Name: "Snow White Pearl", Extra: 80_000},
			{Code: "ABP", Name: "Aurora Black Pearl"},
		},
		Trims: []catalog.Trim{{
			Code:      "air",
			Name:      "Air",
			BasePrice: 20_000_000,
			Options: []catalog.Option{
				{Code: "nav", Name: "Navigation", Price: 1_000_000},
				{Code: "roof", Name: "Sunroof", Price: 500_000},
				{Code: "hud", Name: "Head-up display", Price: 700_000, Included: true},
				{Code: "tow", Name: "Tow hitch", Price: 300_000, Allowed: ptr(false)},
			},
			Pricing:     trimPolicy,
			EcoDiscount: ecoDiscount,
		}},
	}
	return m, &m.Trims[0]
}

func TestComputeExciseOnly(t *testing.T) {
	m, trim := scenarioModel(nil, nil)
	q := Compute(m, trim, []string{"nav"}, ColorContext{})

	require.Equal(t, Money(20_000_000), q.BasePrice)
	require.Equal(t, Money(1_000_000), q.OptionsTotal)
	require.Equal(t, Money(21_000_000), q.Subtotal)
	require.Equal(t, Money(315_000), q.DiscountInha)
	require.Zero(t, q.EcoCombined)
	require.Equal(t, Money(20_685_000), q.Total)
}

func TestComputeEcoCaps(t *testing.T) {
	m, trim := scenarioModel(&catalog.PricingPolicy{
		EcoKind:         ptr(catalog.EcoEV),
		EcoExciseCap:    ptr(int64(3_000_000)),
		EcoEducationCap: ptr(int64(900_000)),
		PriceIsFinal:    ptr(false),
	}, nil)
	q := Compute(m, trim, []string{"nav"}, ColorContext{})

	require.Equal(t, Money(735_000), q.EcoExcise)
	require.Equal(t, Money(220_500), q.EcoEducation)
	require.Equal(t, Money(955_500), q.EcoCombined)
	require.Equal(t, Money(19_729_500), q.Total)
}

func TestComputeEcoCapsClampToCaps(t *testing.T) {
	m, trim := scenarioModel(&catalog.PricingPolicy{
		EcoKind:         ptr(catalog.EcoHEV),
		EcoExciseCap:    ptr(int64(400_000)),
		EcoEducationCap: ptr(int64(100_000)),
	}, nil)
	q := Compute(m, trim, []string{"nav"}, ColorContext{})

	require.Equal(t, Money(400_000), q.EcoExcise)
	require.Equal(t, Money(100_000), q.EcoEducation)
	require.Equal(t, Money(500_000), q.EcoCombined)
}

func TestComputePriceIsFinalUsesFixedDiscountOnly(t *testing.T) {
	m, trim := scenarioModel(&catalog.PricingPolicy{
		EcoKind:         ptr(catalog.EcoEV),
		EcoExciseCap:    ptr(int64(3_000_000)),
		EcoEducationCap: ptr(int64(900_000)),
		PriceIsFinal:    ptr(true),
	}, ptr(int64(1_000_000)))
	q := Compute(m, trim, []string{"nav"}, ColorContext{})

	require.Equal(t, Money(1_000_000), q.EcoCombined)
	require.Zero(t, q.EcoExcise)
	require.Zero(t, q.EcoEducation)
	require.Equal(t, Money(19_685_000), q.Total)
}

func TestComputeZeroCapsKeepsFixedDiscount(t *testing.T) {
	m, trim := scenarioModel(&catalog.PricingPolicy{EcoKind: ptr(catalog.EcoPHEV)}, ptr(int64(250_000)))
	q := Compute(m, trim, nil, ColorContext{})

	require.Equal(t, Money(250_000), q.EcoCombined)
}

func TestComputeFixedDiscountAddsToCapBranch(t *testing.T) {
	m, trim := scenarioModel(&catalog.PricingPolicy{
		EcoKind:      ptr(catalog.EcoEV),
		EcoExciseCap: ptr(int64(3_000_000)),
	}, ptr(int64(100_000)))
	q := Compute(m, trim, []string{"nav"}, ColorContext{})

	// education cap is 0, so only the excise component applies
	require.Equal(t, Money(735_000), q.EcoExcise)
	require.Zero(t, q.EcoEducation)
	require.Equal(t, Money(835_000), q.EcoCombined)
}

func TestComputeExciseIneligible(t *testing.T) {
	m, trim := scenarioModel(nil, nil)
	m.Pricing = &catalog.PricingPolicy{ExciseEligible: ptr(false)}
	q := Compute(m, trim, []string{"nav"}, ColorContext{})

	require.Zero(t, q.DiscountInha)
	require.Equal(t, q.Subtotal, q.Total)
	for _, l := range q.Lines {
		require.NotEqual(t, LabelExcise, l.Label)
	}
}

func TestComputeIncludedAndDisallowedOptions(t *testing.T) {
	m, trim := scenarioModel(nil, nil)
	q := Compute(m, trim, []string{"roof", "tow", "hud"}, ColorContext{})

	codes := make([]string, 0, len(q.SelectedOptions))
	for _, it := range q.SelectedOptions {
		codes = append(codes, it.Code)
	}
	require.Equal(t, []string{"roof", "hud"}, codes)
	require.Equal(t, Money(500_000), q.OptionsTotal)
}

func TestComputeColorSurcharge(t *testing.T) {
	m, trim := scenarioModel(nil, nil)
	color := ColorContextFor(m, "SWP")
	q := Compute(m, trim, nil, color)

	require.Equal(t, Money(80_000), q.OptionsTotal)
	last := q.SelectedOptions[len(q.SelectedOptions)-1]
	require.Equal(t, "color:SWP", last.Code)
	require.Equal(t, "Exterior color (Snow White Pearl)", last.Name)
	require.Equal(t, Money(80_000), last.Price)

	plain := Compute(m, trim, nil, ColorContextFor(m, "ABP"))
	for _, it := range plain.SelectedOptions {
		require.NotContains(t, it.Code, ColorPrefix)
	}
	require.Zero(t, ColorContextFor(m, "nope").Extra)
}

func TestComputeLines(t *testing.T) {
	m, trim := scenarioModel(nil, nil)
	m.Pricing = &catalog.PricingPolicy{ExciseEligible: ptr(false)}
	q := Compute(m, trim, nil, ColorContext{})
	require.Equal(t, []Line{
		{Label: "Base price (Air)", Amount: 20_000_000},
		{Label: LabelOptions, Amount: 0},
		{Label: LabelTotal, Amount: 20_000_000},
	}, q.Lines)

	m.Pricing = nil
	trim.EcoDiscount = ptr(int64(1_000))
	q = Compute(m, trim, []string{"nav"}, ColorContext{})
	labels := make([]string, 0, len(q.Lines))
	for _, l := range q.Lines {
		labels = append(labels, l.Label)
	}
	require.Equal(t, []string{"Base price (Air)", LabelOptions, LabelExcise, LabelEco, LabelTotal}, labels)
	require.Equal(t, -q.DiscountInha, q.Lines[2].Amount)
	require.Equal(t, -q.EcoCombined, q.Lines[3].Amount)
}

func TestComputeTotalIdentityWithoutClamp(t *testing.T) {
	m, trim := scenarioModel(&catalog.PricingPolicy{PriceIsFinal: ptr(true)}, ptr(int64(50_000_000)))
	q := Compute(m, trim, nil, ColorContext{})

	require.Equal(t, q.Subtotal-q.DiscountInha-q.EcoCombined, q.Total)
	require.Negative(t, q.Total)
}

func TestComputeIsDeterministic(t *testing.T) {
	m, trim := scenarioModel(nil, ptr(int64(10)))
	selected := []string{"nav", "roof"}
	first := Compute(m, trim, selected, ColorContextFor(m, "SWP"))
	second := Compute(m, trim, selected, ColorContextFor(m, "SWP"))
	require.Equal(t, first, second)
	require.Equal(t, []string{"nav", "roof"}, selected)
}

func TestResolvePerFieldPrecedence(t *testing.T) {
	m := &catalog.Model{
		Pricing: &catalog.PricingPolicy{
			ExciseEligible:    ptr(false),
			ExciseReducedRate: rate("0.02"),
			EcoKind:           ptr(catalog.EcoHEV),
			EcoExciseCap:      ptr(int64(1_000)),
		},
	}
	trim := &catalog.Trim{Pricing: &catalog.PricingPolicy{
		ExciseEligible: ptr(true),
		EcoKind:        ptr(catalog.EcoNone),
	}}

	p := Resolve(m, trim)
	require.True(t, p.ExciseEligible)
	require.Equal(t, catalog.EcoNone, p.EcoKind)
	require.True(t, p.ExciseReducedRate.Equal(decimal.RequireFromString("0.02")))
	require.True(t, p.ExciseOriginalRate.Equal(DefaultExciseOriginalRate))
	require.Equal(t, Money(1_000), p.EcoExciseCap)
	require.Zero(t, p.EcoEducationCap)
	require.False(t, p.PriceIsFinal)
}

func TestResolveDefaults(t *testing.T) {
	p := Resolve(&catalog.Model{}, &catalog.Trim{})
	require.True(t, p.ExciseEligible)
	require.True(t, p.ExciseOriginalRate.Equal(decimal.RequireFromString("0.05")))
	require.True(t, p.ExciseReducedRate.Equal(decimal.RequireFromString("0.035")))
	require.Equal(t, catalog.EcoNone, p.EcoKind)
}

func TestOptionsTotalProperty(t *testing.T) {
	m, trim := scenarioModel(nil, nil)
	color := ColorContextFor(m, "SWP")
	selections := [][]string{nil, {"nav"}, {"nav", "roof"}, {"roof", "tow"}, {"hud"}}
	for _, sel := range selections {
		q := Compute(m, trim, sel, color)
		var want Money
		for _, code := range sel {
			if o, ok := trim.Option(code); ok && o.IsAllowed() && !o.Included {
				want += o.Price
			}
		}
		want += color.Extra
		require.Equal(t, want, q.OptionsTotal, "selection %v", sel)
		require.Equal(t, q.Subtotal-q.DiscountInha-q.EcoCombined, q.Total)
	}
}
