package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/carquote/internal/catalog"
)

// Money represents a monetary value in whole currency units.
type Money = int64

// ColorPrefix marks the synthetic line item carrying a color surcharge.
const ColorPrefix = "color:"

// ColorContext describes the chosen exterior color for pricing.
type ColorContext struct {
	Code  string
	Name  string
	Extra Money
}

// ColorContextFor builds the pricing context for a color code. Unknown or
// empty codes carry no surcharge.
func ColorContextFor(m *catalog.Model, code string) ColorContext {
	if code == "" || m == nil {
		return ColorContext{Code: code, Name: "Exterior color"}
	}
	c, ok := m.Color(code)
	if !ok {
		return ColorContext{Code: code, Name: "Exterior color"}
	}
	name := c.Name
	if name == "" {
		name = code
	}
	if c.Extra > 0 {
		return ColorContext{Code: code, Name: fmt.Sprintf("Exterior color (%s)", name), Extra: c.Extra}
	}
	return ColorContext{Code: code, Name: name}
}

// Item is one priced entry of a quote.
type Item struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Price    Money  `json:"price"`
	Included bool   `json:"included,omitempty"`
}

// Line is one labeled amount for display. Reductions are negative.
type Line struct {
	Label  string `json:"label"`
	Amount Money  `json:"amount"`
}

// Quote is an itemized price breakdown. It is recomputed from scratch for
// every selection and never stored.
type Quote struct {
	BasePrice       Money  `json:"basePrice"`
	OptionsTotal    Money  `json:"optionsTotal"`
	Subtotal        Money  `json:"subtotal"`
	DiscountInha    Money  `json:"discountInha"`
	EcoExcise       Money  `json:"ecoExcise"`
	EcoEducation    Money  `json:"ecoEducation"`
	EcoCombined     Money  `json:"ecoCombined"`
	Total           Money  `json:"total"`
	SelectedOptions []Item `json:"selectedOptions"`
	Lines           []Line `json:"lines"`
	Policy          Policy `json:"policy"`
}

// Display labels for quote lines.
const (
	LabelOptions = "Options total"
	LabelExcise  = "Excise duty reduction"
	LabelEco     = "Eco tax relief"
	LabelTotal   = "Total"
)

// Compute prices trim with the selected option codes and the color context.
//
// All currency truncation floors toward zero. The total is not clamped, so
// pathological policy data can produce a negative total.
func Compute(m *catalog.Model, t *catalog.Trim, selected []string, color ColorContext) Quote {
	chosen := make(map[string]struct{}, len(selected))
	for _, code := range selected {
		chosen[code] = struct{}{}
	}

	items := make([]Item, 0, len(t.Options)+1)
	for _, o := range t.Options {
		if !o.IsAllowed() {
			continue
		}
		if _, ok := chosen[o.Code]; !ok && !o.Included {
			continue
		}
		items = append(items, Item{Code: o.Code, Name: o.DisplayName(), Price: o.Price, Included: o.Included})
	}
	if color.Extra > 0 {
		code := color.Code
		if code == "" {
			code = "unknown"
		}
		items = append(items, Item{Code: ColorPrefix + code, Name: color.Name, Price: color.Extra})
	}

	var optionsTotal Money
	for _, it := range items {
		if it.Included {
			continue
		}
		optionsTotal += it.Price
	}

	base := t.BasePrice
	subtotal := base + optionsTotal
	policy := Resolve(m, t)

	var discountInha Money
	if policy.ExciseEligible {
		discountInha = floorMul(subtotal, policy.ExciseOriginalRate.Sub(policy.ExciseReducedRate))
	}

	var ecoFixed Money
	if t.EcoDiscount != nil {
		ecoFixed = *t.EcoDiscount
	}
	var ecoExcise, ecoEducation Money
	if !policy.PriceIsFinal && policy.EcoKind != catalog.EcoNone && (policy.EcoExciseCap > 0 || policy.EcoEducationCap > 0) {
		exciseAfterInha := floorMul(subtotal, policy.ExciseReducedRate)
		ecoExcise = min(exciseAfterInha, policy.EcoExciseCap)
		ecoEducation = min(floorMul(ecoExcise, EducationTaxRate), policy.EcoEducationCap)
	}
	ecoCombined := ecoFixed + ecoExcise + ecoEducation

	total := subtotal - discountInha - ecoCombined

	lines := []Line{
		{Label: fmt.Sprintf("Base price (%s)", t.Name), Amount: base},
		{Label: LabelOptions, Amount: optionsTotal},
	}
	if discountInha != 0 {
		lines = append(lines, Line{Label: LabelExcise, Amount: -discountInha})
	}
	if ecoCombined != 0 {
		lines = append(lines, Line{Label: LabelEco, Amount: -ecoCombined})
	}
	lines = append(lines, Line{Label: LabelTotal, Amount: total})

	return Quote{
		BasePrice:       base,
		OptionsTotal:    optionsTotal,
		Subtotal:        subtotal,
		DiscountInha:    discountInha,
		EcoExcise:       ecoExcise,
		EcoEducation:    ecoEducation,
		EcoCombined:     ecoCombined,
		Total:           total,
		SelectedOptions: items,
		Lines:           lines,
		Policy:          policy,
	}
}

func floorMul(amount Money, rate decimal.Decimal) Money {
	return decimal.NewFromInt(amount).Mul(rate).Floor().IntPart()
}
