package catalog

import "github.com/shopspring/decimal"

// EcoKind classifies alternative-fuel vehicles for eco tax relief.
type EcoKind string

const (
	EcoEV   EcoKind = "ev"
	EcoPHEV EcoKind = "phev"
	EcoHEV  EcoKind = "hev"
	EcoFCEV EcoKind = "fcev"
	EcoNone EcoKind = "none"
)

// PricingPolicy is a sparse override record. A nil field is absent and falls
// through to the next tier (trim, then model, then default).
type PricingPolicy struct {
	ExciseEligible     *bool            `json:"exciseEligible,omitempty"`
	ExciseOriginalRate *decimal.Decimal `json:"exciseOriginalRate,omitempty"`
	ExciseReducedRate  *decimal.Decimal `json:"exciseReducedRate,omitempty"`
	EcoKind            *EcoKind         `json:"ecoKind,omitempty" validate:"omitempty,oneof=ev phev hev fcev none"`
	EcoExciseCap       *int64           `json:"ecoExciseCap,omitempty" validate:"omitempty,gte=0"`
	EcoEducationCap    *int64           `json:"ecoEducationCap,omitempty" validate:"omitempty,gte=0"`
	PriceIsFinal       *bool            `json:"priceIsFinal,omitempty"`
}
