package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// rateBounds are enforced on excise rates by the loader; the pricing engine
// itself accepts whatever it is given.
type rateBounds struct {
	Original *decimal.Decimal `json:"exciseOriginalRate" validate:"omitempty,gte=0,lte=1"`
	Reduced  *decimal.Decimal `json:"exciseReducedRate" validate:"omitempty,gte=0,lte=1"`
}

// Validate checks structural invariants of a model: at least one trim,
// unique trim/color/interior/option codes, non-negative amounts, known eco
// kinds and well-formed mutex rules. Rule references to unknown codes are
// allowed.
func Validate(m *Model) error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrInvalidCatalog)
	}
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: model %s: %s", ErrInvalidCatalog, m.ID, describe(err))
	}
	policies := []*PricingPolicy{m.Pricing}
	for i := range m.Trims {
		policies = append(policies, m.Trims[i].Pricing)
	}
	for _, p := range policies {
		if p == nil {
			continue
		}
		if err := validate.Struct(rateBounds{Original: p.ExciseOriginalRate, Reduced: p.ExciseReducedRate}); err != nil {
			return fmt.Errorf("%w: model %s: %s", ErrInvalidCatalog, m.ID, describe(err))
		}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), tag))
	}
	return strings.Join(parts, "; ")
}
