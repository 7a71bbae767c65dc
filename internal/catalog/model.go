package catalog

// Specs holds display-only technical data for a model.
type Specs struct {
	PriceRange   [2]int64 `json:"priceRange"`
	Fuel         string   `json:"fuel"`
	Efficiency   string   `json:"efficiency"`
	Power        string   `json:"power"`
	Torque       string   `json:"torque"`
	Displacement string   `json:"displacement"`
	Engine       string   `json:"engine"`
	Transmission string   `json:"transmission"`
	Seats        int      `json:"seats"`
}

// Color is an exterior paint. Extra is the surcharge added to the options total.
type Color struct {
	Code  string `json:"code" validate:"required"`
	Name  string `json:"name"`
	Extra int64  `json:"extra" validate:"gte=0"`
}

// Interior is an interior trim color. Interiors never affect price.
type Interior struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name"`
}

// Option is one add-on offered on a trim.
type Option struct {
	Code     string   `json:"code" validate:"required"`
	Name     string   `json:"name"`
	Price    int64    `json:"price" validate:"gte=0"`
	Allowed  *bool    `json:"allowed,omitempty"`
	Included bool     `json:"included,omitempty"`
	Requires []string `json:"requires,omitempty"`
	Desc     string   `json:"desc,omitempty"`
}

// IsAllowed reports whether the option is structurally offered. Absent means allowed.
func (o Option) IsAllowed() bool {
	return o.Allowed == nil || *o.Allowed
}

// DisplayName returns the option name, falling back to the upper-cased code.
func (o Option) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return upper(o.Code)
}

// Trim is one priced variant of a model.
type Trim struct {
	Code                 string         `json:"code" validate:"required"`
	Name                 string         `json:"name"`
	BasePrice            int64          `json:"basePrice" validate:"gte=0"`
	StandardFeatures     FeatureList    `json:"standardFeatures,omitempty"`
	InheritStandardFrom  string         `json:"inheritStandardFrom,omitempty"`
	Options              []Option       `json:"options" validate:"unique=Code,dive"`
	AllowedColorCodes    []string       `json:"allowedColorCodes,omitempty"`
	AllowedInteriorCodes []string       `json:"allowedInteriorCodes,omitempty"`
	EcoDiscount          *int64         `json:"ecoDiscount,omitempty" validate:"omitempty,gte=0"`
	Pricing              *PricingPolicy `json:"pricing,omitempty"`
}

// Option looks up an option by code within the trim.
func (t *Trim) Option(code string) (Option, bool) {
	for _, o := range t.Options {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// OptionName returns the display name for code, or the upper-cased code when
// the trim does not offer it.
func (t *Trim) OptionName(code string) string {
	if o, ok := t.Option(code); ok {
		return o.DisplayName()
	}
	return upper(code)
}

// IncludesOption reports whether code is bundled into the trim.
func (t *Trim) IncludesOption(code string) bool {
	o, ok := t.Option(code)
	return ok && o.Included
}

// RuleWhen scopes a rule and names its trigger.
type RuleWhen struct {
	Trim   string   `json:"trim,omitempty"`
	Option string   `json:"option,omitempty"`
	Color  CodeList `json:"color,omitempty"`
}

// Rule is a declarative constraint. Any subset of payload fields may be set.
type Rule struct {
	When               *RuleWhen `json:"when,omitempty"`
	RequiresColorAnyOf []string  `json:"requiresColorAnyOf,omitempty"`
	MutexOptions       []string  `json:"mutexOptions,omitempty" validate:"omitempty,min=2"`
	ForbidOptions      []string  `json:"forbidOptions,omitempty"`
	ForbidColors       []string  `json:"forbidColors,omitempty"`
	Note               string    `json:"note,omitempty"`
}

// AppliesTo reports whether the rule is scoped to trimCode. A rule without
// when.trim applies to every trim.
func (r Rule) AppliesTo(trimCode string) bool {
	return r.When == nil || r.When.Trim == "" || r.When.Trim == trimCode
}

// TriggerOption returns when.option or "".
func (r Rule) TriggerOption() string {
	if r.When == nil {
		return ""
	}
	return r.When.Option
}

// TriggerColors returns when.color or nil.
func (r Rule) TriggerColors() CodeList {
	if r.When == nil {
		return nil
	}
	return r.When.Color
}

// Model is one vehicle line and the root of the catalog graph.
type Model struct {
	ID        string         `json:"id" validate:"required"`
	Name      string         `json:"name"`
	Brand     string         `json:"brand"`
	Segment   string         `json:"segment"`
	Fuel      string         `json:"fuel"`
	Specs     Specs          `json:"specs"`
	Img       string         `json:"img,omitempty"`
	Colors    []Color        `json:"colors" validate:"unique=Code,dive"`
	Interiors []Interior     `json:"interiors,omitempty" validate:"unique=Code,dive"`
	Trims     []Trim         `json:"trims" validate:"required,min=1,unique=Code,dive"`
	Rules     []Rule         `json:"rules,omitempty" validate:"dive"`
	Pricing   *PricingPolicy `json:"pricing,omitempty"`
}

// Color looks up an exterior color by code.
func (m *Model) Color(code string) (Color, bool) {
	for _, c := range m.Colors {
		if c.Code == code {
			return c, true
		}
	}
	return Color{}, false
}

// Interior looks up an interior by code.
func (m *Model) Interior(code string) (Interior, bool) {
	for _, i := range m.Interiors {
		if i.Code == code {
			return i, true
		}
	}
	return Interior{}, false
}

// StartPrice is the lowest trim base price of the model.
func (m *Model) StartPrice() int64 {
	var start int64
	for i, t := range m.Trims {
		if i == 0 || t.BasePrice < start {
			start = t.BasePrice
		}
	}
	return start
}
