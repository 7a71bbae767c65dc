package selection

import "github.com/noah-isme/carquote/internal/catalog"

// ColorChoice is one exterior color and whether it may be picked.
type ColorChoice struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Extra   int64  `json:"extra"`
	Enabled bool   `json:"enabled"`
}

// InteriorChoice is one interior and whether it may be picked.
type InteriorChoice struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// ForbiddenColors collects forbidColors from trim-scoped rules whose
// when.option is currently selected.
func ForbiddenColors(m *catalog.Model, t *catalog.Trim, selected []string) map[string]struct{} {
	chosen := make(map[string]struct{}, len(selected))
	for _, code := range selected {
		chosen[code] = struct{}{}
	}
	out := map[string]struct{}{}
	for _, r := range m.Rules {
		if !r.AppliesTo(t.Code) {
			continue
		}
		opt := r.TriggerOption()
		if opt == "" {
			continue
		}
		if _, ok := chosen[opt]; !ok {
			continue
		}
		for _, c := range r.ForbidColors {
			out[c] = struct{}{}
		}
	}
	return out
}

// ColorChoices lists every catalog color in declaration order. A color is
// enabled iff the trim allows it and no selected option forbids it.
func ColorChoices(m *catalog.Model, t *catalog.Trim, selected []string) []ColorChoice {
	forbidden := ForbiddenColors(m, t, selected)
	out := make([]ColorChoice, 0, len(m.Colors))
	for _, c := range m.Colors {
		_, blocked := forbidden[c.Code]
		out = append(out, ColorChoice{
			Code:    c.Code,
			Name:    c.Name,
			Extra:   c.Extra,
			Enabled: t.AllowsColor(c.Code) && !blocked,
		})
	}
	return out
}

// ColorPickable reports whether code may be picked for the current selection.
func ColorPickable(m *catalog.Model, t *catalog.Trim, selected []string, code string) bool {
	for _, c := range ColorChoices(m, t, selected) {
		if c.Code == code {
			return c.Enabled
		}
	}
	return false
}

// InteriorChoices lists every catalog interior; interiors are restricted only
// by the trim's allow-list.
func InteriorChoices(m *catalog.Model, t *catalog.Trim) []InteriorChoice {
	out := make([]InteriorChoice, 0, len(m.Interiors))
	for _, i := range m.Interiors {
		out = append(out, InteriorChoice{Code: i.Code, Name: i.Name, Enabled: t.AllowsInterior(i.Code)})
	}
	return out
}

// State is the initial configurator state after a trim change.
type State struct {
	Selected []string `json:"selected"`
	Color    string   `json:"color,omitempty"`
	Interior string   `json:"interior,omitempty"`
}

// Defaults returns an empty selection with the first allowed color and
// interior, falling back to the first catalog entry.
func Defaults(m *catalog.Model, t *catalog.Trim) State {
	s := State{Selected: []string{}}
	if len(t.AllowedColorCodes) > 0 {
		s.Color = t.AllowedColorCodes[0]
	} else if len(m.Colors) > 0 {
		s.Color = m.Colors[0].Code
	}
	if len(t.AllowedInteriorCodes) > 0 {
		s.Interior = t.AllowedInteriorCodes[0]
	} else if len(m.Interiors) > 0 {
		s.Interior = m.Interiors[0].Code
	}
	return s
}
