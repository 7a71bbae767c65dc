// Package availability decides, for a partial selection, which options of a
// trim remain selectable.
package availability

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/carquote/internal/catalog"
)

// Fixed reasons.
const (
	ReasonNotOffered    = "not offered on this trim"
	ReasonColorConflict = "conflicts with selected exterior color"
)

// Verdict is the availability of one option under the current selection.
type Verdict struct {
	Disabled bool   `json:"disabled"`
	Reason   string `json:"reason,omitempty"`
	Included bool   `json:"included"`
	Price    int64  `json:"price"`
}

// Map holds verdicts keyed by option code. Codes the trim does not offer are
// absent; callers must not treat a missing entry as enabled.
type Map map[string]Verdict

// Enabled reports whether code has a verdict that is not disabled.
func (m Map) Enabled(code string) bool {
	v, ok := m[code]
	return ok && !v.Disabled
}

// Codes returns the option codes in sorted order.
func (m Map) Codes() []string {
	out := make([]string, 0, len(m))
	for code := range m {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (m Map) disable(code, reason string) {
	v, ok := m[code]
	if !ok {
		return
	}
	v.Disabled = true
	v.Reason = reason
	m[code] = v
}

// Evaluate computes a verdict for every option of trim.
//
// Structural constraints (allowed flag, prerequisites) are applied first, in
// trim declaration order. Rules scoped to the trim are applied afterwards; a
// rule naming an option the trim does not offer has no effect.
func Evaluate(m *catalog.Model, t *catalog.Trim, selected []string, color string) Map {
	chosen := make(map[string]struct{}, len(selected))
	for _, code := range selected {
		chosen[code] = struct{}{}
	}
	isSelected := func(code string) bool {
		_, ok := chosen[code]
		return ok
	}

	out := make(Map, len(t.Options))
	for _, o := range t.Options {
		v := Verdict{Price: o.Price, Included: o.Included}
		if !o.IsAllowed() {
			v.Disabled = true
			v.Reason = ReasonNotOffered
			out[o.Code] = v
			continue
		}
		if len(o.Requires) > 0 {
			var unmet []string
			for _, req := range o.Requires {
				if isSelected(req) || t.IncludesOption(req) {
					continue
				}
				unmet = append(unmet, t.OptionName(req))
			}
			if len(unmet) > 0 {
				v.Disabled = true
				v.Reason = "requires " + strings.Join(unmet, ", ")
			}
		}
		out[o.Code] = v
	}

	if m == nil {
		return out
	}
	for _, r := range m.Rules {
		if !r.AppliesTo(t.Code) {
			continue
		}
		applyColorRequirement(out, r, color)
		applyMutex(out, r, t, isSelected)
		applyColorForbids(out, r, color)
	}
	return out
}

func applyColorRequirement(out Map, r catalog.Rule, color string) {
	opt := r.TriggerOption()
	if opt == "" || len(r.RequiresColorAnyOf) == 0 || color == "" {
		return
	}
	if _, ok := out[opt]; !ok {
		return
	}
	for _, allowed := range r.RequiresColorAnyOf {
		if allowed == color {
			return
		}
	}
	out.disable(opt, fmt.Sprintf("only available with colors: %s", strings.Join(r.RequiresColorAnyOf, ", ")))
}

// applyMutex keeps the first selected member in declared order and disables
// the rest, regardless of the order in which they were selected.
func applyMutex(out Map, r catalog.Rule, t *catalog.Trim, isSelected func(string) bool) {
	if len(r.MutexOptions) < 2 {
		return
	}
	winner := ""
	for _, code := range r.MutexOptions {
		if isSelected(code) {
			winner = code
			break
		}
	}
	if winner == "" {
		return
	}
	reason := fmt.Sprintf("cannot combine: %s already selected", t.OptionName(winner))
	for _, code := range r.MutexOptions {
		if code != winner {
			out.disable(code, reason)
		}
	}
}

func applyColorForbids(out Map, r catalog.Rule, color string) {
	colors := r.TriggerColors()
	if len(colors) == 0 || len(r.ForbidOptions) == 0 || color == "" || !colors.Contains(color) {
		return
	}
	for _, code := range r.ForbidOptions {
		out.disable(code, ReasonColorConflict)
	}
}
