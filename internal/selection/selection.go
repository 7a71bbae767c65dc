// Package selection transforms the caller-owned option selection and decides
// which colors and interiors may be picked alongside it.
package selection

import (
	"sort"

	"github.com/noah-isme/carquote/internal/availability"
	"github.com/noah-isme/carquote/internal/catalog"
)

// MutexIndex maps an option code to the codes it cannot be combined with.
type MutexIndex map[string]map[string]struct{}

// BuildMutexIndex expands every mutexOptions rule scoped to trimCode into a
// symmetric adjacency map. Build it once per trim change.
func BuildMutexIndex(rules []catalog.Rule, trimCode string) MutexIndex {
	idx := MutexIndex{}
	for _, r := range rules {
		if !r.AppliesTo(trimCode) || len(r.MutexOptions) < 2 {
			continue
		}
		for _, a := range r.MutexOptions {
			for _, b := range r.MutexOptions {
				if a == b {
					continue
				}
				if idx[a] == nil {
					idx[a] = map[string]struct{}{}
				}
				idx[a][b] = struct{}{}
			}
		}
	}
	return idx
}

// Conflicts returns the codes that conflict with code, sorted.
func (x MutexIndex) Conflicts(code string) []string {
	out := make([]string, 0, len(x[code]))
	for c := range x[code] {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Toggle returns the selection after a toggle request on code. The input slice
// is never modified.
//
// Included, disabled and unknown codes leave the selection unchanged. A
// selected code is removed. Otherwise every code conflicting with it is
// dropped and code is placed first.
func Toggle(code string, selected []string, avail availability.Map, idx MutexIndex) []string {
	v, ok := avail[code]
	if !ok || v.Included || v.Disabled {
		return clone(selected)
	}
	for _, c := range selected {
		if c == code {
			return without(selected, func(s string) bool { return s == code })
		}
	}
	conflicts := idx[code]
	next := make([]string, 0, len(selected)+1)
	next = append(next, code)
	for _, c := range selected {
		if _, clash := conflicts[c]; clash {
			continue
		}
		next = append(next, c)
	}
	return next
}

// Prune drops codes that have no verdict or whose verdict is disabled. It lets
// a caller deselect options after a color or trim change; the evaluator
// itself never deselects.
func Prune(selected []string, avail availability.Map) []string {
	return without(selected, func(s string) bool {
		v, ok := avail[s]
		return !ok || (v.Disabled && !v.Included)
	})
}

func without(in []string, drop func(string) bool) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !drop(s) {
			out = append(out, s)
		}
	}
	return out
}

func clone(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
