package availability

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/carquote/internal/catalog"
)

func ptr[T any](v T) *T { return &v }

func fixture() (*catalog.Model, *catalog.Trim) {
	m := &catalog.Model{
		ID: "sportage",
		Colors: []catalog.Color{
			{Code: "UD", Name: "Clear White"},
			{Code: "ABP", Name: "Aurora Black Pearl"},
			{Code: "R2R", Name: "Runway Red", Extra: 80_000},
		},
		Trims: []catalog.Trim{
			{
				Code: "prestige",
				Name: "Prestige",
				Options: []catalog.Option{
					{Code: "smartkey", Name: "Smart key", Price: 300_000, Included: true},
					{Code: "audio8", Name: "Audio 8", Price: 600_000, Requires: []string{"nav"}},
					{Code: "nav", Name: "Navigation", Price: 1_200_000},
					{Code: "remote", Name: "Remote start", Price: 200_000, Requires: []string{"smartkey"}},
					{Code: "tow", Name: "Tow hitch", Price: 400_000, Allowed: ptr(false), Requires: []string{"nav"}},
					{Code: "wheel19", Name: "19in wheels", Price: 500_000},
					{Code: "wheel20", Name: "20in wheels", Price: 800_000},
					{Code: "matte", Name: "Matte package", Price: 900_000},
					{Code: "hud", Name: "Head-up display", Price: 700_000, Requires: []string{"nav", "audio8"}},
				},
			},
			{Code: "signature", Name: "Signature"},
		},
		Rules: []catalog.Rule{
			{When: &catalog.RuleWhen{Trim: "prestige"}, MutexOptions: []string{"wheel19", "wheel20"}},
			{When: &catalog.RuleWhen{Option: "matte"}, RequiresColorAnyOf: []string{"ABP", "UD"}},
			{When: &catalog.RuleWhen{Color: catalog.CodeList{"R2R"}}, ForbidOptions: []string{"nav", "ghost"}},
			{When: &catalog.RuleWhen{Trim: "signature"}, MutexOptions: []string{"nav", "audio8"}},
			{When: &catalog.RuleWhen{Option: "wheel20"}, ForbidColors: []string{"UD"}},
			{When: &catalog.RuleWhen{Option: "ghost"}, RequiresColorAnyOf: []string{"UD"}},
		},
	}
	return m, &m.Trims[0]
}

func TestEvaluateSeedsVerdicts(t *testing.T) {
	m, trim := fixture()
	got := Evaluate(m, trim, nil, "")

	require.Len(t, got, len(trim.Options))
	require.Equal(t, Verdict{Included: true, Price: 300_000}, got["smartkey"])
	require.Equal(t, Verdict{Price: 1_200_000}, got["nav"])
	_, ok := got["ghost"]
	require.False(t, ok)
	require.False(t, got.Enabled("ghost"))
}

func TestEvaluateNotAllowedIsAuthoritative(t *testing.T) {
	m, trim := fixture()
	for _, sel := range [][]string{nil, {"nav"}, {"tow", "nav"}} {
		for _, color := range []string{"", "UD", "R2R"} {
			got := Evaluate(m, trim, sel, color)
			require.True(t, got["tow"].Disabled)
			require.Equal(t, ReasonNotOffered, got["tow"].Reason)
		}
	}
}

func TestEvaluatePrerequisites(t *testing.T) {
	m, trim := fixture()

	got := Evaluate(m, trim, nil, "")
	require.True(t, got["audio8"].Disabled)
	require.Equal(t, "requires Navigation", got["audio8"].Reason)
	require.Equal(t, "requires Navigation, Audio 8", got["hud"].Reason)
	require.False(t, got["remote"].Disabled, "included prerequisite counts as satisfied")

	got = Evaluate(m, trim, []string{"nav"}, "")
	require.False(t, got["audio8"].Disabled)
	require.Equal(t, "requires Audio 8", got["hud"].Reason)

	got = Evaluate(m, trim, []string{"nav", "audio8"}, "")
	require.True(t, got.Enabled("hud"))
}

func TestEvaluateUnknownPrerequisiteUsesCode(t *testing.T) {
	m, trim := fixture()
	trim.Options = append(trim.Options, catalog.Option{Code: "pano", Requires: []string{"roofrail"}})
	got := Evaluate(m, trim, nil, "")
	require.Equal(t, "requires ROOFRAIL", got["pano"].Reason)
}

func TestEvaluateRequiresColor(t *testing.T) {
	m, trim := fixture()

	require.False(t, Evaluate(m, trim, nil, "")["matte"].Disabled, "no color chosen")
	require.False(t, Evaluate(m, trim, nil, "ABP")["matte"].Disabled)

	got := Evaluate(m, trim, nil, "R2R")
	require.True(t, got["matte"].Disabled)
	require.Equal(t, "only available with colors: ABP, UD", got["matte"].Reason)
}

func TestEvaluateMutexDeclaredOrderWins(t *testing.T) {
	m, trim := fixture()

	got := Evaluate(m, trim, []string{"wheel20"}, "")
	require.False(t, got["wheel20"].Disabled)
	require.True(t, got["wheel19"].Disabled)
	require.Equal(t, "cannot combine: 20in wheels already selected", got["wheel19"].Reason)

	// both present: declared order picks wheel19 even though wheel20 came first
	got = Evaluate(m, trim, []string{"wheel20", "wheel19"}, "")
	require.False(t, got["wheel19"].Disabled)
	require.True(t, got["wheel20"].Disabled)

	got = Evaluate(m, trim, nil, "")
	require.False(t, got["wheel19"].Disabled)
	require.False(t, got["wheel20"].Disabled)
}

func TestEvaluateMutexScopedToTrim(t *testing.T) {
	m, trim := fixture()
	// the nav/audio8 mutex belongs to signature only
	got := Evaluate(m, trim, []string{"nav", "audio8"}, "")
	require.False(t, got["audio8"].Disabled)
	require.False(t, got["nav"].Disabled)
}

func TestEvaluateColorForbidsOptionsEvenWhenSelected(t *testing.T) {
	m, trim := fixture()
	got := Evaluate(m, trim, []string{"nav"}, "R2R")
	require.True(t, got["nav"].Disabled)
	require.Equal(t, ReasonColorConflict, got["nav"].Reason)
	_, ok := got["ghost"]
	require.False(t, ok, "rule references to unknown codes are ignored")
}

func TestEvaluateForbidColorsDoesNotTouchOptions(t *testing.T) {
	m, trim := fixture()
	got := Evaluate(m, trim, nil, "UD")
	require.False(t, got["wheel20"].Disabled)
}

func TestEvaluateWhenColorAcceptsSingleCode(t *testing.T) {
	m, trim := fixture()
	m.Rules = []catalog.Rule{{When: &catalog.RuleWhen{Color: catalog.CodeList{"UD", "ABP"}}, ForbidOptions: []string{"matte"}}}
	require.True(t, Evaluate(m, trim, nil, "ABP")["matte"].Disabled)
	require.False(t, Evaluate(m, trim, nil, "R2R")["matte"].Disabled)
}

func TestEvaluateDoesNotMutateSelection(t *testing.T) {
	m, trim := fixture()
	selected := []string{"wheel20", "wheel19"}
	first := Evaluate(m, trim, selected, "R2R")
	second := Evaluate(m, trim, selected, "R2R")
	require.Equal(t, first, second)
	require.Equal(t, []string{"wheel20", "wheel19"}, selected)
}

func TestMapCodesSorted(t *testing.T) {
	m, trim := fixture()
	codes := Evaluate(m, trim, nil, "").Codes()
	require.Equal(t, []string{"audio8", "hud", "matte", "nav", "remote", "smartkey", "tow", "wheel19", "wheel20"}, codes)
}
