// Package export drives the quote calculator over a list of scenarios and
// renders the results as text or as the fixed CSV export.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// OptionList holds option codes. It decodes from a JSON array or from a
// comma separated string.
type OptionList []string

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*o = SplitCodes(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return fmt.Errorf("options must be a string or an array of strings: %w", err)
	}
	*o = list
	return nil
}

// SplitCodes splits a comma separated list, trimming blanks.
func SplitCodes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Scenario is one quote request of a batch run.
type Scenario struct {
	Model   string     `json:"model"`
	Trim    string     `json:"trim"`
	Options OptionList `json:"options"`
	Color   string     `json:"color"`
}

// DecodeScenarios reads a JSON array of scenarios.
func DecodeScenarios(r io.Reader) ([]Scenario, error) {
	var out []Scenario
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode scenarios: %w", err)
	}
	for i, s := range out {
		if s.Model == "" || s.Trim == "" {
			return nil, fmt.Errorf("scenario %d: model and trim are required", i)
		}
	}
	return out, nil
}

// LoadScenarios reads scenarios from a file.
func LoadScenarios(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("scenarios not found: %s", path)
		}
		return nil, fmt.Errorf("open scenarios %s: %w", path, err)
	}
	defer f.Close()
	scenarios, err := DecodeScenarios(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenarios, nil
}
