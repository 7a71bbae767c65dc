package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CodeList accepts either a single JSON string or an array of strings.
type CodeList []string

// UnmarshalJSON implements json.Unmarshaler.
func (c *CodeList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*c = nil
			return nil
		}
		*c = CodeList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("code list: expected string or array: %w", err)
	}
	*c = many
	return nil
}

// Contains reports whether code is listed.
func (c CodeList) Contains(code string) bool {
	for _, v := range c {
		if v == code {
			return true
		}
	}
	return false
}

// FeatureList accepts either an array of lines or a single newline separated string.
type FeatureList []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FeatureList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*f = splitLines(text)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("standard features: expected string or array: %w", err)
	}
	out := make(FeatureList, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	*f = out
	return nil
}

func splitLines(text string) FeatureList {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make(FeatureList, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func upper(code string) string {
	return strings.ToUpper(code)
}

func contains(list []string, code string) bool {
	for _, v := range list {
		if v == code {
			return true
		}
	}
	return false
}
