package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrModelNotFound is returned when a model id is absent from the catalog.
	ErrModelNotFound = errors.New("model not found")
	// ErrTrimNotFound is returned when a trim code is absent from a model.
	ErrTrimNotFound = errors.New("trim not found")
	// ErrInvalidCatalog wraps validation failures raised while loading.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Catalog is an immutable, indexed set of models. It is safe for concurrent use.
type Catalog struct {
	models []Model
	byID   map[string]int
}

// New indexes models. Duplicate ids keep the first occurrence.
func New(models []Model) *Catalog {
	c := &Catalog{
		models: models,
		byID:   make(map[string]int, len(models)),
	}
	for i, m := range models {
		if _, exists := c.byID[m.ID]; !exists {
			c.byID[m.ID] = i
		}
	}
	return c
}

// Len returns the number of models.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.models)
}

// Models returns the models in declaration order.
func (c *Catalog) Models() []Model {
	if c == nil {
		return nil
	}
	return c.models
}

// Model looks up a model by id.
func (c *Catalog) Model(id string) (*Model, error) {
	if c != nil {
		if idx, ok := c.byID[id]; ok {
			return &c.models[idx], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrModelNotFound, id)
}

// Trim looks up a trim by code.
func (m *Model) Trim(code string) (*Trim, error) {
	for i := range m.Trims {
		if m.Trims[i].Code == code {
			return &m.Trims[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s (model=%s)", ErrTrimNotFound, code, m.ID)
}

// Resolve looks up both the model and the trim.
func (c *Catalog) Resolve(modelID, trimCode string) (*Model, *Trim, error) {
	m, err := c.Model(modelID)
	if err != nil {
		return nil, nil, err
	}
	t, err := m.Trim(trimCode)
	if err != nil {
		return nil, nil, err
	}
	return m, t, nil
}

// Summary is the list-view projection of a model.
type Summary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	Segment    string `json:"segment"`
	Fuel       string `json:"fuel"`
	StartPrice int64  `json:"startPrice"`
	Img        string `json:"img,omitempty"`
}

// Summaries projects every model for list rendering.
func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, 0, c.Len())
	for i := range c.Models() {
		m := &c.models[i]
		out = append(out, Summary{
			ID:         m.ID,
			Name:       m.Name,
			Brand:      m.Brand,
			Segment:    m.Segment,
			Fuel:       m.Fuel,
			StartPrice: m.StartPrice(),
			Img:        m.Img,
		})
	}
	return out
}

// AllowsColor reports whether the trim permits the exterior color. A trim
// without an allow-list permits every catalog color.
func (t *Trim) AllowsColor(code string) bool {
	if t.AllowedColorCodes == nil {
		return true
	}
	return contains(t.AllowedColorCodes, code)
}

// AllowsInterior reports whether the trim permits the interior.
func (t *Trim) AllowsInterior(code string) bool {
	if t.AllowedInteriorCodes == nil {
		return true
	}
	return contains(t.AllowedInteriorCodes, code)
}

// Features returns the trim's standard-feature lines. A trim with no lines of
// its own reuses the lines of the trim named by InheritStandardFrom.
func (t *Trim) Features(m *Model) []string {
	if len(t.StandardFeatures) > 0 || t.InheritStandardFrom == "" || m == nil {
		return t.StandardFeatures
	}
	parent, err := m.Trim(t.InheritStandardFrom)
	if err != nil || parent == t {
		return nil
	}
	return parent.StandardFeatures
}
