package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/ilerise/farmsim/internal/domain"
)

// Sentinel errors for action catalog loading
var (
	ErrDuplicateActionID = errors.New("duplicate action id")
	ErrInvalidConfig     = errors.New("invalid action configuration")
)

// Config is the JSON document the catalog loads from.
type Config struct {
	Version     string             `json:"version"`
	Description string             `json:"description"`
	Actions     []domain.ActionDef `json:"actions" validate:"required,min=1,dive"`
}

// Catalog is the immutable action lookup built at startup.
type Catalog struct {
	byID  map[string]*domain.ActionDef
	order []string
}

// LoadCatalog reads, validates and indexes an action configuration
// file. Every declared effect kind must be in the closed set.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read action config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse action config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	byID := make(map[string]*domain.ActionDef, len(cfg.Actions))
	order := make([]string, 0, len(cfg.Actions))
	for i := range cfg.Actions {
		a := cfg.Actions[i]
		if _, exists := byID[a.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateActionID, a.ID)
		}
		for _, e := range a.Effects {
			if !e.Kind.Valid() {
				return nil, fmt.Errorf("%w: action %s has unknown effect %q", ErrInvalidConfig, a.ID, e.Kind)
			}
		}
		byID[a.ID] = &a
		order = append(order, a.ID)
	}

	return &Catalog{byID: byID, order: order}, nil
}

// Get returns an action definition by id.
func (c *Catalog) Get(id string) (*domain.ActionDef, error) {
	a, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrActionNotFound, id)
	}
	return a, nil
}

// All returns every action in catalog order.
func (c *Catalog) All() []*domain.ActionDef {
	out := make([]*domain.ActionDef, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByCategory returns the actions in one category.
func (c *Catalog) ByCategory(cat domain.ActionCategory) []*domain.ActionDef {
	var out []*domain.ActionDef
	for _, id := range c.order {
		if c.byID[id].Category == cat {
			out = append(out, c.byID[id])
		}
	}
	return out
}

// Len returns the number of actions in the catalog.
func (c *Catalog) Len() int {
	return len(c.byID)
}
