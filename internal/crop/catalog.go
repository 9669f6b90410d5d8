package crop

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/ilerise/farmsim/internal/domain"
)

// Sentinel errors for crop catalog loading
var (
	ErrDuplicateCropID = errors.New("duplicate crop id")
	ErrInvalidConfig   = errors.New("invalid crop configuration")
)

// Config is the JSON document the catalog loads from.
type Config struct {
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Crops       []domain.Crop `json:"crops" validate:"required,min=1,dive"`
}

// Catalog is an immutable lookup of crop reference data. Build it once
// at startup with Load and share it freely.
type Catalog struct {
	byID  map[string]*domain.Crop
	order []string
}

// Load reads, validates and indexes a crop configuration file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read crop config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse crop config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	byID := make(map[string]*domain.Crop, len(cfg.Crops))
	order := make([]string, 0, len(cfg.Crops))
	for i := range cfg.Crops {
		c := cfg.Crops[i]
		if _, exists := byID[c.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCropID, c.ID)
		}
		byID[c.ID] = &c
		order = append(order, c.ID)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return byID[order[i]].UnlockLevel < byID[order[j]].UnlockLevel
	})

	return &Catalog{byID: byID, order: order}, nil
}

// Get returns a crop by id.
func (c *Catalog) Get(id string) (*domain.Crop, error) {
	crop, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCropNotFound, id)
	}
	return crop, nil
}

// All returns every crop ordered by unlock level.
func (c *Catalog) All() []*domain.Crop {
	out := make([]*domain.Crop, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// AvailableAt returns the crops unlocked at or below a player level.
func (c *Catalog) AvailableAt(level int) []*domain.Crop {
	out := make([]*domain.Crop, 0, len(c.order))
	for _, id := range c.order {
		if c.byID[id].UnlockLevel <= level {
			out = append(out, c.byID[id])
		}
	}
	return out
}

// Len returns the number of crops in the catalog.
func (c *Catalog) Len() int {
	return len(c.byID)
}
