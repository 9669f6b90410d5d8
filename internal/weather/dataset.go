package weather

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ilerise/farmsim/internal/domain"
)

// datasetCacheSize bounds how many location datasets stay in memory.
const datasetCacheSize = 16

// DatasetFile is the on-disk shape of one location's satellite-derived
// environment dataset.
type DatasetFile struct {
	Location      string  `json:"location"`
	NDVI          float64 `json:"ndvi"`
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	SoilMoisture  struct {
		CurrentPercent float64 `json:"current_percent"`
	} `json:"soil_moisture"`
}

// Datasets loads per-location environment datasets from a data
// directory, with an LRU cache in front of the filesystem.
type Datasets struct {
	dataDir string
	cache   *lru.Cache[string, domain.EnvironmentData]
}

// NewDatasets creates a dataset loader rooted at dataDir.
func NewDatasets(dataDir string) (*Datasets, error) {
	cache, err := lru.New[string, domain.EnvironmentData](datasetCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	return &Datasets{dataDir: dataDir, cache: cache}, nil
}

// Get returns the environment dataset for a location, loading
// <dataDir>/<location>.json on a cache miss. Location matching is
// case-insensitive.
func (d *Datasets) Get(location string) (domain.EnvironmentData, error) {
	key := strings.ToLower(location)
	if env, ok := d.cache.Get(key); ok {
		return env, nil
	}

	path := filepath.Join(d.dataDir, key+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.EnvironmentData{}, fmt.Errorf("read dataset %s: %w", location, err)
	}

	var file DatasetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return domain.EnvironmentData{}, fmt.Errorf("parse dataset %s: %w", location, err)
	}

	env := domain.EnvironmentData{
		Location:      file.Location,
		NDVI:          file.NDVI,
		Temperature:   file.Temperature,
		Precipitation: file.Precipitation,
		SoilMoisture:  file.SoilMoisture.CurrentPercent,
	}
	if env.Location == "" {
		env.Location = location
	}

	d.cache.Add(key, env)
	return env, nil
}
