// Package worldmap provides the static traversability maps the planner
// queries per point: an always-free default, ASCII grid worlds, and
// GeoTIFF depth rasters.
package worldmap

import (
	"fmt"
	"strings"
)

// Query is the result of a point lookup.
type Query struct {
	Blocked bool
	Cost    float64
}

// Map answers traversability queries in the map frame (meters).
// Implementations are immutable once loaded.
type Map interface {
	Query(x, y float64) Query
}

// EmptyMap is the default map: everywhere free, zero cost.
type EmptyMap struct{}

func (EmptyMap) Query(x, y float64) Query { return Query{} }

// Load dispatches on the file name: names containing ".map" load as grid
// worlds, everything else as GeoTIFF anchored at (longitude, latitude).
func Load(path string, latitude, longitude float64) (Map, error) {
	if strings.Contains(path, ".map") {
		m, err := LoadGridWorld(path)
		if err != nil {
			return nil, fmt.Errorf("grid world %s: %w", path, err)
		}
		return m, nil
	}
	m, err := LoadGeoTiff(path, longitude, latitude)
	if err != nil {
		return nil, fmt.Errorf("geotiff %s: %w", path, err)
	}
	return m, nil
}
