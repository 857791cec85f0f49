package worldmap

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/tiff"
)

// geoTiffCellSize is the assumed raster resolution in meters per pixel.
const geoTiffCellSize = 1.0

// minNavigableDepth is the luminance floor below which a raster cell is
// treated as too shallow to traverse.
const minNavigableDepth = 1

// GeoTiffMap is a depth raster decoded from a GeoTIFF. The map frame
// origin is anchored at the given geographic origin; pixel row 0 is the
// raster's northern edge, so it maps to the top of the y range. Points off
// the raster are navigable at zero cost, matching open water.
type GeoTiffMap struct {
	img       image.Image
	originLon float64
	originLat float64
	width     int
	height    int
}

// LoadGeoTiff decodes the raster at path.
func LoadGeoTiff(path string, longitude, latitude float64) (*GeoTiffMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	return &GeoTiffMap{
		img:       img,
		originLon: longitude,
		originLat: latitude,
		width:     b.Dx(),
		height:    b.Dy(),
	}, nil
}

// Query reports whether the raster cell containing (x, y) is navigable.
// Depth shades below the navigable floor are blocked; navigable cells cost
// 1/depth, so shallower water costs more.
func (m *GeoTiffMap) Query(x, y float64) Query {
	col := int(x / geoTiffCellSize)
	row := m.height - 1 - int(y/geoTiffCellSize)
	if x < 0 || y < 0 || col >= m.width || row < 0 || row >= m.height {
		return Query{}
	}
	b := m.img.Bounds()
	r, g, bl, _ := m.img.At(b.Min.X+col, b.Min.Y+row).RGBA()
	depth := float64(r+g+bl) / 3 / 257 // 8-bit luminance
	if depth < minNavigableDepth {
		return Query{Blocked: true}
	}
	return Query{Cost: 1 / depth}
}
