package worldmap

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// GridWorldMap is a rectangular cell map parsed from a .map text file.
// The first line holds the cell size in meters; each following line is a
// row of cells, '#' blocked, anything else free. Rows are listed north to
// south, so the last line sits at y = 0.
type GridWorldMap struct {
	cells    [][]bool // [row][col], row 0 at y = 0
	cellSize float64
	rows     int
	cols     int
}

// LoadGridWorld parses a grid world file.
func LoadGridWorld(path string) (*GridWorldMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing header line")
	}
	cellSize, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
	if err != nil || cellSize <= 0 {
		return nil, fmt.Errorf("bad cell size %q", scanner.Text())
	}

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no grid rows")
	}

	m := &GridWorldMap{cellSize: cellSize, rows: len(lines)}
	m.cells = make([][]bool, m.rows)
	for i, line := range lines {
		// file lists rows top down; store bottom up
		row := make([]bool, len(line))
		for j, c := range line {
			row[j] = c == '#'
		}
		m.cells[m.rows-1-i] = row
		if len(line) > m.cols {
			m.cols = len(line)
		}
	}
	return m, nil
}

// Query reports whether the cell containing (x, y) is blocked. Points off
// the grid are blocked.
func (m *GridWorldMap) Query(x, y float64) Query {
	col := int(x / m.cellSize)
	row := int(y / m.cellSize)
	if x < 0 || y < 0 || row >= m.rows || col >= len(m.cells[row]) {
		return Query{Blocked: true}
	}
	if m.cells[row][col] {
		return Query{Blocked: true}
	}
	return Query{}
}

// Extent returns the map's width and height in meters.
func (m *GridWorldMap) Extent() (float64, float64) {
	return float64(m.cols) * m.cellSize, float64(m.rows) * m.cellSize
}
