package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const validYAML = `mission_id: test-01
vehicle:
  max_speed: 2.5
  turning_radius: 8
  coverage_turning_radius: 16
planner:
  k: 5
  heuristic: 2
  line_width: 2
ribbons:
  - { x1: 0, y1: 0, x2: 50, y2: 0 }
`

const validCUE = `vehicle: {
	max_speed:      >0
	turning_radius: >0
}
planner: {
	k:         int & >=1
	heuristic: int & >=0 & <=4
}
`

func writeFiles(t *testing.T, yaml, cue string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	yp := filepath.Join(dir, "mission.yaml")
	cp := filepath.Join(dir, "mission.cue")
	if err := os.WriteFile(yp, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cp, []byte(cue), 0o644); err != nil {
		t.Fatal(err)
	}
	return yp, cp
}

func TestLoad_Valid(t *testing.T) {
	yp, cp := writeFiles(t, validYAML, validCUE)
	cfg, err := Load(yp, cp)
	if err != nil {
		t.Fatal(err)
	}

	want := &MissionConfig{
		MissionID: "test-01",
		Vehicle:   Vehicle{MaxSpeed: 2.5, TurningRadius: 8, CoverageTurningRadius: 16},
		Planner:   Planner{K: 5, Heuristic: 2, LineWidth: 2},
		Ribbons:   []RibbonSpec{{X1: 0, Y1: 0, X2: 50, Y2: 0}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SchemaRejectsBadHeuristic(t *testing.T) {
	bad := `vehicle:
  max_speed: 2.5
  turning_radius: 8
planner:
  k: 5
  heuristic: 9
  line_width: 2
`
	yp, cp := writeFiles(t, bad, validCUE)
	if _, err := Load(yp, cp); err == nil {
		t.Fatal("expected schema validation error for heuristic 9")
	}
}

func TestLoad_RejectsCoverageRadiusBelowTurning(t *testing.T) {
	bad := `vehicle:
  max_speed: 2.5
  turning_radius: 8
  coverage_turning_radius: 4
planner:
  k: 5
  heuristic: 2
  line_width: 2
`
	yp, cp := writeFiles(t, bad, validCUE)
	if _, err := Load(yp, cp); err == nil {
		t.Fatal("expected error for coverage radius below turning radius")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, cp := writeFiles(t, validYAML, validCUE)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), cp); err == nil {
		t.Fatal("expected error for missing config")
	}
}
