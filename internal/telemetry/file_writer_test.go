package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWriter_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "states.jsonl")
	trajPath := filepath.Join(dir, "traj.jsonl")

	fw, err := NewFileWriter(statePath, trajPath, "")
	if err != nil {
		t.Fatal(err)
	}

	row := StateRow{MissionID: "m1", X: 1.5, Y: -2, Heading: 0.7, Speed: 2.5, PlanTime: 10, Timestamp: time.Now().UTC()}
	if err := fw.WriteState(row); err != nil {
		t.Fatal(err)
	}
	traj := TrajectoryRow{MissionID: "m1", IsPlan: true, Points: []TrajectoryPoint{{X: 1, Y: 2, T: 3}}}
	if err := fw.WriteTrajectory(traj); err != nil {
		t.Fatal(err)
	}
	// coverage disabled: must be a no-op, not an error
	if err := fw.WriteCoverage(CoverageRow{}); err != nil {
		t.Fatal(err)
	}
	fw.Close()

	f, err := os.Open(statePath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatal("no state row written")
	}
	var got StateRow
	if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.MissionID != row.MissionID || got.X != row.X || got.PlanTime != row.PlanTime {
		t.Errorf("round trip mismatch: %+v vs %+v", got, row)
	}
}

func TestMultiWriter_FansOut(t *testing.T) {
	a := &countingWriter{}
	b := &countingWriter{}
	mw := NewMultiWriter([]Writer{a, b}, []TrajectoryWriter{a}, []CoverageWriter{b})

	mw.WriteState(StateRow{})
	mw.WriteStates([]StateRow{{}, {}})
	mw.WriteTrajectory(TrajectoryRow{})
	mw.WriteCoverage(CoverageRow{})

	if a.states != 3 || b.states != 3 {
		t.Errorf("state fan-out wrong: a=%d b=%d", a.states, b.states)
	}
	if a.trajectories != 1 || b.coverages != 1 {
		t.Errorf("row fan-out wrong: traj=%d cov=%d", a.trajectories, b.coverages)
	}
}

type countingWriter struct {
	states       int
	trajectories int
	coverages    int
}

func (w *countingWriter) WriteState(StateRow) error           { w.states++; return nil }
func (w *countingWriter) WriteTrajectory(TrajectoryRow) error { w.trajectories++; return nil }
func (w *countingWriter) WriteCoverage(CoverageRow) error     { w.coverages++; return nil }
