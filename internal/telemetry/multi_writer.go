package telemetry

// MultiWriter fans rows out to multiple writers. Errors from individual
// writers are returned after every writer has been tried.
type MultiWriter struct {
	states       []Writer
	trajectories []TrajectoryWriter
	coverages    []CoverageWriter
}

// NewMultiWriter creates a MultiWriter over the given writer sets.
func NewMultiWriter(states []Writer, trajectories []TrajectoryWriter, coverages []CoverageWriter) *MultiWriter {
	return &MultiWriter{states: states, trajectories: trajectories, coverages: coverages}
}

// WriteState fans out a state row.
func (m *MultiWriter) WriteState(row StateRow) error {
	var first error
	for _, w := range m.states {
		if err := w.WriteState(row); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WriteStates fans out a batch, using batch mode where supported.
func (m *MultiWriter) WriteStates(rows []StateRow) error {
	var first error
	for _, w := range m.states {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteStates(rows); err != nil && first == nil {
				first = err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteState(r); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// WriteTrajectory fans out a trajectory row.
func (m *MultiWriter) WriteTrajectory(row TrajectoryRow) error {
	var first error
	for _, w := range m.trajectories {
		if err := w.WriteTrajectory(row); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WriteCoverage fans out a coverage row.
func (m *MultiWriter) WriteCoverage(row CoverageRow) error {
	var first error
	for _, w := range m.coverages {
		if err := w.WriteCoverage(row); err != nil && first == nil {
			first = err
		}
	}
	return first
}
