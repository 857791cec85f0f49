// Writer implementation printing rows to STDOUT as JSON lines.
package telemetry

import (
	"encoding/json"
	"fmt"
)

// StdoutWriter prints rows to STDOUT.
type StdoutWriter struct{}

// WriteState outputs a single state row.
func (w *StdoutWriter) WriteState(row StateRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteStates outputs multiple state rows.
func (w *StdoutWriter) WriteStates(rows []StateRow) error {
	for _, r := range rows {
		_ = w.WriteState(r)
	}
	return nil
}

// WriteTrajectory outputs a trajectory row.
func (w *StdoutWriter) WriteTrajectory(row TrajectoryRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteCoverage outputs a coverage row.
func (w *StdoutWriter) WriteCoverage(row CoverageRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}
