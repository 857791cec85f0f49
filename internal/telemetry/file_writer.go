package telemetry

import (
	"encoding/json"
	"os"
)

// FileWriter writes rows to JSONL files. Trajectory and coverage paths may
// be empty to skip those logs.
type FileWriter struct {
	stateFile *os.File
	trajFile  *os.File
	covFile   *os.File
	stateEnc  *json.Encoder
	trajEnc   *json.Encoder
	covEnc    *json.Encoder
}

// NewFileWriter creates a FileWriter.
func NewFileWriter(statePath, trajectoryPath, coveragePath string) (*FileWriter, error) {
	sf, err := os.Create(statePath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{stateFile: sf, stateEnc: json.NewEncoder(sf)}
	if trajectoryPath != "" {
		tf, err := os.Create(trajectoryPath)
		if err != nil {
			sf.Close()
			return nil, err
		}
		fw.trajFile = tf
		fw.trajEnc = json.NewEncoder(tf)
	}
	if coveragePath != "" {
		cf, err := os.Create(coveragePath)
		if err != nil {
			if fw.trajFile != nil {
				fw.trajFile.Close()
			}
			sf.Close()
			return nil, err
		}
		fw.covFile = cf
		fw.covEnc = json.NewEncoder(cf)
	}
	return fw, nil
}

// WriteState logs a single state row.
func (f *FileWriter) WriteState(row StateRow) error {
	return f.stateEnc.Encode(row)
}

// WriteStates logs multiple state rows.
func (f *FileWriter) WriteStates(rows []StateRow) error {
	for _, r := range rows {
		if err := f.WriteState(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteTrajectory logs a trajectory row, if enabled.
func (f *FileWriter) WriteTrajectory(row TrajectoryRow) error {
	if f.trajEnc == nil {
		return nil
	}
	return f.trajEnc.Encode(row)
}

// WriteCoverage logs a coverage row, if enabled.
func (f *FileWriter) WriteCoverage(row CoverageRow) error {
	if f.covEnc == nil {
		return nil
	}
	return f.covEnc.Encode(row)
}

// Close closes all underlying files.
func (f *FileWriter) Close() error {
	err := f.stateFile.Close()
	if f.trajFile != nil {
		f.trajFile.Close()
	}
	if f.covFile != nil {
		f.covFile.Close()
	}
	return err
}
