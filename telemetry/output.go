package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/sandgames/config"
)

// OutputManager handles structured run output with CSV logging.
// A nil manager is valid and discards everything.
type OutputManager struct {
	dir         string
	levelFile   *os.File
	sessionFile *os.File
	perfFile    *os.File

	// Track if headers have been written
	levelHeaderWritten   bool
	sessionHeaderWritten bool
	perfHeaderWritten    bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "levels.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating levels.csv: %w", err)
	}
	om.levelFile = f

	f, err = os.Create(filepath.Join(dir, "sessions.csv"))
	if err != nil {
		om.levelFile.Close()
		return nil, fmt.Errorf("creating sessions.csv: %w", err)
	}
	om.sessionFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.levelFile.Close()
		om.sessionFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteLevel appends a level record to levels.csv.
func (om *OutputManager) WriteLevel(s LevelStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords([]LevelStats{s}, om.levelFile, &om.levelHeaderWritten); err != nil {
		return fmt.Errorf("writing level stats: %w", err)
	}
	return nil
}

// WriteSession appends a session record to sessions.csv.
func (om *OutputManager) WriteSession(s SessionStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords([]SessionStats{s}, om.sessionFile, &om.sessionHeaderWritten); err != nil {
		return fmt.Errorf("writing session stats: %w", err)
	}
	return nil
}

// WritePerf appends a frame timing record to perf.csv.
func (om *OutputManager) WritePerf(s PerfStatsCSV) error {
	if om == nil {
		return nil
	}
	if err := writeRecords([]PerfStatsCSV{s}, om.perfFile, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf stats: %w", err)
	}
	return nil
}

// writeRecords writes headers on the first call for a file, rows only afterwards.
func writeRecords(records any, f *os.File, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.levelFile, om.sessionFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
