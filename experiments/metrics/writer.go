package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// SolveRecord is one solver run of an experiment series.
type SolveRecord struct {
	Series string // Which parameter was swept
	P      float64
	Q      float64
	Value  float64 // Value of the start state
	Action string  // Policy action at the start state, "" if none
	SolveMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// Create opens a new file inside the writer's directory.
func (w *Writer) Create(name string) (*os.File, error) {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	return f, nil
}

func (w *Writer) WriteSolveRecords(records []SolveRecord) error {
	header := []string{"series", "p", "q", "value", "action", "sweeps", "backups", "final_delta", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Series,
			formatFloat(record.P),
			formatFloat(record.Q),
			formatFloat(record.Value),
			record.Action,
			strconv.Itoa(record.Sweeps),
			strconv.Itoa(record.Backups),
			formatFloat(record.FinalDelta()),
			record.Duration.String(),
		})
	}
	return w.writeCSV("solve_records.csv", header, rows)
}

// WriteDeltas stores the per-sweep delta sequence of every record.
func (w *Writer) WriteDeltas(records []SolveRecord) error {
	header := []string{"series", "p", "q", "sweep", "delta"}
	var rows [][]string
	for _, record := range records {
		for i, delta := range record.Deltas {
			rows = append(rows, []string{
				record.Series,
				formatFloat(record.P),
				formatFloat(record.Q),
				strconv.Itoa(i + 1),
				formatFloat(delta),
			})
		}
	}
	return w.writeCSV("sweep_deltas.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := w.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
