package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/sim"
	"github.com/san-kum/springlab/internal/vec"
)

// Store persists runs under a base directory, one subdirectory per run
// holding metadata.json and frames.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a saved run. The full Config is embedded so a run
// can be replayed or exported without the flags it was launched with.
type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Config    config.Config      `json:"config"`
	TicksRun  int                `json:"ticks_run"`
	Dropped   int                `json:"dropped_forces"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run to disk and returns its generated ID.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Config:    *cfg,
		TicksRun:  result.TicksRun,
		Dropped:   result.DroppedForces,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeFrames(filepath.Join(runDir, "frames.csv"), result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

// Frame rows are t, x0, y0, x1, y1, ... in mass order.
func (s *Store) writeFrames(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	row := make([]string, 0, 64)
	for _, frame := range frames {
		row = row[:0]
		row = append(row, strconv.FormatFloat(frame.Time, 'g', -1, 64))
		for _, p := range frame.Positions {
			row = append(row,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// List returns the metadata of every saved run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip unreadable runs
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads one run's recorded position snapshots.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	frames := make([]sim.Frame, 0, len(records))
	for _, rec := range records {
		if len(rec) < 1 || len(rec)%2 != 1 {
			return nil, fmt.Errorf("run %s: malformed frame row with %d fields", runID, len(rec))
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}
		frame := sim.Frame{Time: t, Positions: make([]vec.Vec2, 0, len(rec)/2)}
		for i := 1; i < len(rec); i += 2 {
			x, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: %w", runID, err)
			}
			y, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: %w", runID, err)
			}
			frame.Positions = append(frame.Positions, vec.New(x, y))
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
