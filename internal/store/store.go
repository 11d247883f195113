package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/soham-b/orbitlab/internal/orbit"
)

// Store persists finished runs under a base directory, one directory
// per run: metadata.json plus trajectory.csv, and lyapunov.csv for
// chaos runs. The numerical core itself never touches the filesystem;
// only the CLI goes through here.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"` // "orbit" or "lyapunov"
	Potential   string    `json:"potential"`
	Timestamp   time.Time `json:"timestamp"`
	Dt          float64   `json:"dt"`
	Samples     int       `json:"samples"`
	Atol        float64   `json:"atol"`
	Rtol        float64   `json:"rtol"`
	Accepted    int       `json:"accepted"`
	Rejected    int       `json:"rejected"`
	Evaluations int       `json:"evaluations"`
	EnergyDrift float64   `json:"energy_drift"`
	Exponent    float64   `json:"exponent,omitempty"`
}

func (s *Store) Save(meta RunMetadata, traj *orbit.Trajectory, series *orbit.LyapunovSeries) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", meta.Kind, meta.Potential, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Samples = traj.Len()

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

	if err := s.writeTrajectory(filepath.Join(runDir, "trajectory.csv"), traj); err != nil {
		return "", err
	}

	if series != nil && series.Len() > 0 {
		if err := s.writeSeries(filepath.Join(runDir, "lyapunov.csv"), series); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) writeTrajectory(path string, traj *orbit.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if traj.Len() == 0 {
		return nil
	}

	first := traj.States[0]
	header := []string{"time"}
	for o := 0; o < first.Norb; o++ {
		for j := 0; j < first.PhaseSize(); j++ {
			header = append(header, fmt.Sprintf("w%d_%d", o, j))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < traj.Len(); i++ {
		row := []string{strconv.FormatFloat(traj.Times[i], 'g', 17, 64)}
		for _, val := range traj.States[i].W {
			row = append(row, strconv.FormatFloat(val, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) writeSeries(path string, series *orbit.LyapunovSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "exponent"}); err != nil {
		return err
	}
	for i := 0; i < series.Len(); i++ {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'g', 17, 64),
			strconv.FormatFloat(series.Exponents[i], 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads a saved trajectory back as flat rows, one per sample.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	return s.loadCSV(filepath.Join(s.baseDir, runID, "trajectory.csv"))
}

// LoadSeries reads a saved Lyapunov series; the second return is times.
func (s *Store) LoadSeries(runID string) ([]float64, []float64, error) {
	rows, times, err := s.loadCSV(filepath.Join(s.baseDir, runID, "lyapunov.csv"))
	if err != nil {
		return nil, nil, err
	}
	values := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) > 0 {
			values[i] = row[0]
		}
	}
	return values, times, nil
}

func (s *Store) loadCSV(path string) ([][]float64, []float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		row := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	return rows, times, nil
}
