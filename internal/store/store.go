package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store persists synthesis runs under a base directory, one subdirectory
// per run holding metadata.json and trajectory.csv.
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
	ID           string    `json:"id"`
	Scenario     string    `json:"scenario"`
	Timestamp    time.Time `json:"timestamp"`
	Start        int       `json:"start"`
	End          int       `json:"end"`
	Horizon      int       `json:"horizon"`
	Cost         float64   `json:"cost"`
	Piece        int       `json:"piece"`
	Conservative bool      `json:"conservative"`
	ClosedLoop   bool      `json:"closed_loop"`
}

// Save writes one synthesized plan: the metadata plus the predicted state
// trajectory (rows 0..N) aligned with the input sequence (rows 0..N-1,
// padded with zeros on the terminal row).
func (s *Store) Save(meta RunMetadata, states [][]float64, inputs [][]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

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

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(states) == 0 {
		return runID, nil
	}

	header := []string{"step"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	numInputs := 0
	if len(inputs) > 0 {
		numInputs = len(inputs[0])
		for i := 0; i < numInputs; i++ {
			header = append(header, fmt.Sprintf("u%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range states {
		row := []string{strconv.Itoa(i)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if i < len(inputs) {
			for _, val := range inputs[i] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
		} else {
			for j := 0; j < numInputs; j++ {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

// LoadTrajectory reads back the stored state and input rows.
func (s *Store) LoadTrajectory(runID string) (states [][]float64, inputs [][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
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
		return [][]float64{}, [][]float64{}, nil
	}

	numStates := 0
	numInputs := 0
	for _, name := range records[0][1:] {
		if len(name) > 0 && name[0] == 'x' {
			numStates++
		} else {
			numInputs++
		}
	}

	for _, record := range records[1:] {
		if len(record) != 1+numStates+numInputs {
			continue
		}
		state := make([]float64, 0, numStates)
		for _, f := range record[1 : 1+numStates] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, nil, err
			}
			state = append(state, v)
		}
		input := make([]float64, 0, numInputs)
		for _, f := range record[1+numStates:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, nil, err
			}
			input = append(input, v)
		}
		states = append(states, state)
		inputs = append(inputs, input)
	}
	return states, inputs, nil
}
