package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cwbudde/hqcflow/internal/vqe"
)

// FSStore implements Store using filesystem persistence. Each result lives
// under <baseDir>/results/<id>/ as result.json (metadata, parameters) plus
// history.jsonl (one evaluation record per line). Writes use the temp file +
// rename pattern, so no locking is needed.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a filesystem store rooted at baseDir, creating the
// directory if needed.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

func (fs *FSStore) resultDir(id string) string {
	return filepath.Join(fs.baseDir, "results", id)
}

func (fs *FSStore) resultPath(id string) string {
	return filepath.Join(fs.resultDir(id), "result.json")
}

// SaveResult validates and persists a result. The history is split out into
// history.jsonl; result.json holds everything else.
func (fs *FSStore) SaveResult(result *vqe.WorkflowResult) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}
	if err := result.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid result: %w", err)
	}

	dir := fs.resultDir(result.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}

	// History goes to the JSONL trace; strip it from the JSON document.
	if err := WriteHistory(fs.baseDir, result.ID, result.History); err != nil {
		return err
	}

	stripped := *result
	stripped.History = nil

	data, err := json.MarshalIndent(&stripped, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	tempPath := fs.resultPath(result.ID) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp result file: %w", err)
	}

	finalPath := fs.resultPath(result.ID)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename result file: %w", err)
	}

	slog.Debug("Result saved", "id", result.ID, "path", finalPath)
	return nil
}

// LoadResult reads a result and reattaches its history trace.
func (fs *FSStore) LoadResult(id string) (*vqe.WorkflowResult, error) {
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	path := fs.resultPath(id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &NotFoundError{ID: id}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat result file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	var result vqe.WorkflowResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to deserialize result: %w", err)
	}

	history, err := ReadHistory(fs.baseDir, id)
	if err != nil {
		return nil, err
	}
	result.History = history

	slog.Debug("Result loaded", "id", id, "history_len", len(history))
	return &result, nil
}

// ListResults scans the results directory and returns metadata for every
// readable result, skipping corrupted entries.
func (fs *FSStore) ListResults() ([]ResultInfo, error) {
	resultsDir := filepath.Join(fs.baseDir, "results")

	if _, err := os.Stat(resultsDir); os.IsNotExist(err) {
		return []ResultInfo{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat results directory: %w", err)
	}

	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	infos := make([]ResultInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		id := entry.Name()
		path := fs.resultPath(id)
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("Failed to read result for listing", "id", id, "error", err)
			}
			continue
		}

		var result vqe.WorkflowResult
		if err := json.Unmarshal(data, &result); err != nil {
			slog.Warn("Skipping corrupted result", "id", id, "error", err)
			continue
		}

		infos = append(infos, ResultInfo{
			ID:            result.ID,
			Backend:       result.Backend,
			Qubits:        result.Spec.Qubits,
			Parameters:    result.Spec.Parameters,
			MinimumEnergy: result.MinimumEnergy,
			Converged:     result.Converged,
			Evaluations:   result.Evaluations,
			StartedAt:     result.StartedAt,
		})
	}

	return infos, nil
}

// DeleteResult removes the result directory, including the history trace.
func (fs *FSStore) DeleteResult(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	dir := fs.resultDir(id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &NotFoundError{ID: id}
	} else if err != nil {
		return fmt.Errorf("failed to stat result directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove result directory: %w", err)
	}

	slog.Debug("Result deleted", "id", id, "path", dir)
	return nil
}
