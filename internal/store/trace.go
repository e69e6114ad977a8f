package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/hqcflow/internal/vqe"
)

// historyFile is the per-result JSONL trace of evaluation records, kept
// line-oriented so consumers can stream convergence plots without loading
// the whole result.
const historyFile = "history.jsonl"

func historyPath(baseDir, id string) string {
	return filepath.Join(baseDir, "results", id, historyFile)
}

// WriteHistory writes the evaluation records for a result as JSONL,
// replacing any existing trace.
func WriteHistory(baseDir, id string, records []vqe.EvaluationRecord) error {
	dir := filepath.Join(baseDir, "results", id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}

	tempPath := historyPath(baseDir, id) + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}

	writer := bufio.NewWriterSize(file, 64*1024)
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			file.Close()
			os.Remove(tempPath)
			return fmt.Errorf("failed to marshal history record: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			file.Close()
			os.Remove(tempPath)
			return fmt.Errorf("failed to write history record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			file.Close()
			os.Remove(tempPath)
			return fmt.Errorf("failed to write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to flush history file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close history file: %w", err)
	}

	if err := os.Rename(tempPath, historyPath(baseDir, id)); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename history file: %w", err)
	}
	return nil
}

// ReadHistory reads the JSONL trace for a result. A missing trace yields an
// empty slice, not an error: results saved without history stay loadable.
func ReadHistory(baseDir, id string) ([]vqe.EvaluationRecord, error) {
	file, err := os.Open(historyPath(baseDir, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// Long lines are possible when parameter vectors are wide.
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var records []vqe.EvaluationRecord
	for scanner.Scan() {
		var rec vqe.EvaluationRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to scan history file: %w", err)
	}
	return records, nil
}
