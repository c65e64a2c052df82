package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type presetFile struct {
	Stars []Row `yaml:"stars"`
}

// FileSource serves catalog entries from a YAML preset file held in memory.
type FileSource struct {
	rows map[int]Row
}

func NewFileSource(rows []Row) (*FileSource, error) {
	byIndex := make(map[int]Row, len(rows))
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byIndex[row.Index]; dup {
			return nil, fmt.Errorf("duplicate catalog index %d", row.Index)
		}
		byIndex[row.Index] = row
	}
	return &FileSource{rows: byIndex}, nil
}

func ParseYAML(r io.Reader) (*FileSource, error) {
	var file presetFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode preset file: %w", err)
	}
	return NewFileSource(file.Stars)
}

func LoadFile(path string) (*FileSource, error) {
	logger := slog.With("component", "catalog_file", "operation", "load", "path", path)

	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open preset file", "error", err)
		return nil, fmt.Errorf("failed to open preset file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("Failed to close preset file", "error", err)
		}
	}()

	src, err := ParseYAML(f)
	if err != nil {
		logger.Error("Failed to parse preset file", "error", err)
		return nil, err
	}

	logger.Info("Preset catalog loaded", "count", len(src.rows))
	return src, nil
}

func (s *FileSource) LookupByIndex(ctx context.Context, index int) (Row, error) {
	if err := ctx.Err(); err != nil {
		return Row{}, err
	}
	row, ok := s.rows[index]
	if !ok {
		return Row{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	return row, nil
}

// Rows returns every entry ordered by index.
func (s *FileSource) Rows() []Row {
	rows := make([]Row, 0, len(s.rows))
	for _, row := range s.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
	return rows
}
