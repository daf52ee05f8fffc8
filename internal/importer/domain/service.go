package domain

import (
	"context"
	"errors"
	"fmt"
)

type Service interface {
	// Migrate parses, validates and reconciles one uploaded billing file.
	// The file at path is removed on every exit path. All relational writes
	// happen inside one transaction; nothing is persisted unless every row
	// succeeds.
	Migrate(ctx context.Context, path string) (Result, error)
}

var (
	ErrEmptyWorkbook     = errors.New("empty_workbook")
	ErrUnsupportedFormat = errors.New("unsupported_file_format")
)

// RowError collects the field problems of one source row.
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ValidationError aggregates row errors across the whole file. Its presence
// means no relational writes were performed.
type ValidationError struct {
	RowErrors []RowError `json:"rowErrors"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("import validation failed for %d row(s)", len(e.RowErrors))
}
